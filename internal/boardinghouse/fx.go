package boardinghouse

import (
	"github.com/smallbiznis/boardinghouse/internal/boardinghouse/service"
	"go.uber.org/fx"
)

var Module = fx.Module("boardinghouse.service",
	fx.Provide(service.New),
)
