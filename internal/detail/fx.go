package detail

import (
	"github.com/smallbiznis/boardinghouse/internal/detail/service"
	"go.uber.org/fx"
)

var Module = fx.Module("detail.service",
	fx.Provide(service.NewService),
)
