package portal

import (
	"github.com/smallbiznis/boardinghouse/internal/portal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("portal.service",
	fx.Provide(service.NewService),
)
