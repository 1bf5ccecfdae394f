package servicetype

import (
	"github.com/smallbiznis/boardinghouse/internal/servicetype/repository"
	"github.com/smallbiznis/boardinghouse/internal/servicetype/service"
	"go.uber.org/fx"
)

var Module = fx.Module("servicetype.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
