package roomservice

import (
	"github.com/smallbiznis/boardinghouse/internal/roomservice/repository"
	"github.com/smallbiznis/boardinghouse/internal/roomservice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("roomservice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
