package contract

import (
	"github.com/smallbiznis/boardinghouse/internal/contract/repository"
	"github.com/smallbiznis/boardinghouse/internal/contract/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contract.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
