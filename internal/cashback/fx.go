package cashback

import (
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/repository"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cashback.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
