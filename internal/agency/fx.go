package agency

import (
	"github.com/setterhq/setter-crm/internal/agency/repository"
	"github.com/setterhq/setter-crm/internal/agency/service"
	"go.uber.org/fx"
)

var Module = fx.Module("agency.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
