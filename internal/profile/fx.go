package profile

import (
	"github.com/setterhq/setter-crm/internal/profile/repository"
	"github.com/setterhq/setter-crm/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
