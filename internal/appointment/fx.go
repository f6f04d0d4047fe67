package appointment

import (
	"github.com/setterhq/setter-crm/internal/appointment/repository"
	"github.com/setterhq/setter-crm/internal/appointment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("appointment.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
