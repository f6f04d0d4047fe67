package auth

import (
	"github.com/setterhq/setter-crm/internal/auth/repository"
	"github.com/setterhq/setter-crm/internal/auth/service"
	"github.com/setterhq/setter-crm/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(repository.NewSessionRepository),
	fx.Provide(service.NewService),
	fx.Provide(session.NewManager),
)
