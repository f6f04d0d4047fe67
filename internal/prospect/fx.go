package prospect

import (
	"github.com/setterhq/setter-crm/internal/calltracker"
	"github.com/setterhq/setter-crm/internal/prospect/repository"
	"github.com/setterhq/setter-crm/internal/prospect/service"
	"go.uber.org/fx"
)

var Module = fx.Module("prospect.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
	fx.Provide(fx.Annotate(
		service.NewRolloverSubscriber,
		fx.As(new(calltracker.Subscriber)),
		fx.ResultTags(`group:"rollover_subscribers"`),
	)),
)
