package calltracker

import (
	"context"

	"github.com/setterhq/setter-crm/internal/clock"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Profiles    profiledomain.Repository
	Flusher     *Flusher
	Clock       clock.Clock
	Log         *zap.Logger
	Subscribers []Subscriber `group:"rollover_subscribers"`
}

func newService(p Params) Service {
	return NewService(p.Profiles, p.Flusher, p.Clock, p.Log, p.Subscribers)
}

var Module = fx.Module("calltracker",
	fx.Provide(NewFlusher),
	fx.Provide(newService),
	fx.Invoke(func(lc fx.Lifecycle, f *Flusher) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				f.Start()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				f.Stop(ctx)
				return nil
			},
		})
	}),
)
