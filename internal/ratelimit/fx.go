package ratelimit

import (
	"github.com/redis/go-redis/v9"
	"github.com/setterhq/setter-crm/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newRedisClient(cfg config.Config) *redis.Client {
	if !cfg.RateLimit.Enabled || cfg.RateLimit.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RateLimit.RedisAddr,
		Password: cfg.RateLimit.RedisPassword,
		DB:       cfg.RateLimit.RedisDB,
	})
}

func newLimiter(cfg config.Config, rdb *redis.Client, log *zap.Logger) *Limiter {
	return NewLimiter(rdb, cfg.RateLimit.Rate, cfg.RateLimit.Burst, log)
}

var Module = fx.Module("ratelimit",
	fx.Provide(newRedisClient),
	fx.Provide(newLimiter),
)
