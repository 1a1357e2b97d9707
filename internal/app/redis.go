package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/adanyl0v/go-errands/internal/config"
)

var globalRedisClient *redis.Client

// ConnectRedis sets up the optional Redis client. An unset address or a
// failed ping leaves the service running without it.
func ConnectRedis() {
	cfg := config.Global().Redis
	if cfg.Addr == "" {
		globalLogger.Debug().Msg("redis is not configured")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), config.Global().Postgres.PingTimeout)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		globalLogger.Warn().
			Err(err).
			Str("addr", cfg.Addr).
			Msg("failed to ping redis, continuing without it")
		_ = client.Close()
		return
	}

	globalRedisClient = client
	globalLogger.Info().
		Str("addr", cfg.Addr).
		Int("db", cfg.DB).
		Msg("connected to redis")
}

func DisconnectRedis() {
	if globalRedisClient == nil {
		return
	}

	err := globalRedisClient.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to disconnect from redis")
		return
	}
	globalLogger.Info().Msg("disconnected from redis")
}
