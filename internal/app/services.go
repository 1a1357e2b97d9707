package app

import (
	"context"

	"github.com/adanyl0v/go-errands/internal/config"
	"github.com/adanyl0v/go-errands/internal/delivery/http/v1"
	"github.com/adanyl0v/go-errands/internal/generation"
	"github.com/adanyl0v/go-errands/internal/identity"
	"github.com/adanyl0v/go-errands/internal/services"
)

// newServices wires the services to the store and the external clients.
// It must be called after MustConnectPostgres and ConnectRedis.
func newServices() v1.Services {
	cfg := config.Global()

	goTrue := identity.NewGoTrueClient(
		componentLogger("identity"),
		cfg.Identity.URL,
		cfg.Identity.ServiceKey,
		cfg.Identity.Timeout,
	)

	introspector := identity.Introspector(goTrue)
	switch {
	case cfg.Identity.JWTSecret != "":
		introspector = identity.NewJWTVerifier(cfg.Identity.JWTSecret, cfg.Identity.JWTAudience)
		globalLogger.Info().Msg("verifying access tokens locally")
	case globalRedisClient != nil:
		introspector = identity.NewCachingIntrospector(
			componentLogger("identity"),
			introspector,
			identity.NewRedisCache(globalRedisClient),
			cfg.Redis.IdentityCacheTTL,
		)
		globalLogger.Info().
			Dur("ttl", cfg.Redis.IdentityCacheTTL).
			Msg("caching resolved identities in redis")
	}

	gemini, err := generation.NewGeminiClient(
		context.Background(),
		componentLogger("generation"),
		cfg.Generation.URL,
		cfg.Generation.APIKey,
		cfg.Generation.Model,
		cfg.Generation.Timeout,
	)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to create generation client")
		panic(err)
	}

	serviceLogger := componentLogger("services")
	profiles := services.NewProfileService(serviceLogger, globalStore)
	notifications := services.NewNotificationService(serviceLogger)

	return v1.Services{
		Auth:        services.NewAuthService(serviceLogger, introspector, goTrue, profiles),
		Tasks:       services.NewTaskService(serviceLogger, globalStore),
		Bids:        services.NewBidService(serviceLogger, globalStore, notifications),
		Suggestions: services.NewSuggestionService(serviceLogger, gemini),
	}
}
