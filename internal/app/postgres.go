package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-errands/internal/config"
	"github.com/adanyl0v/go-errands/internal/storage/postgres"
)

var (
	globalPostgresPool *pgxpool.Pool
	globalStore        *postgres.Store
)

func MustConnectPostgres() {
	cfg := config.Global().Postgres

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	globalPostgresPool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = globalPostgresPool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Uint16("port", poolCfg.ConnConfig.Port).
		Str("database", poolCfg.ConnConfig.Database).
		Msg("connected to postgres")

	globalStore = postgres.New(componentLogger("postgres"), globalPostgresPool)
}

// MustMigratePostgres brings the schema up to date when POSTGRES_MIGRATE
// is enabled.
func MustMigratePostgres() {
	if !config.Global().Postgres.Migrate {
		globalLogger.Debug().Msg("skipping postgres migrations")
		return
	}

	err := globalStore.Migrate(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to migrate postgres")
		panic(err)
	}
	globalLogger.Info().Msg("migrated postgres")
}

func DisconnectPostgres() {
	globalPostgresPool.Close()
	globalLogger.Info().Msg("disconnected from postgres")
}
