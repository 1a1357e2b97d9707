package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type migration struct {
	version int
	sql     string
}

// migrations must be listed in order, versions starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tasks (
	id              BIGSERIAL PRIMARY KEY,
	title           TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	budget          NUMERIC(12, 2) NOT NULL,
	from_location   TEXT NOT NULL DEFAULT '',
	to_location     TEXT NOT NULL DEFAULT '',
	poster_id       TEXT NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
	status          TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'assigned')),
	volunteer_id    TEXT REFERENCES users (id) ON DELETE RESTRICT,
	accepted_bid_id BIGINT,
	expires_at      TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS tasks_created_at_idx ON tasks (created_at DESC, id DESC);

CREATE TABLE IF NOT EXISTS bids (
	id            BIGSERIAL PRIMARY KEY,
	task_id       BIGINT NOT NULL REFERENCES tasks (id) ON DELETE CASCADE,
	bidder_id     TEXT NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
	amount        NUMERIC(12, 2) NOT NULL,
	time_estimate TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS bids_task_id_idx ON bids (task_id);

DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conname = 'tasks_accepted_bid_id_fkey'
		  AND conrelid = 'tasks'::regclass
	) THEN
		ALTER TABLE tasks
			ADD CONSTRAINT tasks_accepted_bid_id_fkey
			FOREIGN KEY (accepted_bid_id) REFERENCES bids (id) ON DELETE SET NULL;
	END IF;
END
$$;

CREATE TABLE IF NOT EXISTS notifications (
	id         BIGSERIAL PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
	message    TEXT NOT NULL,
	link       TEXT NOT NULL DEFAULT '',
	is_read    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS notifications_user_id_idx ON notifications (user_id);
`,
	},
}

// Migrate applies every migration newer than the recorded schema version.
// Each migration runs in its own transaction.
func (s *Store) Migrate(ctx context.Context) error {
	const createSchemaVersionQuery = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
)
`
	_, err := s.pool.Exec(ctx, createSchemaVersionQuery)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = s.pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).
		Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.sql); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, m.version)
			return err
		})
		if err != nil {
			s.logger.Error().
				Err(err).
				Int("version", m.version).
				Msg("failed to apply migration")
			return fmt.Errorf("failed to apply migration %d: %w", m.version, err)
		}
		s.logger.Info().
			Int("version", m.version).
			Msg("applied migration")
	}
	return nil
}
