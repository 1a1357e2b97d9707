package postgres

import (
	"context"

	"github.com/adanyl0v/go-errands/internal/models"
)

func (s *Store) UpsertUser(ctx context.Context, user *models.User) error {
	const upsertUserQuery = `
INSERT INTO users (id,
                   email)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE
SET email = EXCLUDED.email
RETURNING created_at
`
	err := s.q.QueryRow(
		ctx,
		upsertUserQuery,
		user.ID,
		user.Email,
	).Scan(&user.CreatedAt)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to upsert user")
		return translateError(err)
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("upserted user")
	return nil
}
