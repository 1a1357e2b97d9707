package postgres

import (
	"context"

	"github.com/adanyl0v/go-errands/internal/models"
)

func (s *Store) InsertNotification(ctx context.Context, notification *models.Notification) error {
	const insertNotificationQuery = `
INSERT INTO notifications (user_id,
                           message,
                           link,
                           created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, is_read
`
	err := s.q.QueryRow(
		ctx,
		insertNotificationQuery,
		notification.UserID,
		notification.Message,
		notification.Link,
		notification.CreatedAt,
	).Scan(
		&notification.ID,
		&notification.IsRead,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", notification.UserID).
			Msg("failed to insert notification")
		return translateError(err)
	}
	s.logger.Debug().
		Int64("notification_id", notification.ID).
		Str("user_id", notification.UserID).
		Msg("inserted notification")
	return nil
}
