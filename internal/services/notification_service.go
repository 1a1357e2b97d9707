package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-errands/internal/models"
	"github.com/adanyl0v/go-errands/internal/storage"
)

var errEmptyNotification = errors.New("notification needs a recipient and a message")

func NewBidMessage(taskTitle string) string {
	return fmt.Sprintf("You have a new bid on your task: '%s'", taskTitle)
}

func BidAcceptedMessage(taskTitle string) string {
	return fmt.Sprintf("Your bid for '%s' was accepted!", taskTitle)
}

// TaskLink is the client-side anchor of a task.
func TaskLink(taskID int64) string {
	return fmt.Sprintf("#task-%d", taskID)
}

type notificationServiceImpl struct {
	logger zerolog.Logger
	now    func() time.Time
}

func NewNotificationService(logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		logger: logger,
		now:    time.Now,
	}
}

func (s *notificationServiceImpl) Notify(
	ctx context.Context,
	store storage.NotificationStore,
	params NotifyParams,
) (*models.Notification, error) {
	if params.UserID == "" || params.Message == "" {
		return nil, errEmptyNotification
	}

	notification := &models.Notification{
		UserID:    params.UserID,
		Message:   params.Message,
		Link:      params.Link,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	err := store.InsertNotification(ctx, notification)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Str("link", params.Link).
			Msg("failed to emit notification")
		return nil, err
	}

	s.logger.Debug().
		Int64("notification_id", notification.ID).
		Str("user_id", notification.UserID).
		Msg("emitted notification")
	return notification, nil
}
