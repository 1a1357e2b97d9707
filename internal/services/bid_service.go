package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-errands/internal/models"
	"github.com/adanyl0v/go-errands/internal/storage"
)

type bidServiceImpl struct {
	logger        zerolog.Logger
	store         storage.Store
	notifications NotificationService
	now           func() time.Time
}

func NewBidService(
	logger zerolog.Logger,
	store storage.Store,
	notifications NotificationService,
) BidService {
	return &bidServiceImpl{
		logger:        logger,
		store:         store,
		notifications: notifications,
		now:           time.Now,
	}
}

func (s *bidServiceImpl) PlaceBid(ctx context.Context, params PlaceBidParams) (*models.Bid, error) {
	timeEstimate := strings.TrimSpace(params.TimeEstimate)
	if params.Amount == nil || timeEstimate == "" {
		return nil, newValidationError("Amount and time estimate are required.")
	}
	if err := validateMoney("Amount", *params.Amount); err != nil {
		return nil, err
	}

	task, err := s.store.SelectTask(ctx, params.TaskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info().
				Int64("task_id", params.TaskID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.TaskID).
			Msg("failed to get task")
		return nil, err
	}

	if task.IsPostedBy(params.BidderID) {
		s.logger.Warn().
			Int64("task_id", task.ID).
			Str("user_id", params.BidderID).
			Msg("user tried to bid on own task")
		return nil, ErrSelfBid
	}

	bid := &models.Bid{
		TaskID:       task.ID,
		BidderID:     params.BidderID,
		Amount:       *params.Amount,
		TimeEstimate: timeEstimate,
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}
	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		err := tx.InsertBid(ctx, bid)
		if err != nil {
			if errors.Is(err, storage.ErrReferenceNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		_, err = s.notifications.Notify(ctx, tx, NotifyParams{
			UserID:  task.PosterID,
			Message: NewBidMessage(task.Title),
			Link:    TaskLink(task.ID),
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, err
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Str("bidder_id", params.BidderID).
			Msg("failed to place bid")
		return nil, err
	}

	s.logger.Info().
		Int64("bid_id", bid.ID).
		Int64("task_id", task.ID).
		Str("bidder_id", bid.BidderID).
		Msg("placed bid")
	return bid, nil
}

func (s *bidServiceImpl) AcceptBid(ctx context.Context, params AcceptBidParams) (*models.Task, error) {
	task, err := s.store.SelectTask(ctx, params.TaskID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Error().
			Err(err).
			Int64("task_id", params.TaskID).
			Msg("failed to get task")
		return nil, err
	}
	// A missing task is reported the same way as someone else's task.
	if task == nil || !task.IsPostedBy(params.UserID) {
		s.logger.Warn().
			Int64("task_id", params.TaskID).
			Str("user_id", params.UserID).
			Msg("user cannot accept bids on task")
		return nil, ErrTaskForbidden
	}

	if params.BidID == nil {
		return nil, ErrBidNotFound
	}
	bid, err := s.store.SelectBid(ctx, *params.BidID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info().
				Int64("bid_id", *params.BidID).
				Msg("bid not found")
			return nil, ErrBidNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("bid_id", *params.BidID).
			Msg("failed to get bid")
		return nil, err
	}
	if bid.TaskID != task.ID {
		s.logger.Warn().
			Int64("bid_id", bid.ID).
			Int64("bid_task_id", bid.TaskID).
			Int64("task_id", task.ID).
			Msg("bid belongs to another task")
		return nil, ErrBidNotFound
	}

	if !task.Status.CanTransitionTo(models.TaskStatusAssigned) {
		s.logger.Warn().
			Int64("task_id", task.ID).
			Str("status", string(task.Status)).
			Msg("task is not open")
		return nil, ErrTaskAlreadyAssigned
	}

	var assigned *models.Task
	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		var err error
		assigned, err = tx.AssignTask(ctx, storage.AssignTaskParams{
			TaskID:      task.ID,
			VolunteerID: bid.BidderID,
			BidID:       bid.ID,
		})
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return ErrTaskAlreadyAssigned
			}
			return err
		}

		_, err = s.notifications.Notify(ctx, tx, NotifyParams{
			UserID:  bid.BidderID,
			Message: BidAcceptedMessage(task.Title),
			Link:    TaskLink(task.ID),
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrTaskAlreadyAssigned) {
			return nil, err
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Int64("bid_id", bid.ID).
			Msg("failed to accept bid")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", assigned.ID).
		Int64("bid_id", bid.ID).
		Str("volunteer_id", bid.BidderID).
		Msg("accepted bid")
	return assigned, nil
}
