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

type taskServiceImpl struct {
	logger zerolog.Logger
	store  storage.Store
	now    func() time.Time
}

func NewTaskService(
	logger zerolog.Logger,
	store storage.Store,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		store:  store,
		now:    time.Now,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" || params.Budget == nil {
		return nil, newValidationError("Title and budget are required.")
	}
	if err := validateMoney("Budget", *params.Budget); err != nil {
		return nil, err
	}

	// Postgres keeps microseconds; truncating keeps the returned record
	// equal to the stored one.
	now := s.now().UTC().Truncate(time.Microsecond)
	task := &models.Task{
		Title:        title,
		Description:  params.Description,
		Budget:       *params.Budget,
		FromLocation: params.FromLocation,
		ToLocation:   params.ToLocation,
		PosterID:     params.PosterID,
		Status:       models.TaskStatusOpen,
		CreatedAt:    now,
	}
	if params.IsUrgent {
		expiresAt := now.Add(models.UrgentTaskTTL)
		task.ExpiresAt = &expiresAt
	}

	err := s.store.InsertTask(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("poster_id", task.PosterID).
			Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("poster_id", task.PosterID).
		Bool("urgent", params.IsUrgent).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTasks(ctx context.Context) ([]*models.TaskView, error) {
	tasks, err := s.store.SelectTasks(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to get tasks")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("tasks found")
	return tasks, nil
}

func (s *taskServiceImpl) GetTaskDetail(ctx context.Context, taskID int64) (*TaskDetail, error) {
	task, err := s.store.SelectTaskView(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info().
				Int64("task_id", taskID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to get task")
		return nil, err
	}

	bids, err := s.store.SelectBidsByTaskID(ctx, taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to get bids")
		return nil, err
	}

	s.logger.Debug().
		Int64("task_id", taskID).
		Int("bids", len(bids)).
		Msg("task found")
	return &TaskDetail{Task: task, Bids: bids}, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	task, err := s.store.SelectTask(ctx, params.TaskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info().
				Int64("task_id", params.TaskID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.TaskID).
			Msg("failed to get task")
		return err
	}

	if !task.IsPostedBy(params.UserID) {
		s.logger.Warn().
			Int64("task_id", params.TaskID).
			Str("user_id", params.UserID).
			Msg("user is not the poster")
		return ErrTaskForbidden
	}

	err = s.store.DeleteTask(ctx, params.TaskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.TaskID).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Int64("task_id", params.TaskID).
		Str("user_id", params.UserID).
		Msg("deleted task")
	return nil
}
