package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adanyl0v/go-errands/internal/models"
	"github.com/adanyl0v/go-errands/internal/storage"
)

const taskColumns = `t.id,
       t.title,
       t.description,
       t.budget,
       t.from_location,
       t.to_location,
       t.poster_id,
       t.status,
       t.volunteer_id,
       t.accepted_bid_id,
       t.expires_at,
       t.created_at`

func scanTask(row pgx.Row, task *models.Task, extra ...any) error {
	var status string
	dest := append([]any{
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Budget,
		&task.FromLocation,
		&task.ToLocation,
		&task.PosterID,
		&status,
		&task.VolunteerID,
		&task.AcceptedBidID,
		&task.ExpiresAt,
		&task.CreatedAt,
	}, extra...)

	err := row.Scan(dest...)
	if err != nil {
		return err
	}

	task.Status = models.TaskStatus(status)
	if !task.Status.Valid() {
		return fmt.Errorf("task %d has unknown status %q", task.ID, status)
	}
	return nil
}

func (s *Store) InsertTask(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (title,
                   description,
                   budget,
                   from_location,
                   to_location,
                   poster_id,
                   status,
                   expires_at,
                   created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id
`
	err := s.q.QueryRow(
		ctx,
		insertTaskQuery,
		task.Title,
		task.Description,
		task.Budget,
		task.FromLocation,
		task.ToLocation,
		task.PosterID,
		string(task.Status),
		task.ExpiresAt,
		task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("poster_id", task.PosterID).
			Msg("failed to insert task")
		return translateError(err)
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("inserted task")
	return nil
}

func (s *Store) SelectTasks(ctx context.Context) ([]*models.TaskView, error) {
	const selectTasksQuery = `
SELECT ` + taskColumns + `,
       u.email
FROM tasks t
JOIN users u ON u.id = t.poster_id
ORDER BY t.created_at DESC, t.id DESC
`
	rows, err := s.q.Query(ctx, selectTasksQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.TaskView, 0)
	for rows.Next() {
		task := new(models.TaskView)
		err = scanTask(rows, &task.Task, &task.PosterEmail)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (s *Store) SelectTask(ctx context.Context, id int64) (*models.Task, error) {
	const selectTaskQuery = `
SELECT ` + taskColumns + `
FROM tasks t
WHERE t.id = $1
`
	task := new(models.Task)
	err := scanTask(s.q.QueryRow(ctx, selectTaskQuery, id), task)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task")
		return nil, err
	}
	return task, nil
}

func (s *Store) SelectTaskView(ctx context.Context, id int64) (*models.TaskView, error) {
	const selectTaskViewQuery = `
SELECT ` + taskColumns + `,
       u.email
FROM tasks t
JOIN users u ON u.id = t.poster_id
WHERE t.id = $1
`
	task := new(models.TaskView)
	err := scanTask(s.q.QueryRow(ctx, selectTaskViewQuery, id), &task.Task, &task.PosterEmail)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task view")
		return nil, err
	}
	return task, nil
}

func (s *Store) AssignTask(ctx context.Context, params storage.AssignTaskParams) (*models.Task, error) {
	// The status guard makes concurrent acceptances race on the row
	// lock: only the first one sees an open task.
	const assignTaskQuery = `
UPDATE tasks t
SET status = $1,
    volunteer_id = $2,
    accepted_bid_id = $3
WHERE t.id = $4 AND t.status = $5
RETURNING ` + taskColumns + `
`
	task := new(models.Task)
	err := scanTask(s.q.QueryRow(
		ctx,
		assignTaskQuery,
		string(models.TaskStatusAssigned),
		params.VolunteerID,
		params.BidID,
		params.TaskID,
		string(models.TaskStatusOpen),
	), task)
	if err != nil {
		if isNoRows(err) {
			s.logger.Warn().
				Int64("task_id", params.TaskID).
				Msg("task is not open")
			return nil, storage.ErrConflict
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.TaskID).
			Msg("failed to assign task")
		return nil, translateError(err)
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Int64("bid_id", params.BidID).
		Msg("assigned task")
	return task, nil
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := s.q.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	s.logger.Debug().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}
