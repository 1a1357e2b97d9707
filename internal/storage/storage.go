// Package storage declares the persistence contract used by the services.
package storage

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-errands/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrReferenceNotFound is returned when a row points at a parent
	// that does not exist (a foreign key violation).
	ErrReferenceNotFound = errors.New("referenced record not found")
	// ErrConflict is returned when a conditional write matched no rows
	// because the record is no longer in the expected state.
	ErrConflict = errors.New("record state conflict")
)

type Store interface {
	UserStore
	TaskStore
	BidStore
	NotificationStore

	// WithinTx runs fn against a store bound to a single transaction.
	// The transaction is committed if fn returns nil and rolled back
	// otherwise.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

type UserStore interface {
	// UpsertUser inserts the user or updates the email of an existing
	// user with the same ID.
	UpsertUser(ctx context.Context, user *models.User) error
}

type TaskStore interface {
	// InsertTask persists the task and fills in its ID.
	InsertTask(ctx context.Context, task *models.Task) error
	// SelectTasks returns every task, newest first.
	SelectTasks(ctx context.Context) ([]*models.TaskView, error)
	SelectTask(ctx context.Context, id int64) (*models.Task, error)
	SelectTaskView(ctx context.Context, id int64) (*models.TaskView, error)
	// AssignTask moves an open task to assigned. It returns ErrConflict
	// if the task is no longer open.
	AssignTask(ctx context.Context, params AssignTaskParams) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type BidStore interface {
	// InsertBid persists the bid and fills in its ID. It returns
	// ErrReferenceNotFound if the task is gone.
	InsertBid(ctx context.Context, bid *models.Bid) error
	SelectBid(ctx context.Context, id int64) (*models.Bid, error)
	// SelectBidsByTaskID returns the bids of a task, oldest first.
	SelectBidsByTaskID(ctx context.Context, taskID int64) ([]*models.BidView, error)
}

type NotificationStore interface {
	InsertNotification(ctx context.Context, notification *models.Notification) error
}

type AssignTaskParams struct {
	TaskID      int64
	VolunteerID string
	BidID       int64
}
