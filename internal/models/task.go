package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TaskStatus string

const (
	TaskStatusOpen     TaskStatus = "open"
	TaskStatusAssigned TaskStatus = "assigned"
)

// UrgentTaskTTL is how long an urgent task stays up after it was posted.
const UrgentTaskTTL = 24 * time.Hour

func (s TaskStatus) Valid() bool {
	return s == TaskStatusOpen || s == TaskStatusAssigned
}

// CanTransitionTo reports whether a task in status s may move to next.
// The only legal transition is open -> assigned.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	return s == TaskStatusOpen && next == TaskStatusAssigned
}

type Task struct {
	ID            int64
	Title         string
	Description   string
	Budget        decimal.Decimal
	FromLocation  string
	ToLocation    string
	PosterID      string
	Status        TaskStatus
	VolunteerID   *string
	AcceptedBidID *int64
	ExpiresAt     *time.Time
	CreatedAt     time.Time
}

func (t *Task) IsPostedBy(userID string) bool {
	return t.PosterID == userID
}

// TaskView is a task joined with its poster's email.
type TaskView struct {
	Task
	PosterEmail string
}
