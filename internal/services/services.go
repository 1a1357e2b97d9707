package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/adanyl0v/go-errands/internal/identity"
	"github.com/adanyl0v/go-errands/internal/models"
	"github.com/adanyl0v/go-errands/internal/storage"
)

var (
	ErrUnauthenticated     = errors.New("invalid or expired token")
	ErrProfileUnavailable  = errors.New("could not verify user profile")
	ErrUserAlreadyExists   = errors.New("a user with this email already exists")
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskForbidden       = errors.New("task does not belong to user")
	ErrTaskAlreadyAssigned = errors.New("task is already assigned")
	ErrSelfBid             = errors.New("cannot bid on own task")
	ErrBidNotFound         = errors.New("bid not found")
	ErrSuggestionFailed    = errors.New("failed to get suggestion")
)

// ValidationError reports missing or malformed input. Its message is
// safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

// maxMoney is the first value a NUMERIC(12,2) column cannot hold.
var maxMoney = decimal.New(1, 10)

// validateMoney accepts positive amounts that fit NUMERIC(12,2) without
// rounding.
func validateMoney(field string, amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return newValidationError(field + " must be greater than zero.")
	case !amount.Equal(amount.Round(2)):
		return newValidationError(field + " must have at most two decimal places.")
	case amount.GreaterThanOrEqual(maxMoney):
		return newValidationError(field + " must be less than " + maxMoney.String() + ".")
	}
	return nil
}

type AuthService interface {
	// Register creates a confirmed account with the identity provider
	// and the matching user row.
	//
	// It returns ErrUserAlreadyExists if the email is taken and
	// *ValidationError if the input or the provider rejects it.
	Register(ctx context.Context, params RegisterParams) (*identity.Identity, error)

	// Authenticate resolves the bearer token to an identity and makes
	// sure the caller has a user row.
	//
	// It returns ErrUnauthenticated if the token is rejected or the
	// provider cannot be reached, and ErrProfileUnavailable if the user
	// row could not be reconciled.
	Authenticate(ctx context.Context, token string) (*identity.Identity, error)
}

type ProfileService interface {
	// EnsureProfile upserts the user row for the identity. It never
	// fails loudly: errors are logged and reported as false.
	EnsureProfile(ctx context.Context, id identity.Identity) bool
}

type TaskService interface {
	// CreateTask returns a *ValidationError if the title or budget is
	// missing.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// GetTasks returns every task, newest first.
	GetTasks(ctx context.Context) ([]*models.TaskView, error)

	// GetTaskDetail returns the task with all its bids or
	// ErrTaskNotFound.
	GetTaskDetail(ctx context.Context, taskID int64) (*TaskDetail, error)

	// DeleteTask returns ErrTaskNotFound or ErrTaskForbidden if the
	// caller is not the poster.
	DeleteTask(ctx context.Context, params DeleteTaskParams) error
}

type BidService interface {
	// PlaceBid stores the bid and notifies the poster in one
	// transaction.
	//
	// It returns *ValidationError, ErrTaskNotFound or ErrSelfBid.
	PlaceBid(ctx context.Context, params PlaceBidParams) (*models.Bid, error)

	// AcceptBid assigns the task to the bidder and notifies them in one
	// transaction.
	//
	// A missing task and a caller who is not the poster both yield
	// ErrTaskForbidden. It returns ErrBidNotFound if the bid does not
	// exist or belongs to another task, and ErrTaskAlreadyAssigned if
	// the task is no longer open.
	AcceptBid(ctx context.Context, params AcceptBidParams) (*models.Task, error)
}

type NotificationService interface {
	// Notify appends a notification for the recipient. The store may be
	// bound to the caller's transaction.
	Notify(ctx context.Context, store storage.NotificationStore, params NotifyParams) (*models.Notification, error)
}

type SuggestionService interface {
	// SuggestDescription returns a description template for a task
	// title or ErrSuggestionFailed.
	SuggestDescription(ctx context.Context, title string) (string, error)
}

type RegisterParams struct {
	Email    string
	Password string
}

type CreateTaskParams struct {
	PosterID     string
	Title        string
	Description  string
	Budget       *decimal.Decimal
	FromLocation string
	ToLocation   string
	IsUrgent     bool
}

type DeleteTaskParams struct {
	TaskID int64
	UserID string
}

type PlaceBidParams struct {
	TaskID       int64
	BidderID     string
	Amount       *decimal.Decimal
	TimeEstimate string
}

type AcceptBidParams struct {
	TaskID int64
	UserID string
	BidID  *int64
}

type NotifyParams struct {
	UserID  string
	Message string
	Link    string
}

type TaskDetail struct {
	Task *models.TaskView
	Bids []*models.BidView
}
