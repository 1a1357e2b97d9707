package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-errands/internal/models"
)

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func decimalString(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func seedUsers(store *memStore, ids ...string) {
	for _, id := range ids {
		store.users[id] = models.User{ID: id, Email: id + "@example.com"}
	}
}

func newTestTaskService(store *memStore) *taskServiceImpl {
	return NewTaskService(zerolog.Nop(), store).(*taskServiceImpl)
}

func TestTaskService_CreateTask(t *testing.T) {
	store := newMemStore()
	seedUsers(store, "poster")
	svc := newTestTaskService(store)

	task, err := svc.CreateTask(context.Background(), CreateTaskParams{
		PosterID:     "poster",
		Title:        "Move sofa",
		Budget:       decimalPtr(50),
		FromLocation: "Main St 1",
		ToLocation:   "Oak Ave 2",
	})
	require.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.Equal(t, "poster", task.PosterID)
	assert.Equal(t, models.TaskStatusOpen, task.Status)
	assert.Nil(t, task.ExpiresAt)
	assert.Nil(t, task.VolunteerID)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Contains(t, store.tasks, task.ID)
}

func TestTaskService_CreateTask_UrgentExpiresInExactly24h(t *testing.T) {
	store := newMemStore()
	seedUsers(store, "poster")
	svc := newTestTaskService(store)

	fixed := time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC)
	svc.now = func() time.Time { return fixed }

	task, err := svc.CreateTask(context.Background(), CreateTaskParams{
		PosterID: "poster",
		Title:    "Pharmacy run",
		Budget:   decimalPtr(10),
		IsUrgent: true,
	})
	require.NoError(t, err)
	require.NotNil(t, task.ExpiresAt)
	assert.Equal(t, task.CreatedAt.Add(24*time.Hour), *task.ExpiresAt)
	assert.Equal(t, fixed.Truncate(time.Microsecond), task.CreatedAt)
}

func TestTaskService_CreateTask_Validation(t *testing.T) {
	svc := newTestTaskService(newMemStore())

	tests := map[string]struct {
		params  CreateTaskParams
		message string
	}{
		"missing title":  {CreateTaskParams{Budget: decimalPtr(5)}, "Title and budget are required."},
		"blank title":    {CreateTaskParams{Title: "  ", Budget: decimalPtr(5)}, "Title and budget are required."},
		"missing budget": {CreateTaskParams{Title: "Move sofa"}, "Title and budget are required."},
		"zero budget":    {CreateTaskParams{Title: "Move sofa", Budget: decimalPtr(0)}, "Budget must be greater than zero."},
		"negative":       {CreateTaskParams{Title: "Move sofa", Budget: decimalPtr(-3)}, "Budget must be greater than zero."},
		"sub-cent":       {CreateTaskParams{Title: "Move sofa", Budget: decimalString("0.001")}, "Budget must have at most two decimal places."},
		"three places":   {CreateTaskParams{Title: "Move sofa", Budget: decimalString("10.005")}, "Budget must have at most two decimal places."},
		"too large":      {CreateTaskParams{Title: "Move sofa", Budget: decimalString("10000000000000")}, "Budget must be less than 10000000000."},
		"column limit":   {CreateTaskParams{Title: "Move sofa", Budget: decimalString("10000000000")}, "Budget must be less than 10000000000."},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tt.params.PosterID = "poster"
			_, err := svc.CreateTask(context.Background(), tt.params)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.message, vErr.Message)
		})
	}
}

func TestTaskService_GetTasks_NewestFirst(t *testing.T) {
	store := newMemStore()
	seedUsers(store, "poster")
	svc := newTestTaskService(store)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		task, err := svc.CreateTask(context.Background(), CreateTaskParams{PosterID: "poster", Title: "t", Budget: decimalPtr(1)})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	tasks, err := svc.GetTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i := 1; i < len(tasks); i++ {
		assert.False(t, tasks[i].CreatedAt.After(tasks[i-1].CreatedAt))
	}
	assert.Equal(t, ids[2], tasks[0].ID)
	assert.Equal(t, "poster@example.com", tasks[0].PosterEmail)
}

func TestTaskService_GetTasks_StoreError(t *testing.T) {
	store := newMemStore()
	store.selectTasksErr = errStoreDown

	_, err := newTestTaskService(store).GetTasks(context.Background())
	assert.ErrorIs(t, err, errStoreDown)
}

func TestTaskService_GetTaskDetail(t *testing.T) {
	store := newMemStore()
	seedUsers(store, "poster", "bidder")
	svc := newTestTaskService(store)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, CreateTaskParams{PosterID: "poster", Title: "Move sofa", Budget: decimalPtr(50)})
	require.NoError(t, err)
	store.bids[100] = models.Bid{ID: 100, TaskID: task.ID, BidderID: "bidder", Amount: decimal.NewFromInt(20), TimeEstimate: "1h"}

	detail, err := svc.GetTaskDetail(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, detail.Task.ID)
	assert.Equal(t, "poster@example.com", detail.Task.PosterEmail)
	require.Len(t, detail.Bids, 1)
	assert.Equal(t, "bidder@example.com", detail.Bids[0].BidderEmail)

	_, err = svc.GetTaskDetail(ctx, 999)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_DeleteTask(t *testing.T) {
	store := newMemStore()
	seedUsers(store, "poster", "stranger")
	svc := newTestTaskService(store)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, CreateTaskParams{PosterID: "poster", Title: "Move sofa", Budget: decimalPtr(50)})
	require.NoError(t, err)

	err = svc.DeleteTask(ctx, DeleteTaskParams{TaskID: task.ID, UserID: "stranger"})
	assert.ErrorIs(t, err, ErrTaskForbidden)
	assert.Contains(t, store.tasks, task.ID)

	err = svc.DeleteTask(ctx, DeleteTaskParams{TaskID: task.ID, UserID: "poster"})
	require.NoError(t, err)
	assert.NotContains(t, store.tasks, task.ID)

	err = svc.DeleteTask(ctx, DeleteTaskParams{TaskID: task.ID, UserID: "poster"})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_CreateTask_AcceptsColumnBounds(t *testing.T) {
	store := newMemStore()
	seedUsers(store, "poster")
	svc := newTestTaskService(store)

	for _, budget := range []string{"0.01", "10.50", "10.500", "9999999999.99"} {
		task, err := svc.CreateTask(context.Background(), CreateTaskParams{
			PosterID: "poster",
			Title:    "Move sofa",
			Budget:   decimalString(budget),
		})
		require.NoError(t, err, budget)
		assert.True(t, task.Budget.Equal(decimal.RequireFromString(budget)), budget)
	}
}
