package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/adanyl0v/go-errands/internal/delivery/http/v1"
	"github.com/adanyl0v/go-errands/internal/models"
	"github.com/adanyl0v/go-errands/internal/services"
)

func TestWithCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := withCORS(next, []string{"https://errands.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/tasks", nil)
	req.Header.Set("Origin", "https://errands.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://errands.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.NotEqual(t, http.StatusTeapot, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Origin", "https://other.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

type ctxTaskService struct {
	services.TaskService
	ctxErr error
}

func (s *ctxTaskService) GetTasks(ctx context.Context) ([]*models.TaskView, error) {
	s.ctxErr = ctx.Err()
	return nil, nil
}

func TestNewRouter_PropagatesRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tasks := &ctxTaskService{}
	router := newRouter(v1.New(zerolog.Nop(), v1.Services{Tasks: tasks}, 0))
	assert.True(t, router.ContextWithFallback)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil).WithContext(ctx)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.ErrorIs(t, tasks.ctxErr, context.Canceled)
}
