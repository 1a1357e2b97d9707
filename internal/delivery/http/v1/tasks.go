package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/adanyl0v/go-errands/internal/models"
	"github.com/adanyl0v/go-errands/internal/services"
)

const msgTaskNotFound = "Task not found"

// userEmailResponse mirrors the nested shape the web client reads
// (task.users.email).
type userEmailResponse struct {
	Email string `json:"email"`
}

type taskResponse struct {
	ID            int64              `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Budget        json.Number        `json:"budget"`
	FromLocation  string             `json:"from_location"`
	ToLocation    string             `json:"to_location"`
	PosterID      string             `json:"poster_id"`
	Status        string             `json:"status"`
	VolunteerID   *string            `json:"volunteer_id"`
	AcceptedBidID *int64             `json:"accepted_bid_id"`
	ExpiresAt     *time.Time         `json:"expires_at"`
	CreatedAt     time.Time          `json:"created_at"`
	PosterEmail   string             `json:"poster_email,omitempty"`
	Users         *userEmailResponse `json:"users,omitempty"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Budget:        decimalNumber(task.Budget),
		FromLocation:  task.FromLocation,
		ToLocation:    task.ToLocation,
		PosterID:      task.PosterID,
		Status:        string(task.Status),
		VolunteerID:   task.VolunteerID,
		AcceptedBidID: task.AcceptedBidID,
		ExpiresAt:     task.ExpiresAt,
		CreatedAt:     task.CreatedAt,
	}
}

func newTaskViewResponse(task *models.TaskView) taskResponse {
	resp := newTaskResponse(&task.Task)
	resp.PosterEmail = task.PosterEmail
	resp.Users = &userEmailResponse{Email: task.PosterEmail}
	return resp
}

type taskDetailResponse struct {
	Task taskResponse  `json:"task"`
	Bids []bidResponse `json:"bids"`
}

// decimalNumber keeps the exact decimal digits in the JSON output.
func decimalNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// parseTaskID reads the :id path param. Non-numeric ids do not name any
// task, so they get 404.
func (h *handlerImpl) parseTaskID(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.Debug().
			Str("id", c.Param("id")).
			Msg("invalid task id")
		abort(c, newNotFoundError(msgTaskNotFound))
		return 0, false
	}
	return taskID, true
}

type createTaskRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Budget       *decimal.Decimal `json:"budget"`
	FromLocation string           `json:"from_location"`
	ToLocation   string           `json:"to_location"`
	IsUrgent     bool             `json:"is_urgent"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := h.mustGetUserID(c)
	if !ok {
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindError(err))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		PosterID:     userID,
		Title:        req.Title,
		Description:  req.Description,
		Budget:       req.Budget,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		IsUrgent:     req.IsUrgent,
	})
	if err != nil {
		if apiErr, ok := asValidationError(err); ok {
			abort(c, apiErr)
			return
		}

		abort(c, newInternalError())
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	tasks, err := h.tasks.GetTasks(c)
	if err != nil {
		abort(c, newInternalError())
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, newTaskViewResponse(task))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	taskID, ok := h.parseTaskID(c)
	if !ok {
		return
	}

	detail, err := h.tasks.GetTaskDetail(c, taskID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(msgTaskNotFound))
		default:
			abort(c, newInternalError())
		}
		return
	}

	bids := make([]bidResponse, 0, len(detail.Bids))
	for _, bid := range detail.Bids {
		bids = append(bids, newBidViewResponse(bid))
	}
	c.JSON(http.StatusOK, taskDetailResponse{
		Task: newTaskViewResponse(detail.Task),
		Bids: bids,
	})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := h.mustGetUserID(c)
	if !ok {
		return
	}
	taskID, ok := h.parseTaskID(c)
	if !ok {
		return
	}

	err := h.tasks.DeleteTask(c, services.DeleteTaskParams{
		TaskID: taskID,
		UserID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(msgTaskNotFound))
		case errors.Is(err, services.ErrTaskForbidden):
			abort(c, newForbiddenError("You are not authorized to delete this task"))
		default:
			abort(c, newInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
