package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/adanyl0v/go-errands/internal/models"
	"github.com/adanyl0v/go-errands/internal/services"
)

type bidResponse struct {
	ID           int64              `json:"id"`
	TaskID       int64              `json:"task_id"`
	BidderID     string             `json:"bidder_id"`
	Amount       json.Number        `json:"amount"`
	TimeEstimate string             `json:"time_estimate"`
	CreatedAt    time.Time          `json:"created_at"`
	BidderEmail  string             `json:"bidder_email,omitempty"`
	Users        *userEmailResponse `json:"users,omitempty"`
}

func newBidResponse(bid *models.Bid) bidResponse {
	return bidResponse{
		ID:           bid.ID,
		TaskID:       bid.TaskID,
		BidderID:     bid.BidderID,
		Amount:       decimalNumber(bid.Amount),
		TimeEstimate: bid.TimeEstimate,
		CreatedAt:    bid.CreatedAt,
	}
}

func newBidViewResponse(bid *models.BidView) bidResponse {
	resp := newBidResponse(&bid.Bid)
	resp.BidderEmail = bid.BidderEmail
	resp.Users = &userEmailResponse{Email: bid.BidderEmail}
	return resp
}

type placeBidRequest struct {
	Amount       *decimal.Decimal `json:"amount"`
	TimeEstimate string           `json:"timeEstimate"`
}

func (h *handlerImpl) HandlePlaceBid(c *gin.Context) {
	userID, ok := h.mustGetUserID(c)
	if !ok {
		return
	}
	taskID, ok := h.parseTaskID(c)
	if !ok {
		return
	}

	var req placeBidRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindError(err))
		return
	}

	bid, err := h.bids.PlaceBid(c, services.PlaceBidParams{
		TaskID:       taskID,
		BidderID:     userID,
		Amount:       req.Amount,
		TimeEstimate: req.TimeEstimate,
	})
	if err != nil {
		if apiErr, ok := asValidationError(err); ok {
			abort(c, apiErr)
			return
		}

		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError("Task not found."))
		case errors.Is(err, services.ErrSelfBid):
			abort(c, newForbiddenError("You cannot bid on your own task."))
		default:
			abort(c, newInternalError())
		}
		return
	}

	c.JSON(http.StatusCreated, newBidResponse(bid))
}

type acceptBidRequest struct {
	BidID *int64 `json:"bid_id"`
}

func (h *handlerImpl) HandleAcceptBid(c *gin.Context) {
	userID, ok := h.mustGetUserID(c)
	if !ok {
		return
	}
	taskID, ok := h.parseTaskID(c)
	if !ok {
		return
	}

	var req acceptBidRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindError(err))
		return
	}

	task, err := h.bids.AcceptBid(c, services.AcceptBidParams{
		TaskID: taskID,
		UserID: userID,
		BidID:  req.BidID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskForbidden):
			abort(c, newForbiddenError("Unauthorized"))
		case errors.Is(err, services.ErrBidNotFound):
			abort(c, newNotFoundError("Bid not found"))
		case errors.Is(err, services.ErrTaskAlreadyAssigned):
			abort(c, newConflictError("This task has already been assigned."))
		default:
			abort(c, newInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}
