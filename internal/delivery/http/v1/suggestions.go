package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type suggestDescriptionRequest struct {
	Title string `json:"title"`
}

func (h *handlerImpl) HandleSuggestDescription(c *gin.Context) {
	var req suggestDescriptionRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("Task title is required."))
		return
	}

	suggestion, err := h.suggestions.SuggestDescription(c, req.Title)
	if err != nil {
		if apiErr, ok := asValidationError(err); ok {
			abort(c, apiErr)
			return
		}

		abort(c, newAPIError(http.StatusInternalServerError, "Failed to get AI suggestion."))
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
