package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-errands/internal/services"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindError(err))
		return
	}

	_, err = h.auth.Register(c, services.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if apiErr, ok := asValidationError(err); ok {
			abort(c, apiErr)
			return
		}

		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newBadRequestError("A user with this email already exists."))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to register user")
			abort(c, newAPIError(http.StatusInternalServerError,
				"An unexpected server error occurred during registration."))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful! You can now log in."})
}
