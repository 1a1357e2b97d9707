package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-errands/internal/services"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgRequestTooLarge    = "Request body is too large."
	msgMissingAuthHeader  = "Authorization header is missing or invalid"
	msgInvalidToken       = "Invalid or expired token"
	msgProfileUnavailable = "Could not verify user profile. Please try again."
	msgInternalError      = "An internal server error occurred."
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

func newInternalError() apiError {
	return newAPIError(http.StatusInternalServerError, msgInternalError)
}

// newBindError reports a body that could not be decoded. Bodies cut off
// by the size limit get 413.
func newBindError(err error) apiError {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return newAPIError(http.StatusRequestEntityTooLarge, msgRequestTooLarge)
	}
	return newBadRequestError(msgInvalidRequestBody)
}

// asValidationError turns a *services.ValidationError into a 400
// carrying its message.
func asValidationError(err error) (apiError, bool) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		return newBadRequestError(vErr.Message), true
	}
	return apiError{}, false
}
