package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-errands/internal/services"
)

const (
	userIDCtxKey    = "user_id"
	requestIDCtxKey = "request_id"

	requestIDHeader = "X-Request-ID"
)

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Warn().Msg("authorization header required")
		abort(c, newUnauthorizedError(msgMissingAuthHeader))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix || strings.TrimSpace(parts[1]) == "" {
		h.logger.Warn().Msg("invalid authorization header")
		abort(c, newUnauthorizedError(msgMissingAuthHeader))
		return
	}

	id, err := h.auth.Authenticate(c, strings.TrimSpace(parts[1]))
	if err != nil {
		if errors.Is(err, services.ErrProfileUnavailable) {
			abort(c, newAPIError(http.StatusInternalServerError, msgProfileUnavailable))
			return
		}

		h.logger.Warn().
			Err(err).
			Msg("failed to authenticate")
		abort(c, newUnauthorizedError(msgInvalidToken))
		return
	}

	c.Set(userIDCtxKey, id.ID)
	c.Next()
}

// HandleRequestID propagates the caller's X-Request-ID or assigns a new
// one.
func (h *handlerImpl) HandleRequestID(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

func (h *handlerImpl) HandleRequestLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	level := zerolog.InfoLevel
	if status >= http.StatusInternalServerError {
		level = zerolog.ErrorLevel
	}

	requestID, _ := getStringFromContext(c, requestIDCtxKey)
	h.logger.WithLevel(level).
		Str("request_id", requestID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("client_ip", c.ClientIP()).
		Msg("handled request")
}

func (h *handlerImpl) HandleMaxBodyBytes(c *gin.Context) {
	if h.maxBodyBytes > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}
	c.Next()
}

func getStringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// mustGetUserID returns the caller set by HandleAuthMiddleware. It aborts
// with 401 when the middleware did not run.
func (h *handlerImpl) mustGetUserID(c *gin.Context) (string, bool) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok || userID == "" {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError(msgMissingAuthHeader))
		return "", false
	}
	return userID, true
}
