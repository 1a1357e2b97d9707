package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// GoTrueClient calls the REST API of a GoTrue-compatible identity
// provider using the service key.
type GoTrueClient struct {
	logger     zerolog.Logger
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

var (
	_ Introspector   = (*GoTrueClient)(nil)
	_ AccountCreator = (*GoTrueClient)(nil)
)

func NewGoTrueClient(
	logger zerolog.Logger,
	baseURL string,
	serviceKey string,
	timeout time.Duration,
) *GoTrueClient {
	return &GoTrueClient{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// errorResponse covers the error shapes returned by different
// provider versions.
type errorResponse struct {
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (r errorResponse) text() string {
	for _, s := range []string{r.Msg, r.Message, r.ErrorDescription, r.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (c *GoTrueClient) Introspect(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Msg("failed to call identity provider")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusForbidden ||
		resp.StatusCode == http.StatusNotFound:
		return nil, ErrInvalidToken
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("unexpected identity provider response")
		return nil, fmt.Errorf("identity provider error: status %d", resp.StatusCode)
	}

	var user userResponse
	err = json.NewDecoder(resp.Body).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: user.ID, Email: user.Email}, nil
}

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

func (c *GoTrueClient) CreateUser(ctx context.Context, email, password string) (*Identity, error) {
	body, err := json.Marshal(createUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/admin/users", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Msg("failed to call identity provider")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp errorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&errResp)
		message := errResp.text()

		if resp.StatusCode >= http.StatusInternalServerError {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("message", message).
				Msg("identity provider failed to create user")
			return nil, fmt.Errorf("identity provider error: status %d", resp.StatusCode)
		}
		if isDuplicateUser(errResp) {
			return nil, ErrUserAlreadyExists
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: message}
	}

	var user userResponse
	err = json.NewDecoder(resp.Body).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("identity provider returned no user")
	}
	c.logger.Debug().
		Str("user_id", user.ID).
		Msg("created identity provider user")
	return &Identity{ID: user.ID, Email: user.Email}, nil
}

func isDuplicateUser(r errorResponse) bool {
	if r.ErrorCode == "email_exists" || r.ErrorCode == "user_already_exists" {
		return true
	}
	text := strings.ToLower(r.text())
	return strings.Contains(text, "already registered") ||
		strings.Contains(text, "already been registered") ||
		strings.Contains(text, "already exists")
}
