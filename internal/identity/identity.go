// Package identity talks to the external identity provider that issues
// and validates bearer tokens.
package identity

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// Identity is the caller as resolved by the provider.
type Identity struct {
	ID    string
	Email string
}

// Introspector resolves a bearer token to an identity. It returns
// ErrInvalidToken when the provider rejects the token.
type Introspector interface {
	Introspect(ctx context.Context, token string) (*Identity, error)
}

// AccountCreator creates confirmed accounts on behalf of users. It
// returns ErrUserAlreadyExists for a taken email and *ProviderError for
// any other rejection.
type AccountCreator interface {
	CreateUser(ctx context.Context, email, password string) (*Identity, error)
}

// ProviderError is a request the provider refused with a client error.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider rejected request (%d): %s", e.StatusCode, e.Message)
}
