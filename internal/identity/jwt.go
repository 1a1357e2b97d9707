package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// accessTokenClaims are the claims the provider puts in its access tokens.
type accessTokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTVerifier resolves access tokens locally by checking their HMAC
// signature with the provider's JWT secret.
type JWTVerifier struct {
	signingKey []byte
	audience   string
}

var _ Introspector = (*JWTVerifier)(nil)

func NewJWTVerifier(secret, audience string) *JWTVerifier {
	return &JWTVerifier{
		signingKey: []byte(secret),
		audience:   audience,
	}
}

func (v *JWTVerifier) Introspect(_ context.Context, token string) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	t, err := jwt.ParseWithClaims(
		token,
		&accessTokenClaims{},
		func(*jwt.Token) (any, error) {
			return v.signingKey, nil
		},
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := t.Claims.(*accessTokenClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: claims.Subject, Email: claims.Email}, nil
}
