package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-errands/internal/identity"
)

type authServiceImpl struct {
	logger       zerolog.Logger
	introspector identity.Introspector
	accounts     identity.AccountCreator
	profiles     ProfileService
}

func NewAuthService(
	logger zerolog.Logger,
	introspector identity.Introspector,
	accounts identity.AccountCreator,
	profiles ProfileService,
) AuthService {
	return &authServiceImpl{
		logger:       logger,
		introspector: introspector,
		accounts:     accounts,
		profiles:     profiles,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*identity.Identity, error) {
	email := strings.TrimSpace(params.Email)
	if email == "" || params.Password == "" {
		return nil, newValidationError("Email and password are required.")
	}

	id, err := s.accounts.CreateUser(ctx, email, params.Password)
	if err != nil {
		var providerErr *identity.ProviderError
		switch {
		case errors.Is(err, identity.ErrUserAlreadyExists):
			s.logger.Error().
				Str("email", email).
				Msg("user with this email already exists")
			return nil, ErrUserAlreadyExists
		case errors.As(err, &providerErr):
			s.logger.Error().
				Err(err).
				Str("email", email).
				Msg("identity provider rejected registration")
			return nil, newValidationError(providerErr.Message)
		default:
			s.logger.Error().
				Err(err).
				Str("email", email).
				Msg("failed to create user")
			return nil, err
		}
	}
	s.logger.Debug().
		Str("user_id", id.ID).
		Msg("created user")

	if !s.profiles.EnsureProfile(ctx, *id) {
		return nil, ErrProfileUnavailable
	}

	s.logger.Info().
		Str("user_id", id.ID).
		Str("email", id.Email).
		Msg("registered user")
	return id, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*identity.Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	id, err := s.introspector.Introspect(ctx, token)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to verify token")
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if id == nil || id.ID == "" {
		s.logger.Error().Msg("token resolved to no identity")
		return nil, ErrUnauthenticated
	}

	if !s.profiles.EnsureProfile(ctx, *id) {
		return nil, ErrProfileUnavailable
	}

	s.logger.Debug().
		Str("user_id", id.ID).
		Msg("authenticated user")
	return id, nil
}
