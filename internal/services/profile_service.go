package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-errands/internal/identity"
	"github.com/adanyl0v/go-errands/internal/models"
	"github.com/adanyl0v/go-errands/internal/storage"
)

type profileServiceImpl struct {
	logger zerolog.Logger
	users  storage.UserStore
}

func NewProfileService(
	logger zerolog.Logger,
	users storage.UserStore,
) ProfileService {
	return &profileServiceImpl{
		logger: logger,
		users:  users,
	}
}

func (s *profileServiceImpl) EnsureProfile(ctx context.Context, id identity.Identity) bool {
	if id.ID == "" {
		s.logger.Error().Msg("cannot reconcile profile without user id")
		return false
	}

	user := &models.User{
		ID:    id.ID,
		Email: id.Email,
	}
	err := s.users.UpsertUser(ctx, user)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", id.ID).
			Msg("failed to upsert user profile")
		return false
	}

	s.logger.Debug().
		Str("user_id", id.ID).
		Msg("reconciled user profile")
	return true
}
