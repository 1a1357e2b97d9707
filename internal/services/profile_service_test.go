package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/adanyl0v/go-errands/internal/identity"
)

func TestProfileService_EnsureProfile(t *testing.T) {
	store := newMemStore()
	svc := NewProfileService(zerolog.Nop(), store)
	ctx := context.Background()

	assert.True(t, svc.EnsureProfile(ctx, identity.Identity{ID: "u1", Email: "old@example.com"}))
	assert.True(t, svc.EnsureProfile(ctx, identity.Identity{ID: "u1", Email: "new@example.com"}))
	assert.Len(t, store.users, 1)
	assert.Equal(t, "new@example.com", store.users["u1"].Email)

	assert.False(t, svc.EnsureProfile(ctx, identity.Identity{Email: "anon@example.com"}))

	store.upsertUserErr = errStoreDown
	assert.False(t, svc.EnsureProfile(ctx, identity.Identity{ID: "u2", Email: "u2@example.com"}))
}
