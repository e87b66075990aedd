package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackhub/internal/domain"
	"hackhub/internal/identity"
	"hackhub/internal/repository"
)

func googleClaims() *identity.Claims {
	return &identity.Claims{
		Subject:       "google-sub-1",
		Email:         "Alice@Example.com",
		EmailVerified: true,
		Name:          "Alice Example",
		GivenName:     "Alice",
		FamilyName:    "Example",
		Picture:       "https://example.com/alice.png",
		Locale:        "en",
	}
}

func TestResolveOrCreateFirstSight(t *testing.T) {
	db := newTestDB(t)
	resolver := NewAccountResolver(repository.NewAccountRepository(db))

	account, err := resolver.ResolveOrCreate(context.Background(), domain.ProviderGoogle, "google-sub-1", googleClaims())
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", account.Email, "emails are stored lowercased")
	assert.Equal(t, domain.ProviderGoogle, account.Provider)
	assert.Equal(t, "google-sub-1", account.ProviderSubject)
	assert.True(t, account.IsActive)
	assert.True(t, account.EmailVerified)
	assert.Empty(t, account.Roles, "no roles are granted at signup")
	require.NotNil(t, account.LastLoginAt)
}

func TestResolveOrCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	resolver := NewAccountResolver(repository.NewAccountRepository(db))

	first, err := resolver.ResolveOrCreate(context.Background(), domain.ProviderGoogle, "google-sub-1", googleClaims())
	require.NoError(t, err)

	second, err := resolver.ResolveOrCreate(context.Background(), domain.ProviderGoogle, "google-sub-1", googleClaims())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var n int64
	require.NoError(t, db.Model(&domain.Account{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestResolveOrCreateRefreshesProfile(t *testing.T) {
	db := newTestDB(t)
	resolver := NewAccountResolver(repository.NewAccountRepository(db))

	_, err := resolver.ResolveOrCreate(context.Background(), domain.ProviderGoogle, "google-sub-1", googleClaims())
	require.NoError(t, err)

	// New picture, everything else absent: only the picture moves.
	update := &identity.Claims{
		Subject: "google-sub-1",
		Email:   "alice@example.com",
		Picture: "https://example.com/alice-v2.png",
	}
	account, err := resolver.ResolveOrCreate(context.Background(), domain.ProviderGoogle, "google-sub-1", update)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/alice-v2.png", account.Picture)
	assert.Equal(t, "Alice Example", account.Name, "empty claim values never erase stored fields")
	assert.Equal(t, "en", account.Locale)
}

func TestResolveOrCreateEmailConflict(t *testing.T) {
	db := newTestDB(t)
	resolver := NewAccountResolver(repository.NewAccountRepository(db))

	_, err := resolver.ResolveOrCreate(context.Background(), domain.ProviderGoogle, "google-sub-1", googleClaims())
	require.NoError(t, err)

	// Same email arriving from a different provider identity.
	microsoft := googleClaims()
	microsoft.Subject = "ms-sub-9"
	_, err = resolver.ResolveOrCreate(context.Background(), domain.ProviderMicrosoft, "ms-sub-9", microsoft)
	assert.ErrorIs(t, err, ErrAccountConflict)

	var n int64
	require.NoError(t, db.Model(&domain.Account{}).Count(&n).Error)
	assert.EqualValues(t, 1, n, "a conflicting login must not create or mutate accounts")
}
