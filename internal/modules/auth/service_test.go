package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hackhub/internal/domain"
	"hackhub/internal/identity"
	"hackhub/internal/pkg/tokens"
	"hackhub/internal/repository"
)

type mockVerifier struct {
	mock.Mock
	provider domain.Provider
}

func (m *mockVerifier) Provider() domain.Provider { return m.provider }

func (m *mockVerifier) Verify(ctx context.Context, raw string) (*identity.Claims, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Claims), args.Error(1)
}

func newServiceEnv(t *testing.T) (*Service, *mockVerifier) {
	t.Helper()

	db := newTestDB(t)
	issuer := tokens.NewIssuer("test-secret", 15*time.Minute, 7*24*time.Hour)
	sessions := NewSessionManager(db, issuer, "test-pepper", 30*24*time.Hour)
	verifier := &mockVerifier{provider: domain.ProviderGoogle}

	svc := NewService(
		[]identity.Verifier{verifier},
		repository.NewAccountRepository(db),
		sessions,
		issuer,
	)
	return svc, verifier
}

func TestLoginWithProviderToken(t *testing.T) {
	svc, verifier := newServiceEnv(t)
	verifier.On("Verify", mock.Anything, "good-id-token").Return(googleClaims(), nil)

	result, err := svc.LoginWithProviderToken(context.Background(), domain.ProviderGoogle, "good-id-token")
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.EqualValues(t, (15 * time.Minute).Seconds(), result.ExpiresIn)
	assert.Greater(t, result.SessionExpiresAt, time.Now().UnixMilli())
	assert.Equal(t, "alice@example.com", result.Account.Email)
}

func TestLoginRejectsBadProviderToken(t *testing.T) {
	svc, verifier := newServiceEnv(t)
	verifier.On("Verify", mock.Anything, "bad-id-token").Return(nil, identity.ErrInvalidToken)

	_, err := svc.LoginWithProviderToken(context.Background(), domain.ProviderGoogle, "bad-id-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoginRejectsUnconfiguredProvider(t *testing.T) {
	svc, _ := newServiceEnv(t)

	_, err := svc.LoginWithProviderToken(context.Background(), domain.ProviderMicrosoft, "anything")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, verifier := newServiceEnv(t)
	verifier.On("Verify", mock.Anything, "good-id-token").Return(googleClaims(), nil)

	first, err := svc.LoginWithProviderToken(context.Background(), domain.ProviderGoogle, "good-id-token")
	require.NoError(t, err)

	first.Account.IsActive = false
	require.NoError(t, svc.accounts.Update(context.Background(), first.Account))

	_, err = svc.LoginWithProviderToken(context.Background(), domain.ProviderGoogle, "good-id-token")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestRefreshFlow(t *testing.T) {
	svc, verifier := newServiceEnv(t)
	verifier.On("Verify", mock.Anything, "good-id-token").Return(googleClaims(), nil)

	login, err := svc.LoginWithProviderToken(context.Background(), domain.ProviderGoogle, "good-id-token")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)

	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, login.SessionExpiresAt, refreshed.SessionExpiresAt,
		"refresh must not extend the session ceiling")

	// The replaced token is spent.
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenReuseDetected)

	// And the reuse burned the successor too.
	_, err = svc.Refresh(context.Background(), refreshed.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenReuseDetected)
}

func TestUpdateProfile(t *testing.T) {
	svc, verifier := newServiceEnv(t)
	verifier.On("Verify", mock.Anything, "good-id-token").Return(googleClaims(), nil)

	login, err := svc.LoginWithProviderToken(context.Background(), domain.ProviderGoogle, "good-id-token")
	require.NoError(t, err)

	bio := "Backend engineer, likes distributed systems."
	skills := "go,postgres,websockets"
	cv := "https://example.com/alice.pdf"
	account, err := svc.UpdateProfile(context.Background(), login.Account.ID, UpdateProfileRequest{
		Bio:    &bio,
		Skills: &skills,
		CVURL:  &cv,
	})
	require.NoError(t, err)

	assert.Equal(t, bio, account.Bio)
	assert.Equal(t, skills, account.Skills)
	assert.Equal(t, cv, account.CVURL)
	assert.Equal(t, "Alice Example", account.Name, "unset fields stay put")

	// A later login refreshes provider fields but leaves the self-maintained
	// profile alone.
	again, err := svc.LoginWithProviderToken(context.Background(), domain.ProviderGoogle, "good-id-token")
	require.NoError(t, err)
	assert.Equal(t, bio, again.Account.Bio)
	assert.Equal(t, skills, again.Account.Skills)
	assert.Equal(t, cv, again.Account.CVURL)
}

func TestLogoutStopsRefresh(t *testing.T) {
	svc, verifier := newServiceEnv(t)
	verifier.On("Verify", mock.Anything, "good-id-token").Return(googleClaims(), nil)

	login, err := svc.LoginWithProviderToken(context.Background(), domain.ProviderGoogle, "good-id-token")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.True(t, errors.Is(err, ErrTokenReuseDetected))
}
