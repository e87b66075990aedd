package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"hackhub/internal/domain"
	"hackhub/internal/pkg/tokens"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Account{}, &domain.RefreshToken{}))
	return db
}

func newTestAccount(t *testing.T, db *gorm.DB, email string) *domain.Account {
	t.Helper()

	a := &domain.Account{
		Email:           email,
		Provider:        domain.ProviderGoogle,
		ProviderSubject: "sub-" + email,
		Name:            "Test User",
		EmailVerified:   true,
		IsActive:        true,
		Roles:           []string{domain.RoleParticipant},
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

type sessionEnv struct {
	db      *gorm.DB
	issuer  *tokens.Issuer
	manager *SessionManager
	account *domain.Account
}

func newSessionEnv(t *testing.T) *sessionEnv {
	t.Helper()

	db := newTestDB(t)
	issuer := tokens.NewIssuer("test-secret", 15*time.Minute, 7*24*time.Hour)
	return &sessionEnv{
		db:      db,
		issuer:  issuer,
		manager: NewSessionManager(db, issuer, "test-pepper", 30*24*time.Hour),
		account: newTestAccount(t, db, "alice@example.com"),
	}
}

func (e *sessionEnv) familyTokens(t *testing.T, familyID string) []domain.RefreshToken {
	t.Helper()

	var recs []domain.RefreshToken
	require.NoError(t, e.db.Where("family_id = ?", familyID).Order("id").Find(&recs).Error)
	return recs
}

func (e *sessionEnv) activeCount(t *testing.T, familyID string) int {
	t.Helper()

	var n int64
	require.NoError(t, e.db.Model(&domain.RefreshToken{}).
		Where("family_id = ? AND revoked = ?", familyID, false).
		Count(&n).Error)
	return int(n)
}

func TestCreateFamily(t *testing.T) {
	e := newSessionEnv(t)

	rec, raw, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	assert.NotEmpty(t, rec.FamilyID)
	assert.NotEqual(t, raw, rec.TokenHash, "raw token must never be stored")
	assert.Nil(t, rec.RotatedFromID)
	assert.False(t, rec.Revoked)
	assert.Equal(t, 30*24*time.Hour, rec.SessionExpiresAt.Sub(rec.SessionStartedAt))
	assert.Equal(t, 1, e.activeCount(t, rec.FamilyID))
}

func TestCreateFamilyRevokesStaleSessions(t *testing.T) {
	e := newSessionEnv(t)

	stale, _, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)
	require.NoError(t, e.db.Model(&domain.RefreshToken{}).
		Where("id = ?", stale.ID).
		Update("session_expires_at", time.Now().UTC().Add(-time.Hour)).Error)

	fresh, _, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)

	var got domain.RefreshToken
	require.NoError(t, e.db.First(&got, stale.ID).Error)
	assert.True(t, got.Revoked)
	assert.Equal(t, domain.ReasonSessionExpired, got.RevokedReason)
	assert.Equal(t, 1, e.activeCount(t, fresh.FamilyID))
}

func TestValidateAndRotate(t *testing.T) {
	e := newSessionEnv(t)

	first, raw, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)

	account, successor, newRaw, err := e.manager.ValidateAndRotate(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, e.account.ID, account.ID)
	assert.NotEqual(t, raw, newRaw)
	assert.Equal(t, first.FamilyID, successor.FamilyID)
	require.NotNil(t, successor.RotatedFromID)
	assert.Equal(t, first.ID, *successor.RotatedFromID)

	// The session window never moves during rotation.
	assert.True(t, successor.SessionStartedAt.Equal(first.SessionStartedAt))
	assert.True(t, successor.SessionExpiresAt.Equal(first.SessionExpiresAt))

	var prev domain.RefreshToken
	require.NoError(t, e.db.First(&prev, first.ID).Error)
	assert.True(t, prev.Revoked)
	assert.Equal(t, domain.ReasonRotated, prev.RevokedReason)

	assert.Equal(t, 1, e.activeCount(t, first.FamilyID))
}

func TestRotationChainKeepsOneActive(t *testing.T) {
	e := newSessionEnv(t)

	first, raw, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, _, newRaw, err := e.manager.ValidateAndRotate(context.Background(), raw)
		require.NoError(t, err)
		raw = newRaw
	}

	recs := e.familyTokens(t, first.FamilyID)
	assert.Len(t, recs, 5)
	assert.Equal(t, 1, e.activeCount(t, first.FamilyID))
}

func TestReuseRevokesWholeFamily(t *testing.T) {
	e := newSessionEnv(t)

	first, raw, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)

	_, _, newRaw, err := e.manager.ValidateAndRotate(context.Background(), raw)
	require.NoError(t, err)

	// Replaying the rotated-away token compromises the chain.
	_, _, _, err = e.manager.ValidateAndRotate(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenReuseDetected)

	for _, rec := range e.familyTokens(t, first.FamilyID) {
		assert.True(t, rec.Revoked)
		assert.Equal(t, domain.ReasonReuseDetected, rec.RevokedReason)
	}

	// The stolen successor is dead too.
	_, _, _, err = e.manager.ValidateAndRotate(context.Background(), newRaw)
	assert.ErrorIs(t, err, ErrTokenReuseDetected)
}

func TestSessionCeilingCheckedBeforeReuse(t *testing.T) {
	e := newSessionEnv(t)

	first, raw, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)

	_, successor, _, err := e.manager.ValidateAndRotate(context.Background(), raw)
	require.NoError(t, err)

	// The whole family is past its ceiling; replaying the old link must read
	// as a stale session, not a break-in.
	require.NoError(t, e.db.Model(&domain.RefreshToken{}).
		Where("family_id = ?", first.FamilyID).
		Update("session_expires_at", time.Now().UTC().Add(-time.Minute)).Error)

	_, _, _, err = e.manager.ValidateAndRotate(context.Background(), raw)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// No reuse cascade: the successor keeps its own state.
	var got domain.RefreshToken
	require.NoError(t, e.db.First(&got, successor.ID).Error)
	assert.NotEqual(t, domain.ReasonReuseDetected, got.RevokedReason)
}

func TestExpiredTokenIsTerminalNotCascading(t *testing.T) {
	e := newSessionEnv(t)

	first, raw, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)

	require.NoError(t, e.db.Model(&domain.RefreshToken{}).
		Where("id = ?", first.ID).
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error)

	_, _, _, err = e.manager.ValidateAndRotate(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenExpired)

	var got domain.RefreshToken
	require.NoError(t, e.db.First(&got, first.ID).Error)
	assert.True(t, got.Revoked)
	assert.Equal(t, domain.ReasonExpired, got.RevokedReason)

	// The marking is terminal and idempotent: a second presentation fails
	// without rewriting the recorded reason.
	_, _, _, err = e.manager.ValidateAndRotate(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenReuseDetected)

	require.NoError(t, e.db.First(&got, first.ID).Error)
	assert.Equal(t, domain.ReasonExpired, got.RevokedReason)
}

func TestOwnerMismatchRevokesAccount(t *testing.T) {
	e := newSessionEnv(t)
	mallory := newTestAccount(t, e.db, "mallory@example.com")

	// A second live session for the victim, to prove account-wide revocation.
	other, _, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)

	first, raw, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)

	// Simulate a tampered record: stored owner no longer matches the signed
	// claims inside the token.
	require.NoError(t, e.db.Model(&domain.RefreshToken{}).
		Where("id = ?", first.ID).
		Update("account_id", mallory.ID).Error)

	_, _, _, err = e.manager.ValidateAndRotate(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenOwnerMismatch)

	// Every live token of the record's owner is revoked.
	var n int64
	require.NoError(t, e.db.Model(&domain.RefreshToken{}).
		Where("account_id = ? AND revoked = ?", mallory.ID, false).
		Count(&n).Error)
	assert.Zero(t, n)

	// The other account's session survives.
	assert.Equal(t, 1, e.activeCount(t, other.FamilyID))
}

func TestUnknownAndMalformedTokens(t *testing.T) {
	e := newSessionEnv(t)

	// Well-formed and signed, but never persisted.
	raw, err := e.issuer.GenerateRefreshToken(e.account.ID)
	require.NoError(t, err)
	_, _, _, err = e.manager.ValidateAndRotate(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	_, _, _, err = e.manager.ValidateAndRotate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestInactiveAccountCannotRotate(t *testing.T) {
	e := newSessionEnv(t)

	first, raw, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)

	require.NoError(t, e.db.Model(&domain.Account{}).
		Where("id = ?", e.account.ID).
		Update("is_active", false).Error)

	_, _, _, err = e.manager.ValidateAndRotate(context.Background(), raw)
	assert.ErrorIs(t, err, ErrAccountInactive)
	assert.Equal(t, 0, e.activeCount(t, first.FamilyID))
}

func TestLogoutRevoke(t *testing.T) {
	e := newSessionEnv(t)

	first, raw, err := e.manager.CreateFamily(context.Background(), e.account)
	require.NoError(t, err)

	require.NoError(t, e.manager.Revoke(context.Background(), raw))

	var got domain.RefreshToken
	require.NoError(t, e.db.First(&got, first.ID).Error)
	assert.True(t, got.Revoked)
	assert.Equal(t, domain.ReasonLoggedOut, got.RevokedReason)

	// Revoking again, or revoking junk, is a no-op.
	assert.NoError(t, e.manager.Revoke(context.Background(), raw))
	assert.NoError(t, e.manager.Revoke(context.Background(), "garbage"))

	_, _, _, err = e.manager.ValidateAndRotate(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenReuseDetected)
}
