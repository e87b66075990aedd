package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hackhub/internal/domain"
)

// SessionManager owns the refresh-token rotation chain. Per family the states
// are Active -> {Rotated, ReuseRevoked, Expired, SessionExpired}; only Active
// rotates, everything else is terminal.
//
// Both the predecessor-revoke + successor-create step and the family-wide
// revocation on reuse run inside one transaction. The predecessor revoke is an
// optimistic UPDATE ... WHERE revoked = false: when two requests race with the
// same token, exactly one wins the rows-affected check and the loser takes the
// reuse path. Concurrent duplicate refresh is indistinguishable from an attack
// and is treated identically.
type SessionManager struct {
	db                 *gorm.DB
	issuer             tokenIssuer
	pepper             string
	maxSessionDuration time.Duration
}

func NewSessionManager(db *gorm.DB, issuer tokenIssuer, pepper string, maxSessionDuration time.Duration) *SessionManager {
	return &SessionManager{
		db:                 db,
		issuer:             issuer,
		pepper:             pepper,
		maxSessionDuration: maxSessionDuration,
	}
}

// CreateFamily starts a new rotation chain for the account: fresh family id,
// session window fixed at [now, now+maxSessionDuration], one Active token.
// Stale Active tokens of the same account whose session window already elapsed
// are revoked in the same transaction, so a new family is never trusted while
// expired leftovers look alive.
func (m *SessionManager) CreateFamily(ctx context.Context, account *domain.Account) (*domain.RefreshToken, string, error) {
	now := time.Now().UTC()

	raw, err := m.issuer.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, "", err
	}

	rec := &domain.RefreshToken{
		AccountID:        account.ID,
		TokenHash:        m.hash(raw),
		FamilyID:         uuid.NewString(),
		ExpiresAt:        now.Add(m.issuer.RefreshTTL()),
		SessionStartedAt: now,
		SessionExpiresAt: now.Add(m.maxSessionDuration),
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.RefreshToken{}).
			Where("account_id = ? AND revoked = ? AND session_expires_at < ?", account.ID, false, now).
			Updates(map[string]any{
				"revoked":        true,
				"revoked_at":     now,
				"revoked_reason": domain.ReasonSessionExpired,
			}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, "", err
	}
	return rec, raw, nil
}

// ValidateAndRotate is the critical path of the refresh flow. Check order
// matters: the absolute session ceiling is examined before rotation state so a
// long-idle family fails with a plain "re-authenticate" signal instead of a
// reuse alarm, and reuse detection fires before the token's own expiry because
// a replayed rotated token is a stronger signal than routine expiry.
//
// Terminal-state markings (and family/account revocations) are committed even
// when the call fails; only unexpected storage errors roll back.
func (m *SessionManager) ValidateAndRotate(ctx context.Context, raw string) (*domain.Account, *domain.RefreshToken, string, error) {
	claims, err := m.issuer.ParseRefreshToken(raw)
	if err != nil {
		return nil, nil, "", ErrInvalidToken
	}

	hash := m.hash(raw)
	now := time.Now().UTC()

	var (
		account      domain.Account
		successor    *domain.RefreshToken
		successorRaw string
		authErr      error
	)

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var current domain.RefreshToken
		if err := q.Where("token_hash = ?", hash).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				authErr = ErrTokenNotFound
				return nil
			}
			return err
		}

		if current.IsSessionExpired(now) {
			if !current.Revoked {
				if err := revokeOne(tx, current.ID, now, domain.ReasonSessionExpired); err != nil {
					return err
				}
			}
			authErr = ErrSessionExpired
			return nil
		}

		if current.Revoked {
			if current.RevokedReason != domain.ReasonExpired && current.RevokedReason != domain.ReasonSessionExpired {
				// A rotated-away link was replayed: the whole chain is
				// compromised.
				log.Warn().
					Int64("account_id", current.AccountID).
					Str("family_id", current.FamilyID).
					Msg("refresh token reuse detected, revoking family")
				if err := revokeFamily(tx, current.FamilyID, now); err != nil {
					return err
				}
			}
			authErr = ErrTokenReuseDetected
			return nil
		}

		if current.IsExpired(now) {
			if err := revokeOne(tx, current.ID, now, domain.ReasonExpired); err != nil {
				return err
			}
			authErr = ErrTokenExpired
			return nil
		}

		if current.AccountID != claims.AccountID {
			log.Warn().
				Int64("account_id", current.AccountID).
				Int64("claimed_account_id", claims.AccountID).
				Msg("refresh token owner mismatch, revoking all account tokens")
			if err := revokeAccount(tx, current.AccountID, now); err != nil {
				return err
			}
			authErr = ErrTokenOwnerMismatch
			return nil
		}

		if err := tx.First(&account, current.AccountID).Error; err != nil {
			return err
		}
		if !account.IsActive {
			if err := revokeFamily(tx, current.FamilyID, now); err != nil {
				return err
			}
			authErr = ErrAccountInactive
			return nil
		}

		res := tx.Model(&domain.RefreshToken{}).
			Where("id = ? AND revoked = ?", current.ID, false).
			Updates(map[string]any{
				"revoked":        true,
				"revoked_at":     now,
				"revoked_reason": domain.ReasonRotated,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race against a concurrent rotation of the same token.
			if err := revokeFamily(tx, current.FamilyID, now); err != nil {
				return err
			}
			authErr = ErrTokenReuseDetected
			return nil
		}

		newRaw, err := m.issuer.GenerateRefreshToken(account.ID)
		if err != nil {
			return err
		}

		succ := &domain.RefreshToken{
			AccountID:        current.AccountID,
			TokenHash:        m.hash(newRaw),
			FamilyID:         current.FamilyID,
			RotatedFromID:    &current.ID,
			ExpiresAt:        now.Add(m.issuer.RefreshTTL()),
			SessionStartedAt: current.SessionStartedAt,
			SessionExpiresAt: current.SessionExpiresAt,
		}
		if err := tx.Create(succ).Error; err != nil {
			return err
		}

		successor = succ
		successorRaw = newRaw
		return nil
	})
	if err != nil {
		return nil, nil, "", err
	}
	if authErr != nil {
		return nil, nil, "", authErr
	}
	return &account, successor, successorRaw, nil
}

// Revoke terminates the chain link matching raw, best effort. Unknown tokens
// are not an error.
func (m *SessionManager) Revoke(ctx context.Context, raw string) error {
	if _, err := m.issuer.ParseRefreshToken(raw); err != nil {
		return nil
	}

	now := time.Now().UTC()
	var current domain.RefreshToken
	if err := m.db.WithContext(ctx).Where("token_hash = ?", m.hash(raw)).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if current.Revoked {
		return nil
	}
	return revokeOne(m.db.WithContext(ctx), current.ID, now, domain.ReasonLoggedOut)
}

func (m *SessionManager) hash(raw string) string {
	sum := sha256.Sum256([]byte(raw + m.pepper))
	return hex.EncodeToString(sum[:])
}

func revokeOne(tx *gorm.DB, id int64, now time.Time, reason domain.RevokedReason) error {
	return tx.Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked = ?", id, false).
		Updates(map[string]any{
			"revoked":        true,
			"revoked_at":     now,
			"revoked_reason": reason,
		}).Error
}

// revokeFamily stamps every link of the chain, including already-terminal
// ones: after a reuse event the whole family reads reuse_detected.
func revokeFamily(tx *gorm.DB, familyID string, now time.Time) error {
	return tx.Model(&domain.RefreshToken{}).
		Where("family_id = ?", familyID).
		Updates(map[string]any{
			"revoked":        true,
			"revoked_at":     now,
			"revoked_reason": domain.ReasonReuseDetected,
		}).Error
}

func revokeAccount(tx *gorm.DB, accountID int64, now time.Time) error {
	return tx.Model(&domain.RefreshToken{}).
		Where("account_id = ? AND revoked = ?", accountID, false).
		Updates(map[string]any{
			"revoked":        true,
			"revoked_at":     now,
			"revoked_reason": domain.ReasonReuseDetected,
		}).Error
}
