package domain

import "time"

// RevokedReason says why a refresh token left the Active state. All four
// reasons are terminal: a revoked token never rotates again.
type RevokedReason string

const (
	ReasonRotated        RevokedReason = "rotated"
	ReasonReuseDetected  RevokedReason = "reuse_detected"
	ReasonExpired        RevokedReason = "expired"
	ReasonSessionExpired RevokedReason = "session_expired"
	ReasonLoggedOut      RevokedReason = "logged_out"
)

// RefreshToken is one link of a rotation chain ("family").
//
// Security notes:
// - We never store the raw token in DB, only its SHA-256 hash (TokenHash).
// - On refresh we rotate tokens: the predecessor is revoked in the same
//   transaction that creates the successor, so within a family at most one
//   non-revoked token exists at any time.
// - SessionStartedAt/SessionExpiresAt are fixed at family creation and carried
//   unchanged through every rotation; they bound the whole session.
// - Records are kept after revocation for reuse detection and audit; pruning
//   past the retention horizon is cmd/auth_cleanup's job.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	AccountID int64   `json:"account_id" gorm:"index;not null"`
	Account   Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`

	TokenHash string `json:"-" gorm:"size:64;uniqueIndex;not null"`

	FamilyID      string `json:"family_id" gorm:"size:36;index;not null"`
	RotatedFromID *int64 `json:"rotated_from_id,omitempty" gorm:"index"`

	ExpiresAt        time.Time `json:"expires_at" gorm:"index;not null"`
	SessionStartedAt time.Time `json:"session_started_at" gorm:"not null"`
	SessionExpiresAt time.Time `json:"session_expires_at" gorm:"index;not null"`

	Revoked       bool          `json:"revoked" gorm:"not null;default:false;index"`
	RevokedAt     *time.Time    `json:"revoked_at,omitempty"`
	RevokedReason RevokedReason `json:"revoked_reason,omitempty" gorm:"size:32"`

	CreatedAt time.Time `json:"created_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t *RefreshToken) IsSessionExpired(now time.Time) bool {
	return now.After(t.SessionExpiresAt)
}
