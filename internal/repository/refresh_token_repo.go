package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hackhub/internal/domain"
)

// RefreshTokenRepository provides DB access for refresh tokens. The rotation
// path in the auth module runs its own transaction; these helpers serve
// lookups, account-wide revocation and retention pruning.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RefreshTokenRepository) FindActiveByAccount(ctx context.Context, accountID int64) ([]domain.RefreshToken, error) {
	var tokens []domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND revoked = ?", accountID, false).
		Find(&tokens).Error
	return tokens, err
}

func (r *RefreshTokenRepository) FindByFamily(ctx context.Context, familyID string) ([]domain.RefreshToken, error) {
	var tokens []domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("id").
		Find(&tokens).Error
	return tokens, err
}

func (r *RefreshTokenRepository) RevokeByAccount(ctx context.Context, accountID int64, reason domain.RevokedReason) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("account_id = ? AND revoked = ?", accountID, false).
		Updates(map[string]any{
			"revoked":        true,
			"revoked_at":     now,
			"revoked_reason": reason,
		}).Error
}

// DeleteTerminalBefore prunes revoked records whose revocation is older than
// the cutoff. Active records are never touched.
func (r *RefreshTokenRepository) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("revoked = ? AND revoked_at < ?", true, cutoff).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}

func (r *RefreshTokenRepository) DB() *gorm.DB { return r.db }
