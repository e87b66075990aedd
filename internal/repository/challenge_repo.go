package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hackhub/internal/domain"
)

type ChallengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func (r *ChallengeRepository) Create(ctx context.Context, c *domain.Challenge) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ChallengeRepository) Update(ctx context.Context, c *domain.Challenge) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ChallengeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Challenge{}, id).Error
}

func (r *ChallengeRepository) GetByID(ctx context.Context, id int64) (*domain.Challenge, error) {
	var c domain.Challenge
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChallengeRepository) List(ctx context.Context) ([]domain.Challenge, error) {
	var challenges []domain.Challenge
	err := r.db.WithContext(ctx).Order("deadline").Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Challenge, error) {
	var challenges []domain.Challenge
	err := r.db.WithContext(ctx).
		Where("deadline > ?", now).
		Order("deadline").
		Find(&challenges).Error
	return challenges, err
}
