package repository

import (
	"context"

	"gorm.io/gorm"

	"hackhub/internal/domain"
)

type HackathonRepository struct {
	db *gorm.DB
}

func NewHackathonRepository(db *gorm.DB) *HackathonRepository {
	return &HackathonRepository{db: db}
}

func (r *HackathonRepository) Create(ctx context.Context, h *domain.HackathonInfo) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HackathonRepository) Update(ctx context.Context, h *domain.HackathonInfo) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *HackathonRepository) GetByID(ctx context.Context, id int64) (*domain.HackathonInfo, error) {
	var h domain.HackathonInfo
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HackathonRepository) List(ctx context.Context) ([]domain.HackathonInfo, error) {
	var infos []domain.HackathonInfo
	err := r.db.WithContext(ctx).Order("start_date").Find(&infos).Error
	return infos, err
}

// Current returns the most recently starting hackathon record, which the
// frontend treats as the one to count down to.
func (r *HackathonRepository) Current(ctx context.Context) (*domain.HackathonInfo, error) {
	var h domain.HackathonInfo
	if err := r.db.WithContext(ctx).Order("start_date DESC").First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}
