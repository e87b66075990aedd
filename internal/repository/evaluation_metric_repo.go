package repository

import (
	"context"

	"gorm.io/gorm"

	"hackhub/internal/domain"
)

type EvaluationMetricRepository struct {
	db *gorm.DB
}

func NewEvaluationMetricRepository(db *gorm.DB) *EvaluationMetricRepository {
	return &EvaluationMetricRepository{db: db}
}

func (r *EvaluationMetricRepository) Create(ctx context.Context, m *domain.EvaluationMetric) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *EvaluationMetricRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.EvaluationMetric{}, id).Error
}

func (r *EvaluationMetricRepository) GetByID(ctx context.Context, id int64) (*domain.EvaluationMetric, error) {
	var m domain.EvaluationMetric
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *EvaluationMetricRepository) List(ctx context.Context) ([]domain.EvaluationMetric, error) {
	var metrics []domain.EvaluationMetric
	err := r.db.WithContext(ctx).Order("id").Find(&metrics).Error
	return metrics, err
}

func (r *EvaluationMetricRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.EvaluationMetric, error) {
	var metrics []domain.EvaluationMetric
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id").
		Find(&metrics).Error
	return metrics, err
}
