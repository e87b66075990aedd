package evaluationmetric

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"hackhub/internal/domain"
	"hackhub/internal/repository"
)

type Service struct {
	metrics *repository.EvaluationMetricRepository
}

func NewService(metrics *repository.EvaluationMetricRepository) *Service {
	return &Service{metrics: metrics}
}

func (s *Service) Create(ctx context.Context, req CreateMetricRequest) (*domain.EvaluationMetric, error) {
	label := strings.TrimSpace(req.Metric)
	if label == "" {
		return nil, ErrInvalidRequest
	}

	m := &domain.EvaluationMetric{
		Metric:    label,
		AccountID: req.AccountID,
	}
	if err := s.metrics.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.metrics.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.EvaluationMetric, error) {
	m, err := s.metrics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]domain.EvaluationMetric, error) {
	return s.metrics.List(ctx)
}

func (s *Service) ListByAccount(ctx context.Context, accountID int64) ([]domain.EvaluationMetric, error) {
	return s.metrics.ListByAccount(ctx, accountID)
}
