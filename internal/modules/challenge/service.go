package challenge

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hackhub/internal/domain"
	"hackhub/internal/repository"
)

type Service struct {
	challenges *repository.ChallengeRepository
}

func NewService(challenges *repository.ChallengeRepository) *Service {
	return &Service{challenges: challenges}
}

func (s *Service) Create(ctx context.Context, req CreateChallengeRequest) (*domain.Challenge, error) {
	if req.Title == "" || req.Deadline.IsZero() {
		return nil, ErrInvalidRequest
	}

	ch := &domain.Challenge{
		Title:       req.Title,
		Description: req.Description,
		Rules:       req.Rules,
		Deadline:    req.Deadline,
	}
	if err := s.challenges.Create(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateChallengeRequest) (*domain.Challenge, error) {
	ch, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrInvalidRequest
		}
		ch.Title = *req.Title
	}
	if req.Description != nil {
		ch.Description = *req.Description
	}
	if req.Rules != nil {
		ch.Rules = *req.Rules
	}
	if req.Deadline != nil {
		ch.Deadline = *req.Deadline
	}

	if err := s.challenges.Update(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.challenges.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Challenge, error) {
	ch, err := s.challenges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ch, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Challenge, error) {
	return s.challenges.List(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Challenge, error) {
	return s.challenges.ListActive(ctx, time.Now().UTC())
}
