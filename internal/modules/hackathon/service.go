package hackathon

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hackhub/internal/domain"
	"hackhub/internal/repository"
)

type Service struct {
	hackathons *repository.HackathonRepository
}

func NewService(hackathons *repository.HackathonRepository) *Service {
	return &Service{hackathons: hackathons}
}

// Current returns the hackathon record clients count down to, with the
// running-window flag evaluated at call time.
func (s *Service) Current(ctx context.Context) (*HackathonStatus, error) {
	h, err := s.hackathons.Current(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toStatus(h), nil
}

// Upsert replaces the current hackathon metadata, creating the record on
// first use.
func (s *Service) Upsert(ctx context.Context, req UpsertHackathonRequest) (*HackathonStatus, error) {
	if req.Name == "" || !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidRequest
	}

	h, err := s.hackathons.Current(ctx)
	switch {
	case err == nil:
		h.Name = req.Name
		h.Description = req.Description
		h.StartDate = req.StartDate
		h.EndDate = req.EndDate
		if err := s.hackathons.Update(ctx, h); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		h = &domain.HackathonInfo{
			Name:        req.Name,
			Description: req.Description,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
		}
		if err := s.hackathons.Create(ctx, h); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return toStatus(h), nil
}

func toStatus(h *domain.HackathonInfo) *HackathonStatus {
	return &HackathonStatus{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		StartDate:   h.StartDate,
		EndDate:     h.EndDate,
		IsRunning:   h.IsRunning(time.Now().UTC()),
	}
}
