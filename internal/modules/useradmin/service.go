package useradmin

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"hackhub/internal/domain"
	"hackhub/internal/repository"
)

type Service struct {
	accounts *repository.AccountRepository
	tokens   *repository.RefreshTokenRepository
}

func NewService(accounts *repository.AccountRepository, tokens *repository.RefreshTokenRepository) *Service {
	return &Service{accounts: accounts, tokens: tokens}
}

func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update changes roles and/or team assignment.
func (s *Service) Update(ctx context.Context, id int64, req UpdateAccountRequest) (*domain.Account, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Roles != nil {
		for _, r := range *req.Roles {
			if r != domain.RoleParticipant && r != domain.RoleJudge && r != domain.RoleAdmin {
				return nil, ErrUnknownRole
			}
		}
		a.Roles = *req.Roles
	}
	if req.Team != nil {
		a.Team = *req.Team
	}

	if err := s.accounts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Deactivate flips the active flag and revokes every live refresh token, so
// the account cannot refresh its way back in. The record itself is kept.
func (s *Service) Deactivate(ctx context.Context, id int64) (*domain.Account, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsActive {
		return a, nil
	}

	a.IsActive = false
	if err := s.accounts.Update(ctx, a); err != nil {
		return nil, err
	}
	if err := s.tokens.RevokeByAccount(ctx, id, domain.ReasonLoggedOut); err != nil {
		return nil, err
	}

	log.Info().Int64("account_id", id).Msg("account deactivated")
	return a, nil
}

// Reactivate restores a deactivated account. The user still has to log in
// again; no sessions are resurrected.
func (s *Service) Reactivate(ctx context.Context, id int64) (*domain.Account, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.IsActive {
		return a, nil
	}

	a.IsActive = true
	if err := s.accounts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
