package todo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hackhub/internal/domain"
	"hackhub/internal/repository"
)

type Service struct {
	todos *repository.TodoRepository
}

func NewService(todos *repository.TodoRepository) *Service {
	return &Service{todos: todos}
}

func (s *Service) Create(ctx context.Context, accountID int64, req CreateTodoRequest) (*domain.TodoItem, error) {
	if accountID <= 0 || req.Text == "" {
		return nil, ErrInvalidRequest
	}

	item := &domain.TodoItem{
		AccountID:   accountID,
		ChallengeID: req.ChallengeID,
		Text:        req.Text,
		Deadline:    req.Deadline,
	}
	if err := s.todos.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id, accountID int64, req UpdateTodoRequest) (*domain.TodoItem, error) {
	item, err := s.getOwned(ctx, id, accountID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		if *req.Text == "" {
			return nil, ErrInvalidRequest
		}
		item.Text = *req.Text
	}
	if req.Done != nil {
		item.Done = *req.Done
	}
	if req.Deadline != nil {
		item.Deadline = req.Deadline
	}

	if err := s.todos.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Toggle flips the done flag.
func (s *Service) Toggle(ctx context.Context, id, accountID int64) (*domain.TodoItem, error) {
	item, err := s.getOwned(ctx, id, accountID)
	if err != nil {
		return nil, err
	}

	item.Done = !item.Done
	if err := s.todos.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id, accountID int64) error {
	if _, err := s.getOwned(ctx, id, accountID); err != nil {
		return err
	}
	return s.todos.Delete(ctx, id, accountID)
}

func (s *Service) ListByAccount(ctx context.Context, accountID int64) ([]domain.TodoItem, error) {
	return s.todos.ListByAccount(ctx, accountID)
}

func (s *Service) getOwned(ctx context.Context, id, accountID int64) (*domain.TodoItem, error) {
	item, err := s.todos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.AccountID != accountID {
		return nil, ErrNotOwner
	}
	return item, nil
}
