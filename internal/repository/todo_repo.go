package repository

import (
	"context"

	"gorm.io/gorm"

	"hackhub/internal/domain"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, t *domain.TodoItem) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TodoRepository) Update(ctx context.Context, t *domain.TodoItem) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TodoRepository) Delete(ctx context.Context, id, accountID int64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&domain.TodoItem{}).Error
}

func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*domain.TodoItem, error) {
	var t domain.TodoItem
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.TodoItem, error) {
	var items []domain.TodoItem
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id").
		Find(&items).Error
	return items, err
}
