package repository

import (
	"context"

	"gorm.io/gorm"

	"hackhub/internal/domain"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SubmissionRepository) Update(ctx context.Context, s *domain.Submission) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SubmissionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Submission{}, id).Error
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	var s domain.Submission
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List omits file bytes; they are only loaded on a single GetByID.
func (r *SubmissionRepository) List(ctx context.Context) ([]domain.Submission, error) {
	var submissions []domain.Submission
	err := r.db.WithContext(ctx).Omit("file").Order("id desc").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) ListByChallenge(ctx context.Context, challengeID int64) ([]domain.Submission, error) {
	var submissions []domain.Submission
	err := r.db.WithContext(ctx).Omit("file").
		Where("challenge_id = ?", challengeID).
		Order("id desc").
		Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Submission, error) {
	var submissions []domain.Submission
	err := r.db.WithContext(ctx).Omit("file").
		Where("account_id = ?", accountID).
		Order("id desc").
		Find(&submissions).Error
	return submissions, err
}

type StandingRow struct {
	AccountID   int64  `json:"account_id"`
	Name        string `json:"name"`
	Team        string `json:"team,omitempty"`
	TotalScore  int64  `json:"total_score"`
	Submissions int64  `json:"submissions"`
}

// Standings aggregates scored submissions per account, best first.
func (r *SubmissionRepository) Standings(ctx context.Context) ([]StandingRow, error) {
	var rows []StandingRow
	err := r.db.WithContext(ctx).
		Table("submissions").
		Select("submissions.account_id, accounts.name, accounts.team, COALESCE(SUM(submissions.score), 0) AS total_score, COUNT(submissions.id) AS submissions").
		Joins("JOIN accounts ON accounts.id = submissions.account_id").
		Where("submissions.score IS NOT NULL").
		Group("submissions.account_id, accounts.name, accounts.team").
		Order("total_score DESC").
		Scan(&rows).Error
	return rows, err
}
