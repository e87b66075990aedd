package submission

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"hackhub/internal/domain"
	"hackhub/internal/repository"
)

// MaxFileSize caps uploaded submission archives at 25 MiB.
const MaxFileSize = 25 << 20

// ScoreListener is notified after a judge writes or changes a score. The
// leaderboard module uses it to push fresh standings to websocket clients.
type ScoreListener interface {
	ScoreChanged(ctx context.Context)
}

type Service struct {
	submissions *repository.SubmissionRepository
	challenges  *repository.ChallengeRepository
	listener    ScoreListener
}

func NewService(submissions *repository.SubmissionRepository, challenges *repository.ChallengeRepository) *Service {
	return &Service{submissions: submissions, challenges: challenges}
}

// SetScoreListener wires the leaderboard broadcast. Optional; nil means no
// notifications.
func (s *Service) SetScoreListener(l ScoreListener) {
	s.listener = l
}

// Create stores a participant's upload for a challenge. Late submissions are
// rejected against the challenge deadline.
func (s *Service) Create(ctx context.Context, accountID, challengeID int64, fileName string, file []byte) (*domain.Submission, error) {
	if accountID <= 0 || challengeID <= 0 || fileName == "" || len(file) == 0 {
		return nil, ErrInvalidRequest
	}
	if len(file) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	ch, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	if time.Now().UTC().After(ch.Deadline) {
		return nil, ErrDeadlinePassed
	}

	sub := &domain.Submission{
		ChallengeID:   challengeID,
		AccountID:     accountID,
		FileName:      filepath.Base(fileName),
		FileExtension: strings.TrimPrefix(filepath.Ext(fileName), "."),
		File:          file,
		SubmittedAt:   time.Now().UTC(),
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, err
	}

	// Don't echo the payload back.
	sub.File = nil
	return sub, nil
}

// SetScore persists a judge's score and feedback. No scoring arithmetic
// happens here; the value is stored as given.
func (s *Service) SetScore(ctx context.Context, id int64, req ScoreRequest) (*domain.Submission, error) {
	if req.Score == nil {
		return nil, ErrInvalidRequest
	}

	sub, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	score := *req.Score
	sub.Score = &score
	sub.Feedback = req.Feedback
	if err := s.submissions.Update(ctx, sub); err != nil {
		return nil, err
	}

	if s.listener != nil {
		s.listener.ScoreChanged(ctx)
	}
	return sub, nil
}

func (s *Service) Delete(ctx context.Context, id, accountID int64, isAdmin bool) error {
	sub, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && sub.AccountID != accountID {
		return ErrNotSubmissionOwner
	}
	return s.submissions.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Submission, error) {
	return s.submissions.List(ctx)
}

func (s *Service) ListByChallenge(ctx context.Context, challengeID int64) ([]domain.Submission, error) {
	return s.submissions.ListByChallenge(ctx, challengeID)
}

func (s *Service) ListByAccount(ctx context.Context, accountID int64) ([]domain.Submission, error) {
	return s.submissions.ListByAccount(ctx, accountID)
}
