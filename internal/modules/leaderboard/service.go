package leaderboard

import (
	"context"

	"github.com/rs/zerolog/log"

	"hackhub/internal/repository"
)

type Service struct {
	submissions *repository.SubmissionRepository
	hub         *Hub
}

func NewService(submissions *repository.SubmissionRepository, hub *Hub) *Service {
	return &Service{submissions: submissions, hub: hub}
}

func (s *Service) Standings(ctx context.Context) ([]repository.StandingRow, error) {
	return s.submissions.Standings(ctx)
}

// ScoreChanged recomputes the standings and pushes them to every websocket
// viewer. Called by the submission service after a judge writes a score.
func (s *Service) ScoreChanged(ctx context.Context) {
	if s.hub.ConnectionCount() == 0 {
		return
	}

	rows, err := s.submissions.Standings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("standings refresh for broadcast failed")
		return
	}

	s.hub.Broadcast(StandingsMessage{Type: "standings", Standings: rows})
}

// StandingsMessage is the websocket frame sent on every score change and on
// connect.
type StandingsMessage struct {
	Type      string                   `json:"type"`
	Standings []repository.StandingRow `json:"standings"`
}
