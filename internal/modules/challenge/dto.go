package challenge

import "time"

type CreateChallengeRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Rules       string    `json:"rules"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

type UpdateChallengeRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Rules       *string    `json:"rules"`
	Deadline    *time.Time `json:"deadline"`
}
