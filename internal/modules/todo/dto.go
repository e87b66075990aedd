package todo

import "time"

type CreateTodoRequest struct {
	Text        string     `json:"text" binding:"required"`
	ChallengeID *int64     `json:"challenge_id"`
	Deadline    *time.Time `json:"deadline"`
}

type UpdateTodoRequest struct {
	Text     *string    `json:"text"`
	Done     *bool      `json:"done"`
	Deadline *time.Time `json:"deadline"`
}
