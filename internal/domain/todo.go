package domain

import "time"

type TodoItem struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	AccountID   int64      `json:"account_id" gorm:"index;not null"`
	ChallengeID *int64     `json:"challenge_id,omitempty" gorm:"index"`
	Text        string     `json:"text" gorm:"not null"`
	Done        bool       `json:"done"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (TodoItem) TableName() string { return "todo_items" }
