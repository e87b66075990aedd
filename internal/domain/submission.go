package domain

import "time"

type Submission struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	ChallengeID int64 `json:"challenge_id" gorm:"index;not null"`
	AccountID   int64 `json:"account_id" gorm:"index;not null"`

	Score    *int   `json:"score,omitempty"`
	Feedback string `json:"feedback,omitempty" gorm:"type:text"`

	FileName      string `json:"file_name"`
	FileExtension string `json:"file_extension"`
	File          []byte `json:"-"`

	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Submission) TableName() string { return "submissions" }
