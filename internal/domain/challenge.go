package domain

import "time"

type Challenge struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Rules       string    `json:"rules" gorm:"type:text"`
	Deadline    time.Time `json:"deadline" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Challenge) TableName() string { return "challenges" }
