package domain

import "time"

type HackathonInfo struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (HackathonInfo) TableName() string { return "hackathon_information" }

func (h *HackathonInfo) IsRunning(now time.Time) bool {
	return !now.Before(h.StartDate) && now.Before(h.EndDate)
}
