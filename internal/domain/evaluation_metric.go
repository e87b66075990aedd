package domain

import "time"

// EvaluationMetric is a named criterion judges evaluate submissions against
// (e.g. "Technical depth"). Optionally pinned to the account that proposed
// it. The platform stores the labels only; weighing them is the jury's job.
type EvaluationMetric struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Metric    string    `json:"metric" gorm:"not null"`
	AccountID *int64    `json:"account_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (EvaluationMetric) TableName() string { return "evaluation_metrics" }
