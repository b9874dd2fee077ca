package models

import "time"

type Session struct {
	ID          int64      `json:"id"`
	Token       string     `json:"token"`
	ProfileID   int64      `json:"profile_id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// SessionSummary is derived from a session's outcomes and never stored.
type SessionSummary struct {
	Challenges             int     `json:"challenges"`
	TotalScore             int     `json:"total_score"`
	SuccessRatePercent     float64 `json:"success_rate_percent"`
	AverageAccuracyPercent float64 `json:"average_accuracy_percent"`
}
