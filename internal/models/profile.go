package models

import "time"

type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileStats is the cached roll-up of every completed session of a profile.
type ProfileStats struct {
	ProfileID              int64     `json:"profile_id"`
	SessionsPlayed         int       `json:"sessions_played"`
	ChallengesPlayed       int       `json:"challenges_played"`
	TotalScore             int       `json:"total_score"`
	BestSessionScore       int       `json:"best_session_score"`
	SuccessRatePercent     float64   `json:"success_rate_percent"`
	AverageAccuracyPercent float64   `json:"average_accuracy_percent"`
	UpdatedAt              time.Time `json:"updated_at"`
}
