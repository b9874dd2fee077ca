package models

import "time"

// Match statuses.
const (
	MatchInProgress = "in_progress"
	MatchHumanWon   = "human_won"
	MatchAIWon      = "ai_won"
	MatchDraw       = "draw"
	MatchTimedOut   = "timed_out"
)

// Match is a tic-tac-toe game between a player and the AI, bound to a challenge run.
// Board holds the nine-character form of board.Board.
type Match struct {
	ID          int64     `json:"id"`
	RunID       int64     `json:"run_id"`
	Tier        string    `json:"tier"`
	Board       string    `json:"board"`
	HumanMark   string    `json:"human_mark"`
	Status      string    `json:"status"`
	WinningLine []int     `json:"winning_line,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Over reports whether the match reached a terminal state.
func (m Match) Over() bool {
	return m.Status != MatchInProgress
}
