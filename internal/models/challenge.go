package models

import "time"

// ChallengeKind identifies a type of challenge in the catalog.
type ChallengeKind string

const (
	KindMathQuiz           ChallengeKind = "math_quiz"
	KindPatternRecognition ChallengeKind = "pattern_recognition"
	KindMemorySequence     ChallengeKind = "memory_sequence"
	KindReactionTime       ChallengeKind = "reaction_time"
	KindTicTacToe          ChallengeKind = "tic_tac_toe"
	KindChessPuzzle        ChallengeKind = "chess_puzzle"
	KindTargetPractice     ChallengeKind = "target_practice"
	KindSpaceShooter       ChallengeKind = "space_shooter"
)

// ScoringMode selects how a submission becomes a score.
type ScoringMode string

const (
	ModeTimed     ScoringMode = "timed"     // base + time bonus (+ accuracy bonus)
	ModeQuestions ScoringMode = "questions" // per-question rules
	ModeRaw       ScoringMode = "raw"       // score reported by the game, capped
	ModeMatch     ScoringMode = "match"     // win/draw/loss against the AI
)

// Difficulty of a single question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ChallengeParameters are fixed per challenge kind and known before a run starts.
type ChallengeParameters struct {
	Kind             ChallengeKind `json:"kind"`
	Title            string        `json:"title"`
	Mode             ScoringMode   `json:"mode"`
	BaseScore        int           `json:"base_score"`
	TimeLimitSeconds float64       `json:"time_limit_seconds"`
	PassAccuracy     float64       `json:"pass_accuracy,omitempty"`
	MaxRawScore      int           `json:"max_raw_score,omitempty"`
}

// ChallengeOutcome is produced once when a challenge ends and never changes.
type ChallengeOutcome struct {
	Success          bool     `json:"success"`
	TimeSpentSeconds float64  `json:"time_spent_seconds"`
	Score            int      `json:"score"`
	Accuracy         *float64 `json:"accuracy,omitempty"`
}

// QuestionResult is one answered question of a question-scored challenge.
type QuestionResult struct {
	Correct    bool       `json:"correct"`
	HintUsed   bool       `json:"hint_used"`
	Attempts   int        `json:"attempts"`
	Difficulty Difficulty `json:"difficulty"`
}

// ChallengeRun is a persisted challenge attempt inside a session. The outcome
// fields are zero until FinishedAt is set.
type ChallengeRun struct {
	ID               int64         `json:"id"`
	SessionID        int64         `json:"session_id"`
	Kind             ChallengeKind `json:"kind"`
	BaseScore        int           `json:"base_score"`
	TimeLimitSeconds float64       `json:"time_limit_seconds"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       *time.Time    `json:"finished_at"`
	Success          bool          `json:"success"`
	TimeSpentSeconds float64       `json:"time_spent_seconds"`
	Score            int           `json:"score"`
	Accuracy         *float64      `json:"accuracy,omitempty"`
	PuzzleID         string        `json:"puzzle_id,omitempty"`
}

// Finished reports whether the run has an outcome.
func (r ChallengeRun) Finished() bool {
	return r.FinishedAt != nil
}

// Outcome returns the run's outcome record.
func (r ChallengeRun) Outcome() ChallengeOutcome {
	return ChallengeOutcome{
		Success:          r.Success,
		TimeSpentSeconds: r.TimeSpentSeconds,
		Score:            r.Score,
		Accuracy:         r.Accuracy,
	}
}
