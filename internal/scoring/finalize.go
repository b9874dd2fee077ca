package scoring

import (
	"math"

	"github.com/vytor/arcade/internal/models"
)

// MatchResult is the end of a game against the AI, from the player's side.
type MatchResult string

const (
	MatchWin  MatchResult = "win"
	MatchDraw MatchResult = "draw"
	MatchLoss MatchResult = "loss"
)

// Submission is what a challenge reports when it ends.
type Submission struct {
	Success          bool
	TimeSpentSeconds float64
	RawScore         float64
	Accuracy         *float64
	Questions        []models.QuestionResult
	Match            MatchResult
}

// Finalize converts a submission into the immutable outcome for a run, using the
// scoring mode of params. rules only matter for ModeQuestions.
func Finalize(params models.ChallengeParameters, rules QuestionRules, sub Submission) models.ChallengeOutcome {
	t := sub.TimeSpentSeconds
	if t < 0 || math.IsNaN(t) {
		t = 0
	}

	accuracy := clampedAccuracy(sub.Accuracy)
	out := models.ChallengeOutcome{TimeSpentSeconds: t, Accuracy: accuracy}

	switch params.Mode {
	case models.ModeQuestions:
		out.Accuracy = QuestionAccuracy(sub.Questions)
		out.Score = QuestionSetScore(sub.Questions, rules)
		out.Success = out.Accuracy != nil && *out.Accuracy >= params.PassAccuracy

	case models.ModeRaw:
		score := 0
		if !math.IsNaN(sub.RawScore) {
			score = max(int(math.Round(sub.RawScore)), 0)
		}
		if params.MaxRawScore > 0 {
			score = min(score, params.MaxRawScore)
		}
		out.Score = score
		out.Success = sub.Success

	case models.ModeMatch:
		out.Score = MatchScore(params, sub.Match, t)
		out.Success = sub.Match == MatchWin || sub.Match == MatchDraw

	default:
		out.Success = sub.Success
		switch {
		case sub.Success:
			out.Score = ChallengeScore(params.BaseScore, t, params.TimeLimitSeconds, accuracy)
		case accuracy != nil:
			out.Score = AccuracyBonus(*accuracy)
		}
	}
	return out
}

// MatchScore: a win earns the base score plus the time bonus, a draw half the
// base plus the time bonus, a loss nothing.
func MatchScore(params models.ChallengeParameters, result MatchResult, timeSpent float64) int {
	switch result {
	case MatchWin:
		return ChallengeScore(params.BaseScore, timeSpent, params.TimeLimitSeconds, nil)
	case MatchDraw:
		return ChallengeScore(params.BaseScore/2, timeSpent, params.TimeLimitSeconds, nil)
	default:
		return 0
	}
}

func clampedAccuracy(a *float64) *float64 {
	if a == nil || math.IsNaN(*a) {
		return nil
	}
	v := ClampAccuracy(*a)
	return &v
}
