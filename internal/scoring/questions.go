package scoring

import "github.com/vytor/arcade/internal/models"

// QuestionRules configures per-question scoring for question-based challenges.
type QuestionRules struct {
	BasePoints     int `json:"base_points"`
	HintPenalty    int `json:"hint_penalty"`
	AttemptPenalty int `json:"attempt_penalty"` // per attempt beyond the first
	Floor          int `json:"floor"`           // minimum for a correct answer
	MediumBonus    int `json:"medium_bonus"`
	HardBonus      int `json:"hard_bonus"`
}

// DefaultQuestionRules is the canonical rule set.
var DefaultQuestionRules = QuestionRules{
	BasePoints:     100,
	HintPenalty:    30,
	AttemptPenalty: 15,
	Floor:          20,
	MediumBonus:    20,
	HardBonus:      40,
}

// LenientQuestionRules charges less per retry but keeps a higher floor.
var LenientQuestionRules = QuestionRules{
	BasePoints:     100,
	HintPenalty:    30,
	AttemptPenalty: 10,
	Floor:          30,
	MediumBonus:    20,
	HardBonus:      40,
}

// QuestionScore scores one answer. Wrong answers score 0; correct answers never
// score below rules.Floor.
func QuestionScore(q models.QuestionResult, rules QuestionRules) int {
	if !q.Correct {
		return 0
	}

	points := rules.BasePoints
	if q.HintUsed {
		points -= rules.HintPenalty
	}
	if q.Attempts > 1 {
		points -= (q.Attempts - 1) * rules.AttemptPenalty
	}
	points += rules.difficultyBonus(q.Difficulty)
	return max(points, rules.Floor)
}

// QuestionSetScore sums QuestionScore over qs.
func QuestionSetScore(qs []models.QuestionResult, rules QuestionRules) int {
	total := 0
	for _, q := range qs {
		total += QuestionScore(q, rules)
	}
	return total
}

// QuestionAccuracy is the percentage of correct answers, or nil when qs is empty.
func QuestionAccuracy(qs []models.QuestionResult) *float64 {
	if len(qs) == 0 {
		return nil
	}
	correct := 0
	for _, q := range qs {
		if q.Correct {
			correct++
		}
	}
	acc := float64(correct) / float64(len(qs)) * 100
	return &acc
}

func (r QuestionRules) difficultyBonus(d models.Difficulty) int {
	switch d {
	case models.DifficultyMedium:
		return r.MediumBonus
	case models.DifficultyHard:
		return r.HardBonus
	default:
		return 0
	}
}
