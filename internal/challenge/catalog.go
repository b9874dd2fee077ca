// Package challenge holds the arcade's catalog of challenge kinds and the
// generators for their content.
package challenge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/scoring"
)

var ErrUnknownKind = errors.New("unknown challenge kind")

// Definition is a catalog entry: the fixed parameters of a kind plus, for
// kinds scored per question, the question rules.
type Definition struct {
	models.ChallengeParameters
	Rules scoring.QuestionRules `json:"-"`
	// Questions is how many questions a run of this kind serves, 0 when the
	// kind has no generated content.
	Questions int `json:"questions,omitempty"`
}

var catalog = []Definition{
	{
		ChallengeParameters: models.ChallengeParameters{
			Kind:             models.KindMathQuiz,
			Title:            "Math Quiz",
			Mode:             models.ModeTimed,
			BaseScore:        100,
			TimeLimitSeconds: 60,
		},
		Questions: 10,
	},
	{
		ChallengeParameters: models.ChallengeParameters{
			Kind:             models.KindPatternRecognition,
			Title:            "Pattern Recognition",
			Mode:             models.ModeQuestions,
			TimeLimitSeconds: 90,
			PassAccuracy:     60,
		},
		Rules:     scoring.DefaultQuestionRules,
		Questions: 5,
	},
	{
		ChallengeParameters: models.ChallengeParameters{
			Kind:             models.KindMemorySequence,
			Title:            "Memory Sequence",
			Mode:             models.ModeQuestions,
			TimeLimitSeconds: 120,
			PassAccuracy:     50,
		},
		// rounds get longer, so retries cost less and every round keeps a higher floor
		Rules: scoring.LenientQuestionRules,
	},
	{
		ChallengeParameters: models.ChallengeParameters{
			Kind:             models.KindReactionTime,
			Title:            "Reaction Time",
			Mode:             models.ModeTimed,
			BaseScore:        50,
			TimeLimitSeconds: 10,
		},
	},
	{
		ChallengeParameters: models.ChallengeParameters{
			Kind:             models.KindTicTacToe,
			Title:            "Tic-Tac-Toe",
			Mode:             models.ModeMatch,
			BaseScore:        100,
			TimeLimitSeconds: 120,
		},
	},
	{
		ChallengeParameters: models.ChallengeParameters{
			Kind:             models.KindChessPuzzle,
			Title:            "Chess Puzzle",
			Mode:             models.ModeTimed,
			BaseScore:        150,
			TimeLimitSeconds: 180,
		},
	},
	{
		ChallengeParameters: models.ChallengeParameters{
			Kind:             models.KindTargetPractice,
			Title:            "Target Practice",
			Mode:             models.ModeRaw,
			TimeLimitSeconds: 30,
			MaxRawScore:      1000,
		},
	},
	{
		ChallengeParameters: models.ChallengeParameters{
			Kind:             models.KindSpaceShooter,
			Title:            "Space Shooter",
			Mode:             models.ModeRaw,
			TimeLimitSeconds: 120,
			MaxRawScore:      5000,
		},
	},
}

// Catalog returns every challenge kind in display order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the definition of kind.
func Lookup(kind models.ChallengeKind) (Definition, error) {
	for _, d := range catalog {
		if d.Kind == kind {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// ParseKind accepts kind names case-insensitively, with dashes or underscores.
func ParseKind(s string) (models.ChallengeKind, error) {
	k := models.ChallengeKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, err := Lookup(k); err != nil {
		return "", err
	}
	return k, nil
}
