// Package session rolls challenge outcomes up into session totals.
//
// Every function here only reads its input slice and returns the same value
// for any ordering of the outcomes.
package session

import "github.com/vytor/arcade/internal/models"

// TotalScore sums the scores of all outcomes.
func TotalScore(outcomes []models.ChallengeOutcome) int {
	total := 0
	for _, o := range outcomes {
		total += o.Score
	}
	return total
}

// SuccessRate is the percentage of successful outcomes, 0 for no outcomes.
func SuccessRate(outcomes []models.ChallengeOutcome) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	succeeded := 0
	for _, o := range outcomes {
		if o.Success {
			succeeded++
		}
	}
	return float64(succeeded) / float64(len(outcomes)) * 100
}

// AverageAccuracy is the mean accuracy over the outcomes that report one, 0 when
// none does.
func AverageAccuracy(outcomes []models.ChallengeOutcome) float64 {
	sum, n := 0.0, 0
	for _, o := range outcomes {
		if o.Accuracy == nil {
			continue
		}
		sum += *o.Accuracy
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Summarize computes the full summary in one pass over the outcomes.
func Summarize(outcomes []models.ChallengeOutcome) models.SessionSummary {
	return models.SessionSummary{
		Challenges:             len(outcomes),
		TotalScore:             TotalScore(outcomes),
		SuccessRatePercent:     SuccessRate(outcomes),
		AverageAccuracyPercent: AverageAccuracy(outcomes),
	}
}

// Outcomes extracts the outcome records of finished runs, in run order.
func Outcomes(runs []models.ChallengeRun) []models.ChallengeOutcome {
	out := make([]models.ChallengeOutcome, 0, len(runs))
	for _, r := range runs {
		if r.Finished() {
			out = append(out, r.Outcome())
		}
	}
	return out
}
