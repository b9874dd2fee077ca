package scoring

import "math"

// MaxBonus is the ceiling of both the time and the accuracy bonus.
const MaxBonus = 50

// TimeBonus rewards finishing early: 50 at zero seconds, falling linearly to 0
// at the time limit. A non-positive or NaN limit gives no bonus.
func TimeBonus(timeSpent, timeLimit float64) int {
	if !(timeLimit > 0) || math.IsNaN(timeSpent) {
		return 0
	}
	ratio := clamp(1-timeSpent/timeLimit, 0, 1)
	return int(math.Round(ratio * MaxBonus))
}

// AccuracyBonus scales an accuracy percentage to [0, 50]. Out-of-range input is
// clamped rather than rejected.
func AccuracyBonus(accuracyPercent float64) int {
	if math.IsNaN(accuracyPercent) {
		return 0
	}
	return int(math.Round(ClampAccuracy(accuracyPercent) / 100 * MaxBonus))
}

// ChallengeScore is baseScore plus the time bonus, plus the accuracy bonus when
// accuracy is known. It is never negative and has no upper cap.
func ChallengeScore(baseScore int, timeSpent, timeLimit float64, accuracy *float64) int {
	score := baseScore + TimeBonus(timeSpent, timeLimit)
	if accuracy != nil {
		score += AccuracyBonus(*accuracy)
	}
	return max(score, 0)
}

// ClampAccuracy limits a percentage to [0, 100].
func ClampAccuracy(a float64) float64 {
	return clamp(a, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
