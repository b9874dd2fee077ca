package session_test

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/session"
)

func ptr(f float64) *float64 { return &f }

func sample() []models.ChallengeOutcome {
	return []models.ChallengeOutcome{
		{Success: true, TimeSpentSeconds: 12, Score: 100, Accuracy: ptr(90)},
		{Success: false, TimeSpentSeconds: 30, Score: 50},
		{Success: true, TimeSpentSeconds: 8, Score: 75, Accuracy: ptr(60)},
	}
}

func TestTotalScore(t *testing.T) {
	assert.Equal(t, 225, session.TotalScore(sample()))
}

func TestTotalScore_OrderIndependent(t *testing.T) {
	outcomes := sample()
	want := session.Summarize(outcomes)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.ChallengeOutcome(nil), outcomes...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := session.Summarize(shuffled)
		assert.Equal(t, want.TotalScore, got.TotalScore)
		assert.InDelta(t, want.SuccessRatePercent, got.SuccessRatePercent, 1e-9)
		assert.InDelta(t, want.AverageAccuracyPercent, got.AverageAccuracyPercent, 1e-9)
	}
}

func TestSuccessRate(t *testing.T) {
	assert.InDelta(t, 66.666, session.SuccessRate(sample()), 0.001)
}

func TestAverageAccuracy_IgnoresMissing(t *testing.T) {
	assert.InDelta(t, 75.0, session.AverageAccuracy(sample()), 1e-9)

	none := []models.ChallengeOutcome{{Score: 10}, {Score: 20, Success: true}}
	assert.Equal(t, 0.0, session.AverageAccuracy(none))
}

func TestEmptyInput(t *testing.T) {
	for _, in := range [][]models.ChallengeOutcome{nil, {}} {
		assert.Equal(t, 0, session.TotalScore(in))
		assert.Equal(t, 0.0, session.SuccessRate(in))
		assert.Equal(t, 0.0, session.AverageAccuracy(in))

		sum := session.Summarize(in)
		assert.False(t, math.IsNaN(sum.SuccessRatePercent))
		assert.False(t, math.IsNaN(sum.AverageAccuracyPercent))
		assert.Equal(t, 0, sum.Challenges)
	}
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	outcomes := sample()
	before := append([]models.ChallengeOutcome(nil), outcomes...)

	first := session.Summarize(outcomes)
	second := session.Summarize(outcomes)

	assert.Equal(t, before, outcomes)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, first.Challenges)
}

func TestOutcomes_SkipsUnfinishedRuns(t *testing.T) {
	now := time.Now()
	runs := []models.ChallengeRun{
		{ID: 1, FinishedAt: &now, Success: true, Score: 120, Accuracy: ptr(80)},
		{ID: 2},
		{ID: 3, FinishedAt: &now, Score: 10},
	}

	out := session.Outcomes(runs)
	require.Len(t, out, 2)
	assert.Equal(t, 120, out[0].Score)
	assert.Equal(t, 10, out[1].Score)
	assert.Equal(t, 130, session.TotalScore(out))
}
