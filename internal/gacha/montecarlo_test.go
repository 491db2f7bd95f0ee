package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunMonteCarlo_FirstTier3(t *testing.T) {
	e := newTestEngine(t, 2024)
	stats := RunMonteCarlo(e, GoalFirstTier3, 5000, nil)

	// expected value is (1 - 0.975^200) / 0.025 ~= 39.75
	assert.InDelta(t, 39.75, stats.Mean, 3)
	assert.LessOrEqual(t, stats.Max, DefaultTier3Pity)
	assert.LessOrEqual(t, stats.P50, stats.P90)
	assert.LessOrEqual(t, stats.P90, stats.P99)
	assert.Len(t, stats.Samples, 5000)
}

func TestRunMonteCarlo_FixedBudgetHitsPity(t *testing.T) {
	e := newTestEngine(t, 7)
	// 20 batches = 200 draws from empty pity always include a Tier3
	stats := RunMonteCarlo(e, GoalFixedBudget, 500, &SimBudget{NumBatches: 20})
	for _, s := range stats.Samples {
		assert.GreaterOrEqual(t, s, 1)
	}
}

func TestRunMonteCarlo_Degenerate(t *testing.T) {
	e := newTestEngine(t, 1)
	assert.Equal(t, Stats{}, RunMonteCarlo(e, GoalFirstTier3, 0, nil))

	stats := RunMonteCarlo(e, GoalFixedBudget, 3, nil)
	assert.Equal(t, 0.0, stats.Mean)
}

func TestCalcStats(t *testing.T) {
	s := calcStats([]int{1, 2, 3, 4, 5})
	assert.InDelta(t, 3.0, s.Mean, 1e-9)
	assert.InDelta(t, 2.0, s.Var, 1e-9)
	assert.InDelta(t, 3.0, s.P50, 1e-9)
	assert.Equal(t, 1, s.Min)
	assert.Equal(t, 5, s.Max)
	assert.InDelta(t, 4.6, s.P90, 1e-9)
}

func TestPercentile_Bounds(t *testing.T) {
	assert.Equal(t, 7.0, percentile([]int{7}, 0.9))
	assert.Equal(t, 1.0, percentile([]int{1, 9}, 0))
	assert.Equal(t, 9.0, percentile([]int{1, 9}, 1))
	assert.Equal(t, 5.0, percentile([]int{1, 9}, 0.5))
}
