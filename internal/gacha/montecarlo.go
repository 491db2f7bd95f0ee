package gacha

import (
	"math"
	"slices"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	GoalFirstTier3  TrialGoal = "first_tier3"  // draws until the first Tier3
	GoalFixedBudget TrialGoal = "fixed_budget" // Tier3 count within SimBudget
)

// SimBudget is the per-trial spend for GoalFixedBudget.
type SimBudget struct {
	NumBatches int // ten-draws per trial
}

// Stats summarizes one sample set. Var is the population variance and the
// percentiles interpolate linearly between the nearest ranks.
type Stats struct {
	Mean    float64 `json:"mean"`
	Var     float64 `json:"var"`
	StdDev  float64 `json:"stddev"`
	P50     float64 `json:"p50"`
	P90     float64 `json:"p90"`
	P99     float64 `json:"p99"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Samples []int   `json:"-"`
}

func calcStats(xs []int) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	// Welford keeps the variance stable for long runs
	var mean, m2 float64
	for i, v := range xs {
		d := float64(v) - mean
		mean += d / float64(i+1)
		m2 += d * (float64(v) - mean)
	}
	variance := m2 / float64(len(xs))

	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(sorted, 0.50),
		P90:     percentile(sorted, 0.90),
		P99:     percentile(sorted, 0.99),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Samples: xs,
	}
}

func percentile(sorted []int, p float64) float64 {
	last := len(sorted) - 1
	switch {
	case p <= 0 || last == 0:
		return float64(sorted[0])
	case p >= 1:
		return float64(sorted[last])
	}
	pos := p * float64(last)
	lo := int(pos)
	if lo >= last {
		return float64(sorted[last])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}

// drawsToFirstTier3 single-draws from empty pity until a Tier3 lands.
func drawsToFirstTier3(e *Engine) int {
	var pity PityState
	for n := 1; ; n++ {
		o := e.DrawOne(pity)
		if o.Tier == Tier3 {
			return n
		}
		pity = pity.Apply(o)
	}
}

// tier3InBatches runs batches ten-draws and counts the Tier3 outcomes.
func tier3InBatches(e *Engine, batches int) int {
	var (
		pity PityState
		hits int
	)
	for range batches {
		outs := e.DrawTen(pity)
		for _, o := range outs {
			if o.Tier == Tier3 {
				hits++
			}
		}
		pity = pity.ApplyAll(outs)
	}
	return hits
}

// RunMonteCarlo repeats trials of goal and summarizes the per-trial metric.
// GoalFixedBudget without a positive budget records zero for every trial.
func RunMonteCarlo(e *Engine, goal TrialGoal, trials int, budget *SimBudget) Stats {
	if trials <= 0 {
		return Stats{}
	}
	trial := func() int { return 0 }
	switch goal {
	case GoalFirstTier3:
		trial = func() int { return drawsToFirstTier3(e) }
	case GoalFixedBudget:
		if budget != nil && budget.NumBatches > 0 {
			n := budget.NumBatches
			trial = func() int { return tier3InBatches(e, n) }
		}
	}
	samples := make([]int, trials)
	for i := range samples {
		samples[i] = trial()
	}
	return calcStats(samples)
}

// TierFrequencies draws n times with empty pity every draw and returns the
// observed share of each tier.
func TierFrequencies(e *Engine, n int) map[RarityTier]float64 {
	freq := make(map[RarityTier]float64, len(tierOrder))
	if n <= 0 {
		return freq
	}
	counts := make(map[RarityTier]int, len(tierOrder))
	for range n {
		counts[e.DrawOne(PityState{}).Tier]++
	}
	for _, t := range tierOrder {
		freq[t] = float64(counts[t]) / float64(n)
	}
	return freq
}
