package gacha

import "fmt"

// Engine draws outcomes from a validated Config. It keeps no per-user state,
// so one Engine can be shared by every user.
type Engine struct {
	cfg Config
	rng RandomSource
}

// NewEngine validates cfg and builds an engine. A nil rng uses DefaultRNG.
func NewEngine(cfg Config, rng RandomSource) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gacha config: %w", err)
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	// copy so later edits to the caller's slices cannot leak in
	tiers := make(map[RarityTier]TierPool, len(cfg.Tiers))
	for t, pool := range cfg.Tiers {
		tiers[t] = TierPool{
			Probability: pool.Probability,
			Items:       append([]Item(nil), pool.Items...),
		}
	}
	cfg.Tiers = tiers
	return &Engine{cfg: cfg, rng: rng}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	tiers := make(map[RarityTier]TierPool, len(e.cfg.Tiers))
	for t, pool := range e.cfg.Tiers {
		tiers[t] = TierPool{Probability: pool.Probability, Items: append([]Item(nil), pool.Items...)}
	}
	out := e.cfg
	out.Tiers = tiers
	return out
}

// DrawOne performs one draw for the given pity state.
// Precedence: Tier3 pity, then Tier2 pity, then a weighted roll.
// The caller applies the outcome with PityState.Apply.
func (e *Engine) DrawOne(p PityState) DrawOutcome {
	switch {
	case e.tier3Due(p.PullsSinceTier3):
		return e.outcome(Tier3, TriggerTier3Pity)
	case e.tier2Due(p.PullsSinceTier2):
		return e.outcome(Tier2, TriggerTier2Pity)
	default:
		return e.outcome(e.rollTier(), TriggerRoll)
	}
}

// DrawTen performs a batch of BatchSize draws.
//   - The Tier2 pity is checked once, before the batch; when due, the last
//     draw is forced to Tier2 (this overrides the Tier3 pity at that position).
//   - The Tier3 pity counter is tracked across the batch and can fire mid-batch.
//
// The caller applies all outcomes in order with PityState.ApplyAll.
func (e *Engine) DrawTen(p PityState) []DrawOutcome {
	guaranteed := e.tier2Due(p.PullsSinceTier2)
	since3 := p.PullsSinceTier3

	outs := make([]DrawOutcome, 0, BatchSize)
	for i := 0; i < BatchSize; i++ {
		var o DrawOutcome
		switch {
		case i == BatchSize-1 && guaranteed:
			o = e.outcome(Tier2, TriggerBatchGuarantee)
		case e.tier3Due(since3):
			o = e.outcome(Tier3, TriggerTier3Pity)
		default:
			o = e.outcome(e.rollTier(), TriggerRoll)
		}

		if o.Tier == Tier3 {
			since3 = 0
		} else {
			since3++
		}
		outs = append(outs, o)
	}
	return outs
}

// rollTier picks a tier by cumulative probability in tierOrder.
// Zero-probability tiers are never picked; rounding falls back to Tier1.
func (e *Engine) rollTier() RarityTier {
	u := e.rng.Float64()
	var cumulative float64
	for _, t := range tierOrder {
		p := e.cfg.Tiers[t].Probability
		cumulative += p
		if p > 0 && u <= cumulative {
			return t
		}
	}
	return Tier1
}

func (e *Engine) outcome(t RarityTier, trig Trigger) DrawOutcome {
	items := e.cfg.Tiers[t].Items
	return DrawOutcome{
		Tier:    t,
		Item:    items[e.rng.IntN(len(items))],
		Trigger: trig,
	}
}
