package gacha

// PityState holds a user's pity counters. It is a value owned by the caller;
// the engine only reads it.

type PityState struct {
	PullsSinceTier3 int `json:"pulls_since_tier3"` // draws since the last Tier3
	PullsSinceTier2 int `json:"pulls_since_tier2"` // draws since the last Tier2
}

// Apply returns the state after one outcome:
// - both counters increment by 1
// - the counter of the achieved tier resets to 0; the other is untouched
func (p PityState) Apply(o DrawOutcome) PityState {
	p.PullsSinceTier3++
	p.PullsSinceTier2++
	switch o.Tier {
	case Tier3:
		p.PullsSinceTier3 = 0
	case Tier2:
		p.PullsSinceTier2 = 0
	}
	return p
}

// ApplyAll folds outcomes into the state in draw order.
func (p PityState) ApplyAll(outs []DrawOutcome) PityState {
	for _, o := range outs {
		p = p.Apply(o)
	}
	return p
}

// tier3Due reports whether the Tier3 hard pity fires with since3 prior misses.
func (e *Engine) tier3Due(since3 int) bool {
	return since3 >= e.cfg.Tier3Pity-1
}

// tier2Due reports whether the Tier2 hard pity fires with since2 prior misses.
func (e *Engine) tier2Due(since2 int) bool {
	return since2 >= e.cfg.Tier2Pity-1
}
