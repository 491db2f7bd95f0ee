package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRNG always returns the same roll and the first item.
type fixedRNG struct{ f float64 }

func (r fixedRNG) Float64() float64 { return r.f }
func (r fixedRNG) IntN(int) int     { return 0 }

func newTestEngine(t *testing.T, seed uint64) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), NewSeededRNG(seed))
	require.NoError(t, err)
	return e
}

// commonOnlyConfig never rolls anything above Tier1, so every rarer result
// comes from a pity rule.
func commonOnlyConfig() Config {
	cfg := DefaultConfig()
	cfg.Tiers[Tier3] = TierPool{Probability: 0, Items: cfg.Tiers[Tier3].Items}
	cfg.Tiers[Tier2] = TierPool{Probability: 0, Items: cfg.Tiers[Tier2].Items}
	cfg.Tiers[Tier1] = TierPool{Probability: 1, Items: cfg.Tiers[Tier1].Items}
	return cfg
}

func newCommonOnlyEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(commonOnlyConfig(), NewSeededRNG(7))
	require.NoError(t, err)
	return e
}

func TestDrawOne_Tier3Pity(t *testing.T) {
	e := newTestEngine(t, 1)
	for _, since3 := range []int{199, 200, 250} {
		for _, since2 := range []int{0, 9, 40} {
			for i := 0; i < 50; i++ {
				o := e.DrawOne(PityState{PullsSinceTier3: since3, PullsSinceTier2: since2})
				require.Equal(t, Tier3, o.Tier, "since3=%d since2=%d", since3, since2)
				assert.Equal(t, TriggerTier3Pity, o.Trigger)
			}
		}
	}
}

func TestDrawOne_Tier2Pity(t *testing.T) {
	e := newTestEngine(t, 2)
	for _, since3 := range []int{0, 100, 198} {
		for _, since2 := range []int{9, 10, 30} {
			for i := 0; i < 50; i++ {
				o := e.DrawOne(PityState{PullsSinceTier3: since3, PullsSinceTier2: since2})
				require.Equal(t, Tier2, o.Tier, "since3=%d since2=%d", since3, since2)
				assert.Equal(t, TriggerTier2Pity, o.Trigger)
			}
		}
	}
}

func TestDrawOne_Scenarios(t *testing.T) {
	e := newTestEngine(t, 3)
	assert.Equal(t, Tier3, e.DrawOne(PityState{PullsSinceTier3: 199, PullsSinceTier2: 0}).Tier)
	assert.Equal(t, Tier2, e.DrawOne(PityState{PullsSinceTier3: 0, PullsSinceTier2: 9}).Tier)
}

func TestDrawOne_DoesNotMutatePity(t *testing.T) {
	e := newTestEngine(t, 4)
	p := PityState{PullsSinceTier3: 12, PullsSinceTier2: 3}
	before := p
	for i := 0; i < 100; i++ {
		e.DrawOne(p)
		e.DrawTen(p)
	}
	assert.Equal(t, before, p)
}

func TestDrawOne_ItemBelongsToTier(t *testing.T) {
	e := newTestEngine(t, 5)
	cfg := DefaultConfig()
	var p PityState
	for i := 0; i < 2000; i++ {
		o := e.DrawOne(p)
		assert.Contains(t, cfg.Tiers[o.Tier].Items, o.Item)
		p = p.Apply(o)
	}
}

func TestDrawOne_PityCycleWithoutLuck(t *testing.T) {
	e := newCommonOnlyEngine(t)
	var p PityState
	for draw := 1; draw <= 200; draw++ {
		o := e.DrawOne(p)
		switch {
		case draw == 200:
			require.Equal(t, Tier3, o.Tier, "draw %d", draw)
		case draw%10 == 0:
			require.Equal(t, Tier2, o.Tier, "draw %d", draw)
		default:
			require.Equal(t, Tier1, o.Tier, "draw %d", draw)
		}
		p = p.Apply(o)
	}
	// Tier3 at draw 200 does not reset the Tier2 counter, so draw 201 is forced.
	assert.Equal(t, PityState{PullsSinceTier3: 0, PullsSinceTier2: 10}, p)
	assert.Equal(t, Tier2, e.DrawOne(p).Tier)
}

func TestDrawTen_GuaranteeOnLastDraw(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		e := newTestEngine(t, seed)
		outs := e.DrawTen(PityState{PullsSinceTier3: 0, PullsSinceTier2: 9})
		require.Len(t, outs, BatchSize)

		assert.Equal(t, Tier2, outs[9].Tier)
		assert.Equal(t, TriggerBatchGuarantee, outs[9].Trigger)

		best := Tier1
		for _, o := range outs {
			if o.Tier > best {
				best = o.Tier
			}
		}
		assert.GreaterOrEqual(t, int(best), int(Tier2))
	}
}

func TestDrawTen_Tier2NotRecheckedInsideBatch(t *testing.T) {
	e := newCommonOnlyEngine(t)
	outs := e.DrawTen(PityState{PullsSinceTier3: 0, PullsSinceTier2: 9})
	require.Len(t, outs, BatchSize)
	for i, o := range outs[:9] {
		assert.Equal(t, Tier1, o.Tier, "draw %d", i+1)
	}
	assert.Equal(t, Tier2, outs[9].Tier)
}

func TestDrawTen_NoGuaranteeBelowThreshold(t *testing.T) {
	e := newCommonOnlyEngine(t)
	outs := e.DrawTen(PityState{PullsSinceTier3: 0, PullsSinceTier2: 8})
	require.Len(t, outs, BatchSize)
	for i, o := range outs {
		assert.Equal(t, Tier1, o.Tier, "draw %d", i+1)
		assert.Equal(t, TriggerRoll, o.Trigger)
	}
}

func TestDrawTen_Tier3PityFiresMidBatch(t *testing.T) {
	e := newCommonOnlyEngine(t)
	outs := e.DrawTen(PityState{PullsSinceTier3: 195, PullsSinceTier2: 0})
	require.Len(t, outs, BatchSize)
	for i, o := range outs {
		if i == 4 {
			assert.Equal(t, Tier3, o.Tier)
			assert.Equal(t, TriggerTier3Pity, o.Trigger)
			continue
		}
		assert.Equal(t, Tier1, o.Tier, "draw %d", i+1)
	}
}

func TestDrawTen_GuaranteeOverridesTier3PityOnLastDraw(t *testing.T) {
	e := newCommonOnlyEngine(t)
	outs := e.DrawTen(PityState{PullsSinceTier3: 190, PullsSinceTier2: 9})
	require.Len(t, outs, BatchSize)
	for i, o := range outs[:9] {
		assert.Equal(t, Tier1, o.Tier, "draw %d", i+1)
	}
	assert.Equal(t, Tier2, outs[9].Tier)
	assert.Equal(t, TriggerBatchGuarantee, outs[9].Trigger)
}

func TestDraw_Deterministic(t *testing.T) {
	a := newTestEngine(t, 99)
	b := newTestEngine(t, 99)

	var pa, pb PityState
	for i := 0; i < 500; i++ {
		oa, ob := a.DrawOne(pa), b.DrawOne(pb)
		require.Equal(t, oa, ob)
		pa, pb = pa.Apply(oa), pb.Apply(ob)
	}
	for i := 0; i < 50; i++ {
		ta, tb := a.DrawTen(pa), b.DrawTen(pb)
		require.Equal(t, ta, tb)
		pa, pb = pa.ApplyAll(ta), pb.ApplyAll(tb)
	}
}

func TestRollTier_FallsBackToTier1(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tiers[Tier1] = TierPool{Probability: 0.7899999, Items: cfg.Tiers[Tier1].Items}
	e, err := NewEngine(cfg, fixedRNG{f: 0.9999999999})
	require.NoError(t, err)

	o := e.DrawOne(PityState{})
	assert.Equal(t, Tier1, o.Tier)
	assert.Equal(t, cfg.Tiers[Tier1].Items[0], o.Item)
}

func TestRollTier_CumulativeBoundaries(t *testing.T) {
	tests := []struct {
		roll float64
		want RarityTier
	}{
		{0, Tier3},
		{0.025, Tier3},
		{0.0251, Tier2},
		{0.2099, Tier2},
		{0.2101, Tier1},
		{0.999, Tier1},
	}
	for _, tt := range tests {
		e, err := NewEngine(DefaultConfig(), fixedRNG{f: tt.roll})
		require.NoError(t, err)
		assert.Equal(t, tt.want, e.DrawOne(PityState{}).Tier, "roll=%v", tt.roll)
	}
}

func TestTierFrequencies_ConvergeToConfig(t *testing.T) {
	e := newTestEngine(t, 42)
	freq := TierFrequencies(e, 100000)

	// should be around 2.5% / 18.5% / 79%
	assert.InDelta(t, 0.025, freq[Tier3], 0.01)
	assert.InDelta(t, 0.185, freq[Tier2], 0.01)
	assert.InDelta(t, 0.79, freq[Tier1], 0.01)
}

func TestNewEngine_CopiesConfig(t *testing.T) {
	cfg := DefaultConfig()
	e, err := NewEngine(cfg, NewSeededRNG(1))
	require.NoError(t, err)

	cfg.Tiers[Tier3].Items[0] = Item{Name: "changed"}
	assert.Equal(t, "Aru", e.Config().Tiers[Tier3].Items[0].Name)
}
