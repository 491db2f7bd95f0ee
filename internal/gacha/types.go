package gacha

import "fmt"

// RarityTier is the rarity of a draw result. Tier3 is the rarest.
type RarityTier int

const (
	Tier1 RarityTier = iota + 1
	Tier2
	Tier3
)

// tierOrder is the fixed walk order for cumulative probability selection.
var tierOrder = [...]RarityTier{Tier3, Tier2, Tier1}

// Tiers returns every tier in selection order (rarest first).
func Tiers() []RarityTier {
	return tierOrder[:]
}

func (t RarityTier) String() string {
	switch t {
	case Tier3:
		return "tier3"
	case Tier2:
		return "tier2"
	case Tier1:
		return "tier1"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Stars is the star count shown to players (3 for Tier3 ... 1 for Tier1).
func (t RarityTier) Stars() int { return int(t) }

// Valid reports whether t is one of the three known tiers.
func (t RarityTier) Valid() bool {
	return t >= Tier1 && t <= Tier3
}

// ParseTier maps a config key ("tier3", "tier2", "tier1") to a RarityTier.
func ParseTier(s string) (RarityTier, error) {
	for _, t := range tierOrder {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Item is one drawable entry of a tier.
type Item struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"` // optional image reference
}

// TierPool holds a tier's draw probability and its items.
type TierPool struct {
	Probability float64
	Items       []Item
}

// Config is the static engine configuration, constant for the engine lifetime.
type Config struct {
	Tiers     map[RarityTier]TierPool
	Tier3Pity int // draws until a Tier3 is forced
	Tier2Pity int // draws until a Tier2 is forced
}

// Default pity thresholds.
const (
	DefaultTier3Pity = 200
	DefaultTier2Pity = 10
)

// BatchSize is the number of draws in one batch draw.
const BatchSize = 10

// Trigger records which rule decided the tier of a draw.
type Trigger string

const (
	TriggerRoll           Trigger = "roll"
	TriggerTier3Pity      Trigger = "tier3_pity"
	TriggerTier2Pity      Trigger = "tier2_pity"
	TriggerBatchGuarantee Trigger = "batch_guarantee"
)

// DrawOutcome is the result of one draw.
type DrawOutcome struct {
	Tier    RarityTier `json:"tier"`
	Item    Item       `json:"item"`
	Trigger Trigger    `json:"trigger"`
}
