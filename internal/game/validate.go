package game

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	_ "time/tzdata" // timezone names must resolve on minimal images

	"github.com/xtding233/gacha-bot/internal/gacha"
)

// ValidateRaw checks semantic constraints of a merged RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// draw.*_pity
	if cfg.Draw.Tier3Pity != nil && *cfg.Draw.Tier3Pity <= 0 {
		errs = append(errs, "draw.tier3_pity must be >= 1")
	}
	if cfg.Draw.Tier2Pity != nil && *cfg.Draw.Tier2Pity <= 0 {
		errs = append(errs, "draw.tier2_pity must be >= 1")
	}

	// draw.tiers
	names := make([]string, 0, len(cfg.Draw.Tiers))
	for name := range cfg.Draw.Tiers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := gacha.ParseTier(name); err != nil {
			errs = append(errs, fmt.Sprintf("draw.tiers.%s is not a known tier (tier3, tier2, tier1)", name))
		}
	}

	var sum float64
	sumKnown := true
	for _, tier := range gacha.Tiers() {
		key := tier.String()
		t, ok := cfg.Draw.Tiers[key]
		if !ok || t == nil {
			errs = append(errs, fmt.Sprintf("draw.tiers.%s is required", key))
			sumKnown = false
			continue
		}
		switch {
		case t.Probability == nil:
			errs = append(errs, fmt.Sprintf("draw.tiers.%s.probability is required", key))
			sumKnown = false
		case math.IsNaN(*t.Probability) || *t.Probability < 0 || *t.Probability > 1:
			errs = append(errs, fmt.Sprintf("draw.tiers.%s.probability must be in [0,1]", key))
			sumKnown = false
		default:
			sum += *t.Probability
		}
		if len(t.Items) == 0 {
			errs = append(errs, fmt.Sprintf("draw.tiers.%s.items must not be empty", key))
		}
		seen := make(map[string]bool, len(t.Items))
		for i, it := range t.Items {
			name := strings.TrimSpace(it.Name)
			if name == "" {
				errs = append(errs, fmt.Sprintf("draw.tiers.%s.items[%d].name is required", key, i))
				continue
			}
			if seen[name] {
				errs = append(errs, fmt.Sprintf("draw.tiers.%s.items[%d] duplicates %q", key, i, name))
			}
			seen[name] = true
		}
	}
	if sumKnown && math.Abs(sum-1) > 1e-6 {
		errs = append(errs, fmt.Sprintf("draw.tiers probabilities must sum to 1 (got %g)", sum))
	}

	// tokens (optional)
	if cfg.Tokens != nil {
		if cfg.Tokens.PerDraw != nil && *cfg.Tokens.PerDraw < 0 {
			errs = append(errs, "tokens.per_draw must be >= 0")
		}
		if cfg.Tokens.PerTenDraw != nil && *cfg.Tokens.PerTenDraw < 0 {
			errs = append(errs, "tokens.per_ten_draw must be >= 0")
		}
	}

	// rewards (optional)
	if cfg.Rewards != nil {
		if cfg.Rewards.StartingBalance != nil && *cfg.Rewards.StartingBalance < 0 {
			errs = append(errs, "rewards.starting_balance must be >= 0")
		}
		if cfg.Rewards.SignIn != nil && *cfg.Rewards.SignIn < 0 {
			errs = append(errs, "rewards.sign_in must be >= 0")
		}
		if cfg.Rewards.Timezone != "" {
			if _, err := time.LoadLocation(cfg.Rewards.Timezone); err != nil {
				errs = append(errs, fmt.Sprintf("rewards.timezone %q is not a valid location", cfg.Rewards.Timezone))
			}
		}
		codes := make([]string, 0, len(cfg.Rewards.Codes))
		for code := range cfg.Rewards.Codes {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			if strings.TrimSpace(code) == "" {
				errs = append(errs, "rewards.codes must not contain an empty code")
				continue
			}
			if cfg.Rewards.Codes[code].Reward <= 0 {
				errs = append(errs, fmt.Sprintf("rewards.codes.%s.reward must be > 0", code))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
