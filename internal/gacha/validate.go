package gacha

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// probEpsilon is the tolerance for the tier probabilities summing to 1.
const probEpsilon = 1e-6

var (
	ErrInvalidProb    = errors.New("invalid probability p; must be 0..1")
	ErrProbabilitySum = errors.New("tier probabilities must sum to 1")
	ErrEmptyTier      = errors.New("tier has no items")
	ErrMissingTier    = errors.New("tier is not configured")
	ErrUnknownTier    = errors.New("unknown rarity tier")
	ErrInvalidPity    = errors.New("pity threshold must be >= 1")
	ErrInvalidItem    = errors.New("item name is required")
)

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// Validate checks the config and returns the first problem found.
func (c Config) Validate() error {
	if c.Tier3Pity < 1 {
		return fmt.Errorf("%w: tier3 pity %d", ErrInvalidPity, c.Tier3Pity)
	}
	if c.Tier2Pity < 1 {
		return fmt.Errorf("%w: tier2 pity %d", ErrInvalidPity, c.Tier2Pity)
	}
	for t := range c.Tiers {
		if !t.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownTier, int(t))
		}
	}

	var sum float64
	for _, t := range tierOrder {
		pool, ok := c.Tiers[t]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingTier, t)
		}
		if err := validateProb(pool.Probability); err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
		if len(pool.Items) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyTier, t)
		}
		for i, it := range pool.Items {
			if strings.TrimSpace(it.Name) == "" {
				return fmt.Errorf("%w: %s item #%d", ErrInvalidItem, t, i)
			}
		}
		sum += pool.Probability
	}
	if math.Abs(sum-1) > probEpsilon {
		return fmt.Errorf("%w: got %g", ErrProbabilitySum, sum)
	}
	return nil
}
