// resolve.go
package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/xtding233/gacha-bot/internal/gacha"
	"github.com/xtding233/gacha-bot/internal/token"
)

// Resolved is a validated game/pool turned into runtime parameters.
type Resolved struct {
	Version string
	Engine  gacha.Config
	Price   token.Token
	Rewards Rewards
}

// Rewards carries the wallet settings of a pool.
type Rewards struct {
	StartingBalance int
	SignIn          int
	Location        *time.Location
	Codes           map[string]CodeCfg // keys normalized to upper case
}

type Resolver interface {
	// Returns merged RawConfig and the resolved runtime parameters
	Resolve(game, pool string) (RawConfig, Resolved, error)
}

var _ Resolver = (*Loader)(nil)

// Resolve merges default → game → pool, validates the result and converts it.
func (l *Loader) Resolve(game, pool string) (RawConfig, Resolved, error) {
	raw, err := l.LoadMerged(game, pool)
	if err != nil {
		return RawConfig{}, Resolved{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return raw, Resolved{}, err
	}
	res, err := resolve(raw)
	if err != nil {
		return raw, Resolved{}, err
	}
	return raw, res, nil
}

// resolve assumes raw passed ValidateRaw.
func resolve(raw RawConfig) (Resolved, error) {
	eng := gacha.Config{
		Tier3Pity: intOr(raw.Draw.Tier3Pity, gacha.DefaultTier3Pity),
		Tier2Pity: intOr(raw.Draw.Tier2Pity, gacha.DefaultTier2Pity),
		Tiers:     make(map[gacha.RarityTier]gacha.TierPool, len(raw.Draw.Tiers)),
	}
	for name, t := range raw.Draw.Tiers {
		tier, err := gacha.ParseTier(name)
		if err != nil {
			return Resolved{}, err
		}
		items := make([]gacha.Item, 0, len(t.Items))
		for _, it := range t.Items {
			items = append(items, gacha.Item{Name: strings.TrimSpace(it.Name), Image: it.Image})
		}
		eng.Tiers[tier] = gacha.TierPool{Probability: *t.Probability, Items: items}
	}

	price := token.Token{Name: DefaultTokenName, PerDraw: DefaultPerDraw, PerTenDraw: DefaultPerTenDraw}
	if raw.Tokens != nil {
		if raw.Tokens.Name != "" {
			price.Name = raw.Tokens.Name
		}
		price.PerDraw = intOr(raw.Tokens.PerDraw, price.PerDraw)
		price.PerTenDraw = intOr(raw.Tokens.PerTenDraw, price.PerTenDraw)
	}

	rewards := Rewards{
		StartingBalance: DefaultStartingBalance,
		SignIn:          DefaultSignInReward,
		Location:        time.Local,
		Codes:           map[string]CodeCfg{},
	}
	if raw.Rewards != nil {
		rewards.StartingBalance = intOr(raw.Rewards.StartingBalance, rewards.StartingBalance)
		rewards.SignIn = intOr(raw.Rewards.SignIn, rewards.SignIn)
		if raw.Rewards.Timezone != "" {
			loc, err := time.LoadLocation(raw.Rewards.Timezone)
			if err != nil {
				return Resolved{}, fmt.Errorf("load timezone: %w", err)
			}
			rewards.Location = loc
		}
		for code, c := range raw.Rewards.Codes {
			rewards.Codes[NormalizeCode(code)] = c
		}
	}

	return Resolved{Version: raw.Version, Engine: eng, Price: price, Rewards: rewards}, nil
}

// NormalizeCode is the canonical form of a redeem code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
