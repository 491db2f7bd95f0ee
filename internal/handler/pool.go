package handler

import (
	"net/http"

	"github.com/xtding233/gacha-bot/internal/gacha"
	"github.com/xtding233/gacha-bot/internal/token"
)

// TierInfo describes one rarity tier of the active pool
type TierInfo struct {
	Tier        string       `json:"tier"`
	Stars       int          `json:"stars"`
	Probability float64      `json:"probability"`
	Items       []gacha.Item `json:"items"`
}

// PoolInfo is the public description of the active pool
type PoolInfo struct {
	Version    string     `json:"version,omitempty"`
	Game       string     `json:"game,omitempty"`
	Pool       string     `json:"pool,omitempty"`
	Tier3Pity  int        `json:"tier3_pity"`
	Tier2Pity  int        `json:"tier2_pity"`
	Token      string     `json:"token"`
	PerDraw    int        `json:"per_draw"`
	PerTenDraw int        `json:"per_ten_draw"`
	Tiers      []TierInfo `json:"tiers"`
}

// NewPoolInfo describes cfg and price, listing tiers rarest first.
func NewPoolInfo(version, game, pool string, cfg gacha.Config, price token.Token) PoolInfo {
	info := PoolInfo{
		Version:    version,
		Game:       game,
		Pool:       pool,
		Tier3Pity:  cfg.Tier3Pity,
		Tier2Pity:  cfg.Tier2Pity,
		Token:      price.Name,
		PerDraw:    price.TokensForDraws(1),
		PerTenDraw: price.TokensForDraws(gacha.BatchSize),
	}
	for _, t := range gacha.Tiers() {
		tp := cfg.Tiers[t]
		info.Tiers = append(info.Tiers, TierInfo{
			Tier:        t.String(),
			Stars:       t.Stars(),
			Probability: tp.Probability,
			Items:       tp.Items,
		})
	}
	return info
}

// HandlePoolInfo serves the static pool description.
func HandlePoolInfo(info PoolInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}
