// types.go
package game

// Raw config loaded from YAML; every field is optional so that game and pool
// files only carry what they override.
type RawConfig struct {
	Version string        `yaml:"version"`
	Draw    DrawConfig    `yaml:"draw"`
	Tokens  *TokenConfig  `yaml:"tokens,omitempty"`
	Rewards *RewardConfig `yaml:"rewards,omitempty"`
	Notes   string        `yaml:"notes,omitempty"`
}

type DrawConfig struct {
	Tier3Pity *int                `yaml:"tier3_pity"`
	Tier2Pity *int                `yaml:"tier2_pity"`
	Tiers     map[string]*TierCfg `yaml:"tiers,omitempty"` // keyed "tier3", "tier2", "tier1"
}

type TierCfg struct {
	Probability *float64  `yaml:"probability"`
	Items       []ItemCfg `yaml:"items,omitempty"` // replaces lower layers when set
}

type ItemCfg struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image,omitempty"`
}

type TokenConfig struct {
	Name       string `yaml:"name,omitempty"`
	PerDraw    *int   `yaml:"per_draw"`
	PerTenDraw *int   `yaml:"per_ten_draw"`
}

type RewardConfig struct {
	StartingBalance *int               `yaml:"starting_balance"`
	SignIn          *int               `yaml:"sign_in"`
	Timezone        string             `yaml:"timezone,omitempty"` // IANA name for the sign-in day boundary
	Codes           map[string]CodeCfg `yaml:"codes,omitempty"`
}

type CodeCfg struct {
	Reward      int    `yaml:"reward"`
	Description string `yaml:"description,omitempty"`
}

// Defaults applied when no layer sets a value.
const (
	DefaultTokenName       = "diamonds"
	DefaultPerDraw         = 120
	DefaultPerTenDraw      = 1200
	DefaultStartingBalance = 10000
	DefaultSignInReward    = 10000
)
