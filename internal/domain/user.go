package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xtding233/gacha-bot/internal/gacha"
)

// User is a player's wallet, pity counters and draw totals.
type User struct {
	ID         string          `json:"user_id"`
	Diamonds   int             `json:"diamonds"`
	TotalPulls int             `json:"total_pulls"`
	Pity       gacha.PityState `json:"pity"`
	Tier3Count int             `json:"tier3_count"`
	Tier2Count int             `json:"tier2_count"`
	Tier1Count int             `json:"tier1_count"`
	LastSignIn *time.Time      `json:"last_sign_in,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewUser returns a fresh user holding the starting balance.
func NewUser(id string, startingBalance int, now time.Time) *User {
	return &User{ID: id, Diamonds: startingBalance, CreatedAt: now}
}

// RecordOutcomes applies draw outcomes in order to the pity counters and the
// per-tier totals.
func (u *User) RecordOutcomes(outs []gacha.DrawOutcome) {
	for _, o := range outs {
		u.Pity = u.Pity.Apply(o)
		u.TotalPulls++
		switch o.Tier {
		case gacha.Tier3:
			u.Tier3Count++
		case gacha.Tier2:
			u.Tier2Count++
		default:
			u.Tier1Count++
		}
	}
}

// MaxUserIDLength bounds user IDs in runes.
const MaxUserIDLength = 64

// ValidateUserID rejects IDs that are empty, too long, or contain a slash or
// a space. Every transport shares these rules.
func ValidateUserID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	case utf8.RuneCountInString(id) > MaxUserIDLength:
		return fmt.Errorf("%w: user_id exceeds %d characters", ErrInvalidInput, MaxUserIDLength)
	case strings.ContainsAny(id, "/ "):
		return fmt.Errorf("%w: user_id must not contain '/' or spaces", ErrInvalidInput)
	}
	return nil
}
