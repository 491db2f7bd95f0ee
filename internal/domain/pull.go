package domain

import (
	"time"

	"github.com/xtding233/gacha-bot/internal/gacha"
)

// PullRecord is one entry of a user's draw history.
type PullRecord struct {
	UserID   string           `json:"user_id"`
	Tier     gacha.RarityTier `json:"tier"`
	ItemName string           `json:"item_name"`
	Trigger  gacha.Trigger    `json:"trigger"`
	PulledAt time.Time        `json:"pulled_at"`
}

// PullRecords converts outcomes into history entries sharing one timestamp.
func PullRecords(userID string, outs []gacha.DrawOutcome, at time.Time) []PullRecord {
	recs := make([]PullRecord, len(outs))
	for i, o := range outs {
		recs[i] = PullRecord{
			UserID:   userID,
			Tier:     o.Tier,
			ItemName: o.Item.Name,
			Trigger:  o.Trigger,
			PulledAt: at,
		}
	}
	return recs
}
