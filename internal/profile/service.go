// Package profile serves read-only views of a user's wallet, totals and pity
// progress.
package profile

import (
	"context"
	"maps"
	"time"

	"github.com/xtding233/gacha-bot/internal/domain"
	"github.com/xtding233/gacha-bot/internal/gacha"
	"github.com/xtding233/gacha-bot/internal/logger"
	"github.com/xtding233/gacha-bot/internal/metrics"
	"github.com/xtding233/gacha-bot/internal/repository"
)

// DefaultHistoryLimit applies when History is called with limit <= 0.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 500
)

// PityProgress is the distance travelled toward each guarantee.
type PityProgress struct {
	PullsSinceTier3 int `json:"pulls_since_tier3"`
	Tier3Pity       int `json:"tier3_pity"`
	PullsSinceTier2 int `json:"pulls_since_tier2"`
	Tier2Pity       int `json:"tier2_pity"`
}

// Profile is the public view of a user.
type Profile struct {
	UserID     string             `json:"user_id"`
	Diamonds   int                `json:"diamonds"`
	TotalPulls int                `json:"total_pulls"`
	Counts     map[string]int     `json:"counts"`
	Rates      map[string]float64 `json:"rates"` // percent of TotalPulls
	Pity       PityProgress       `json:"pity"`
	LastSignIn *time.Time         `json:"last_sign_in,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Service defines the interface for profile reads
type Service interface {
	Get(ctx context.Context, userID string) (Profile, error)
	History(ctx context.Context, userID string, limit int) ([]domain.PullRecord, error)
	Invalidate(userID string)
}

type service struct {
	repo      repository.Users
	cache     *profileCache
	tier3Pity int
	tier2Pity int
}

// NewService creates a profile service reading through an expirable LRU.
func NewService(repo repository.Users, engine gacha.Config, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:      repo,
		cache:     newProfileCache(cacheSize, cacheTTL),
		tier3Pity: engine.Tier3Pity,
		tier2Pity: engine.Tier2Pity,
	}
}

// Get returns a profile the caller owns; its maps are not shared with the cache.
func (s *service) Get(ctx context.Context, userID string) (Profile, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return Profile{}, err
	}
	if p, ok := s.cache.Get(userID); ok {
		metrics.ProfileCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
		return p.clone(), nil
	}
	metrics.ProfileCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()

	gen := s.cache.Generation()
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	p := s.build(u)
	if s.cache.SetIfCurrent(userID, p, gen) {
		logger.FromContext(ctx).Debug("profile cached", "user_id", userID)
	} else {
		logger.FromContext(ctx).Debug("profile changed during read; not cached", "user_id", userID)
	}
	return p.clone(), nil
}

func (s *service) History(ctx context.Context, userID string, limit int) ([]domain.PullRecord, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.repo.GetHistory(ctx, userID, limit)
}

func (s *service) Invalidate(userID string) {
	s.cache.Invalidate(userID)
}

func (p Profile) clone() Profile {
	p.Counts = maps.Clone(p.Counts)
	p.Rates = maps.Clone(p.Rates)
	if p.LastSignIn != nil {
		t := *p.LastSignIn
		p.LastSignIn = &t
	}
	return p
}

func (s *service) build(u *domain.User) Profile {
	counts := map[string]int{
		gacha.Tier3.String(): u.Tier3Count,
		gacha.Tier2.String(): u.Tier2Count,
		gacha.Tier1.String(): u.Tier1Count,
	}
	rates := make(map[string]float64, len(counts))
	for tier, n := range counts {
		if u.TotalPulls > 0 {
			rates[tier] = float64(n) / float64(u.TotalPulls) * 100
		} else {
			rates[tier] = 0
		}
	}
	return Profile{
		UserID:     u.ID,
		Diamonds:   u.Diamonds,
		TotalPulls: u.TotalPulls,
		Counts:     counts,
		Rates:      rates,
		Pity: PityProgress{
			PullsSinceTier3: u.Pity.PullsSinceTier3,
			Tier3Pity:       s.tier3Pity,
			PullsSinceTier2: u.Pity.PullsSinceTier2,
			Tier2Pity:       s.tier2Pity,
		},
		LastSignIn: u.LastSignIn,
		CreatedAt:  u.CreatedAt,
	}
}
