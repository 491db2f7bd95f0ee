// Package reward grants diamonds for daily sign-ins and redeem codes.
package reward

import (
	"context"
	"fmt"
	"time"

	"github.com/xtding233/gacha-bot/internal/domain"
	"github.com/xtding233/gacha-bot/internal/game"
	"github.com/xtding233/gacha-bot/internal/logger"
	"github.com/xtding233/gacha-bot/internal/metrics"
	"github.com/xtding233/gacha-bot/internal/repository"
)

// Grant is the outcome of a successful reward.
type Grant struct {
	UserID   string    `json:"user_id"`
	Source   string    `json:"source"`
	Code     string    `json:"code,omitempty"`
	Reward   int       `json:"reward"`
	Diamonds int       `json:"diamonds"`
	At       time.Time `json:"at"`
}

// Invalidator drops cached views of a user after a write.
type Invalidator interface {
	Invalidate(userID string)
}

// Service defines the interface for reward operations
type Service interface {
	SignIn(ctx context.Context, userID string) (*Grant, error)
	Redeem(ctx context.Context, userID, code string) (*Grant, error)
}

type service struct {
	repo     repository.Users
	settings game.Rewards
	cache    Invalidator
	now      func() time.Time
}

// NewService creates a reward service. cache may be nil.
func NewService(repo repository.Users, settings game.Rewards, cache Invalidator) Service {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	return &service{repo: repo, settings: settings, cache: cache, now: time.Now}
}

// SignIn grants the daily reward once per calendar day in the configured
// location.
func (s *service) SignIn(ctx context.Context, userID string) (*Grant, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	now := s.now()

	var grant *Grant
	err := s.withUser(ctx, userID, func(tx repository.UserTx, u *domain.User) error {
		if u.LastSignIn != nil && sameDay(*u.LastSignIn, now, s.settings.Location) {
			return domain.ErrAlreadySignedIn
		}
		signed := now.UTC()
		u.Diamonds += s.settings.SignIn
		u.LastSignIn = &signed
		if err := tx.UpdateUser(ctx, u); err != nil {
			return err
		}
		grant = &Grant{UserID: userID, Source: metrics.SourceSignIn, Reward: s.settings.SignIn, Diamonds: u.Diamonds, At: signed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.DiamondsEarned.WithLabelValues(metrics.SourceSignIn).Add(float64(grant.Reward))
	logger.FromContext(ctx).Info("daily sign-in", "user_id", userID, "reward", grant.Reward, "diamonds", grant.Diamonds)
	return grant, nil
}

// Redeem grants a configured code's reward once per user.
func (s *service) Redeem(ctx context.Context, userID, code string) (*Grant, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	code = game.NormalizeCode(code)
	cfg, ok := s.settings.Codes[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrCodeNotFound, code)
	}

	var grant *Grant
	err := s.withUser(ctx, userID, func(tx repository.UserTx, u *domain.User) error {
		used, err := tx.HasRedeemed(ctx, userID, code)
		if err != nil {
			return err
		}
		if used {
			return domain.ErrCodeAlreadyRedeemed
		}
		if err := tx.InsertRedemption(ctx, userID, code); err != nil {
			return err
		}
		u.Diamonds += cfg.Reward
		if err := tx.UpdateUser(ctx, u); err != nil {
			return err
		}
		grant = &Grant{UserID: userID, Source: metrics.SourceRedeem, Code: code, Reward: cfg.Reward, Diamonds: u.Diamonds, At: s.now().UTC()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.DiamondsEarned.WithLabelValues(metrics.SourceRedeem).Add(float64(grant.Reward))
	logger.FromContext(ctx).Info("code redeemed", "user_id", userID, "code", code, "reward", grant.Reward)
	return grant, nil
}

// withUser runs fn on the locked user and commits when fn succeeds. The
// cached profile is dropped after a commit.
func (s *service) withUser(ctx context.Context, userID string, fn func(repository.UserTx, *domain.User) error) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.FromContext(ctx).Error("rollback failed", "error", rbErr)
		}
	}()

	u, err := tx.GetOrCreateUserForUpdate(ctx, userID, s.settings.StartingBalance)
	if err != nil {
		return err
	}
	if err := fn(tx, u); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reward: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(userID)
	}
	return nil
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
