// Package pull charges a user and runs draws against the shared engine.
package pull

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xtding233/gacha-bot/internal/domain"
	"github.com/xtding233/gacha-bot/internal/gacha"
	"github.com/xtding233/gacha-bot/internal/logger"
	"github.com/xtding233/gacha-bot/internal/metrics"
	"github.com/xtding233/gacha-bot/internal/repository"
	"github.com/xtding233/gacha-bot/internal/token"
)

// Result is what one pull request produced.
type Result struct {
	UserID   string              `json:"user_id"`
	Outcomes []gacha.DrawOutcome `json:"outcomes"`
	Cost     int                 `json:"cost"`
	Diamonds int                 `json:"diamonds"`
	Pity     gacha.PityState     `json:"pity"`
}

// Invalidator drops cached views of a user after a write.
type Invalidator interface {
	Invalidate(userID string)
}

// Service defines the interface for pull operations
type Service interface {
	Pull(ctx context.Context, userID string, count int) (*Result, error)
}

type service struct {
	repo            repository.Users
	engine          *gacha.Engine
	price           token.Token
	startingBalance int
	cache           Invalidator
	now             func() time.Time
}

// NewService creates a pull service. cache may be nil.
func NewService(repo repository.Users, engine *gacha.Engine, price token.Token, startingBalance int, cache Invalidator) Service {
	return &service{
		repo:            repo,
		engine:          engine,
		price:           price,
		startingBalance: startingBalance,
		cache:           cache,
		now:             time.Now,
	}
}

// Pull performs a single draw (count 1) or a batch draw (count 10) inside one
// transaction. A user who cannot pay is left untouched.
func (s *service) Pull(ctx context.Context, userID string, count int) (res *Result, err error) {
	log := logger.FromContext(ctx)
	defer func() {
		result := metrics.ResultOK
		if err != nil {
			result = metrics.ResultError
		}
		metrics.PullRequests.WithLabelValues(countLabel(count), result).Inc()
	}()

	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if count != 1 && count != gacha.BatchSize {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidDrawCount, count)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error("rollback failed", "error", rbErr)
		}
	}()

	u, err := tx.GetOrCreateUserForUpdate(ctx, userID, s.startingBalance)
	if err != nil {
		return nil, err
	}

	cost := s.price.TokensForDraws(count)
	if u.Diamonds < cost {
		return nil, fmt.Errorf("%w: need %d %s, have %d", domain.ErrInsufficientFunds, cost, s.price.Name, u.Diamonds)
	}

	var outs []gacha.DrawOutcome
	if count == 1 {
		outs = []gacha.DrawOutcome{s.engine.DrawOne(u.Pity)}
	} else {
		outs = s.engine.DrawTen(u.Pity)
	}

	u.Diamonds -= cost
	u.RecordOutcomes(outs)

	if err := tx.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	if err := tx.InsertPulls(ctx, domain.PullRecords(userID, outs, s.now().UTC())); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit pull: %w", err)
	}

	s.record(outs, cost)
	if s.cache != nil {
		s.cache.Invalidate(userID)
	}
	log.Info("pull completed",
		"user_id", userID,
		"count", count,
		"cost", cost,
		"diamonds", u.Diamonds,
		"pulls_since_tier3", u.Pity.PullsSinceTier3,
		"pulls_since_tier2", u.Pity.PullsSinceTier2)

	return &Result{
		UserID:   userID,
		Outcomes: outs,
		Cost:     cost,
		Diamonds: u.Diamonds,
		Pity:     u.Pity,
	}, nil
}

// countLabel keeps the count label to a fixed set of values.
func countLabel(count int) string {
	switch count {
	case 1, gacha.BatchSize:
		return strconv.Itoa(count)
	}
	return metrics.CountInvalid
}

func (s *service) record(outs []gacha.DrawOutcome, cost int) {
	for _, o := range outs {
		metrics.DrawsTotal.WithLabelValues(o.Tier.String()).Inc()
		metrics.PityTriggers.WithLabelValues(string(o.Trigger)).Inc()
	}
	metrics.DiamondsSpent.Add(float64(cost))
}
