// Package repository declares the storage contracts used by the services.
package repository

import (
	"context"

	"github.com/xtding233/gacha-bot/internal/domain"
)

// Users is the persistence contract for wallets, pity state and history.
type Users interface {
	// GetUser returns domain.ErrUserNotFound for unknown users.
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	// GetHistory returns the newest records first, at most limit entries.
	GetHistory(ctx context.Context, userID string, limit int) ([]domain.PullRecord, error)
	BeginTx(ctx context.Context) (UserTx, error)
}

// UserTx is a unit of work. Users read through it stay locked until Commit or
// Rollback, which serializes draws for the same user.
type UserTx interface {
	// GetOrCreateUserForUpdate locks the user row, creating it with the
	// starting balance when missing.
	GetOrCreateUserForUpdate(ctx context.Context, userID string, startingBalance int) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	InsertPulls(ctx context.Context, records []domain.PullRecord) error
	HasRedeemed(ctx context.Context, userID, code string) (bool, error)
	InsertRedemption(ctx context.Context, userID, code string) error
	Commit(ctx context.Context) error
	// Rollback is a no-op after Commit.
	Rollback(ctx context.Context) error
}
