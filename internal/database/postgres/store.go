// Package postgres implements the repository contracts on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xtding233/gacha-bot/internal/database"
	"github.com/xtding233/gacha-bot/internal/domain"
	"github.com/xtding233/gacha-bot/internal/gacha"
	"github.com/xtding233/gacha-bot/internal/repository"
)

// Store implements repository.Users for PostgreSQL
type Store struct {
	db *pgxpool.Pool
}

var _ repository.Users = (*Store)(nil)

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Diamonds, &u.TotalPulls, &u.Pity.PullsSinceTier3, &u.Pity.PullsSinceTier2,
		&u.Tier3Count, &u.Tier2Count, &u.Tier1Count, &u.LastSignIn, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser loads a user by ID
func (s *Store) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	u, err := scanUser(s.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetHistory returns the user's most recent pulls first
func (s *Store) GetHistory(ctx context.Context, userID string, limit int) ([]domain.PullRecord, error) {
	query := `
		SELECT user_id, tier, item_name, pity_trigger, pulled_at
		FROM pull_history
		WHERE user_id = $1
		ORDER BY pulled_at DESC, id DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	records := []domain.PullRecord{}
	for rows.Next() {
		var (
			rec     domain.PullRecord
			tier    int
			trigger string
		)
		if err := rows.Scan(&rec.UserID, &tier, &rec.ItemName, &trigger, &rec.PulledAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		rec.Tier = gacha.RarityTier(tier)
		rec.Trigger = gacha.Trigger(trigger)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return records, nil
}

// BeginTx starts a transaction
func (s *Store) BeginTx(ctx context.Context) (repository.UserTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	return &userTx{tx: tx}, nil
}

type userTx struct {
	tx pgx.Tx
}

// GetOrCreateUserForUpdate inserts the user if missing and locks its row
func (t *userTx) GetOrCreateUserForUpdate(ctx context.Context, userID string, startingBalance int) (*domain.User, error) {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO users (user_id, diamonds)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 FOR UPDATE`
	u, err := scanUser(t.tx.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	return u, nil
}

func (t *userTx) UpdateUser(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET diamonds = $2, total_pulls = $3, pulls_since_tier3 = $4, pulls_since_tier2 = $5,
			tier3_count = $6, tier2_count = $7, tier1_count = $8, last_sign_in = $9, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := t.tx.Exec(ctx, query, u.ID, u.Diamonds, u.TotalPulls, u.Pity.PullsSinceTier3, u.Pity.PullsSinceTier2,
		u.Tier3Count, u.Tier2Count, u.Tier1Count, u.LastSignIn)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (t *userTx) InsertPulls(ctx context.Context, records []domain.PullRecord) error {
	if len(records) == 0 {
		return nil
	}
	_, err := t.tx.CopyFrom(ctx,
		pgx.Identifier{tablePullHistory},
		[]string{"user_id", "tier", "item_name", "pity_trigger", "pulled_at"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.UserID, int16(r.Tier), r.ItemName, string(r.Trigger), r.PulledAt}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to insert pull history: %w", err)
	}
	return nil
}

func (t *userTx) HasRedeemed(ctx context.Context, userID, code string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM redeemed_codes WHERE user_id = $1 AND code = $2)`,
		userID, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check redemption: %w", err)
	}
	return exists, nil
}

func (t *userTx) InsertRedemption(ctx context.Context, userID, code string) error {
	tag, err := t.tx.Exec(ctx, `
		INSERT INTO redeemed_codes (user_id, code)
		VALUES ($1, $2)
		ON CONFLICT (user_id, code) DO NOTHING
	`, userID, code)
	if err != nil {
		return fmt.Errorf("failed to record redemption: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCodeAlreadyRedeemed
	}
	return nil
}

func (t *userTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *userTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}
