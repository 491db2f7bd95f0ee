// Package memory is an in-process store for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xtding233/gacha-bot/internal/domain"
	"github.com/xtding233/gacha-bot/internal/repository"
)

// Store keeps every user in memory. A transaction holds the store lock from
// BeginTx until Commit or Rollback.
type Store struct {
	mu       sync.Mutex
	users    map[string]domain.User
	history  map[string][]domain.PullRecord
	redeemed map[string]map[string]time.Time
	now      func() time.Time
}

var _ repository.Users = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		history:  make(map[string][]domain.PullRecord),
		redeemed: make(map[string]map[string]time.Time),
		now:      time.Now,
	}
}

// GetUser returns a copy of the stored user.
func (s *Store) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// GetHistory returns the newest records first.
func (s *Store) GetHistory(ctx context.Context, userID string, limit int) ([]domain.PullRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.history[userID]
	n := len(recs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.PullRecord, 0, n)
	for i := len(recs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, recs[i])
	}
	return out, nil
}

// BeginTx locks the store for the lifetime of the transaction.
func (s *Store) BeginTx(ctx context.Context) (repository.UserTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &tx{s: s, users: make(map[string]domain.User)}, nil
}

type redemption struct {
	userID string
	code   string
}

type tx struct {
	s        *Store
	users    map[string]domain.User
	pulls    []domain.PullRecord
	redeemed []redemption
	done     bool
}

func (t *tx) GetOrCreateUserForUpdate(ctx context.Context, userID string, startingBalance int) (*domain.User, error) {
	if u, ok := t.users[userID]; ok {
		return &u, nil
	}
	if u, ok := t.s.users[userID]; ok {
		return &u, nil
	}
	u := domain.NewUser(userID, startingBalance, t.s.now().UTC())
	t.users[userID] = *u
	return u, nil
}

func (t *tx) UpdateUser(ctx context.Context, user *domain.User) error {
	t.users[user.ID] = *user
	return nil
}

func (t *tx) InsertPulls(ctx context.Context, records []domain.PullRecord) error {
	t.pulls = append(t.pulls, records...)
	return nil
}

func (t *tx) HasRedeemed(ctx context.Context, userID, code string) (bool, error) {
	for _, r := range t.redeemed {
		if r.userID == userID && r.code == code {
			return true, nil
		}
	}
	_, ok := t.s.redeemed[userID][code]
	return ok, nil
}

func (t *tx) InsertRedemption(ctx context.Context, userID, code string) error {
	t.redeemed = append(t.redeemed, redemption{userID: userID, code: code})
	return nil
}

func (t *tx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	for id, u := range t.users {
		t.s.users[id] = u
	}
	// keep history ordered by time, then insertion
	sort.SliceStable(t.pulls, func(i, j int) bool { return t.pulls[i].PulledAt.Before(t.pulls[j].PulledAt) })
	for _, p := range t.pulls {
		t.s.history[p.UserID] = append(t.s.history[p.UserID], p)
	}
	now := t.s.now().UTC()
	for _, r := range t.redeemed {
		if t.s.redeemed[r.userID] == nil {
			t.s.redeemed[r.userID] = make(map[string]time.Time)
		}
		t.s.redeemed[r.userID][r.code] = now
	}
	t.finish()
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if !t.done {
		t.finish()
	}
	return nil
}

func (t *tx) finish() {
	t.done = true
	t.s.mu.Unlock()
}
