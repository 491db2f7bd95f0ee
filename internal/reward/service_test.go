package reward

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gacha-bot/internal/database/memory"
	"github.com/xtding233/gacha-bot/internal/domain"
	"github.com/xtding233/gacha-bot/internal/game"
)

type countingCache struct{ n int }

func (c *countingCache) Invalidate(string) { c.n++ }

func newTestService(t *testing.T, clock *time.Time) (*service, *memory.Store, *countingCache) {
	t.Helper()
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	store := memory.NewStore()
	cache := &countingCache{}
	svc := NewService(store, game.Rewards{
		StartingBalance: 10000,
		SignIn:          10000,
		Location:        shanghai,
		Codes:           map[string]game.CodeCfg{"090828": {Reward: 10000}, "WELCOME": {Reward: 500}},
	}, cache).(*service)
	svc.now = func() time.Time { return *clock }
	return svc, store, cache
}

func TestSignIn_OncePerDay(t *testing.T) {
	ctx := context.Background()
	// 23:00 in Shanghai on March 1st
	clock := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	svc, store, cache := newTestService(t, &clock)

	g, err := svc.SignIn(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 10000, g.Reward)
	assert.Equal(t, 20000, g.Diamonds)
	assert.Equal(t, 1, cache.n)

	clock = clock.Add(30 * time.Minute)
	_, err = svc.SignIn(ctx, "alice")
	require.ErrorIs(t, err, domain.ErrAlreadySignedIn)

	u, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 20000, u.Diamonds)
	assert.Equal(t, 1, cache.n)

	// 00:30 in Shanghai on March 2nd, still March 1st in UTC
	clock = time.Date(2026, 3, 1, 16, 30, 0, 0, time.UTC)
	g, err = svc.SignIn(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 30000, g.Diamonds)
	require.NotNil(t, g.At)
}

func TestSignIn_EmptyUser(t *testing.T) {
	clock := time.Now()
	svc, _, _ := newTestService(t, &clock)
	_, err := svc.SignIn(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Redeem(context.Background(), "a b", "090828")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, store, _ := newTestService(t, &clock)

	g, err := svc.Redeem(ctx, "bob", "  welcome ")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME", g.Code)
	assert.Equal(t, 500, g.Reward)
	assert.Equal(t, 10500, g.Diamonds)

	_, err = svc.Redeem(ctx, "bob", "WELCOME")
	require.ErrorIs(t, err, domain.ErrCodeAlreadyRedeemed)

	_, err = svc.Redeem(ctx, "bob", "nope")
	require.ErrorIs(t, err, domain.ErrCodeNotFound)

	g, err = svc.Redeem(ctx, "bob", "090828")
	require.NoError(t, err)
	assert.Equal(t, 20500, g.Diamonds)

	// another user may use the same code
	g, err = svc.Redeem(ctx, "carol", "welcome")
	require.NoError(t, err)
	assert.Equal(t, 10500, g.Diamonds)

	u, err := store.GetUser(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 20500, u.Diamonds)
}

func TestRedeem_UnknownCodeCreatesNoUser(t *testing.T) {
	ctx := context.Background()
	clock := time.Now()
	svc, store, _ := newTestService(t, &clock)

	_, err := svc.Redeem(ctx, "dave", "missing")
	require.ErrorIs(t, err, domain.ErrCodeNotFound)
	_, err = store.GetUser(ctx, "dave")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSameDay(t *testing.T) {
	utc := time.UTC
	a := time.Date(2026, 1, 1, 0, 0, 0, 0, utc)
	assert.True(t, sameDay(a, a.Add(23*time.Hour), utc))
	assert.False(t, sameDay(a, a.Add(24*time.Hour), utc))
}
