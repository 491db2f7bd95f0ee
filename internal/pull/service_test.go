package pull

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gacha-bot/internal/database/memory"
	"github.com/xtding233/gacha-bot/internal/domain"
	"github.com/xtding233/gacha-bot/internal/gacha"
	"github.com/xtding233/gacha-bot/internal/metrics"
	"github.com/xtding233/gacha-bot/internal/token"
)

var testPrice = token.Token{Name: "diamonds", PerDraw: 120, PerTenDraw: 1200}

type recordingCache struct {
	mu   sync.Mutex
	seen []string
}

func (c *recordingCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, userID)
}

func newTestService(t *testing.T, startingBalance int) (*service, *memory.Store, *recordingCache) {
	t.Helper()
	engine, err := gacha.NewEngine(gacha.DefaultConfig(), gacha.NewSeededRNG(7))
	require.NoError(t, err)
	store := memory.NewStore()
	cache := &recordingCache{}
	svc := NewService(store, engine, testPrice, startingBalance, cache).(*service)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store, cache
}

func TestPull_Single(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newTestService(t, 10000)

	res, err := svc.Pull(ctx, "alice", 1)
	require.NoError(t, err)
	require.Len(t, res.Outcomes, 1)
	assert.Equal(t, 120, res.Cost)
	assert.Equal(t, 9880, res.Diamonds)
	assert.Equal(t, gacha.PityState{}.Apply(res.Outcomes[0]), res.Pity)
	assert.Equal(t, []string{"alice"}, cache.seen)

	u, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 9880, u.Diamonds)
	assert.Equal(t, 1, u.TotalPulls)
	assert.Equal(t, res.Pity, u.Pity)

	hist, err := store.GetHistory(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, res.Outcomes[0].Item.Name, hist[0].ItemName)
	assert.Equal(t, res.Outcomes[0].Trigger, hist[0].Trigger)
}

func TestPull_Ten(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t, 10000)

	res, err := svc.Pull(ctx, "bob", 10)
	require.NoError(t, err)
	require.Len(t, res.Outcomes, gacha.BatchSize)
	assert.Equal(t, 1200, res.Cost)
	assert.Equal(t, 8800, res.Diamonds)
	assert.Equal(t, gacha.PityState{}.ApplyAll(res.Outcomes), res.Pity)

	u, err := store.GetUser(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 10, u.TotalPulls)
	assert.Equal(t, 10, u.Tier1Count+u.Tier2Count+u.Tier3Count)

	hist, err := store.GetHistory(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Len(t, hist, 10)
}

func TestPull_InvalidCount(t *testing.T) {
	svc, store, _ := newTestService(t, 10000)
	for _, n := range []int{0, 2, 9, 11, -1} {
		_, err := svc.Pull(context.Background(), "carol", n)
		require.ErrorIs(t, err, domain.ErrInvalidDrawCount, "count %d", n)
	}
	_, err := store.GetUser(context.Background(), "carol")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPull_RejectsMalformedUserID(t *testing.T) {
	svc, store, _ := newTestService(t, 10000)
	for _, id := range []string{"a/b", "a b", strings.Repeat("x", domain.MaxUserIDLength+1)} {
		_, err := svc.Pull(context.Background(), id, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, id)
		_, err = store.GetUser(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrUserNotFound, id)
	}

	_, err := svc.Pull(context.Background(), strings.Repeat("é", domain.MaxUserIDLength), 1)
	assert.NoError(t, err)
}

func TestPull_InvalidCountsShareOneSeries(t *testing.T) {
	svc, _, _ := newTestService(t, 10000)
	before := testutil.CollectAndCount(metrics.PullRequests)
	invalid := testutil.ToFloat64(metrics.PullRequests.WithLabelValues(metrics.CountInvalid, metrics.ResultError))

	for count := 100; count < 300; count++ {
		_, err := svc.Pull(context.Background(), "mallory", count)
		require.ErrorIs(t, err, domain.ErrInvalidDrawCount)
	}

	assert.LessOrEqual(t, testutil.CollectAndCount(metrics.PullRequests), before+1)
	assert.InDelta(t, invalid+200, testutil.ToFloat64(metrics.PullRequests.WithLabelValues(metrics.CountInvalid, metrics.ResultError)), 0)
}

func TestPull_EmptyUser(t *testing.T) {
	svc, _, _ := newTestService(t, 10000)
	_, err := svc.Pull(context.Background(), "", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPull_InsufficientFundsLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newTestService(t, 1300)

	_, err := svc.Pull(ctx, "dave", 10)
	require.NoError(t, err)
	before, err := store.GetUser(ctx, "dave")
	require.NoError(t, err)
	require.Equal(t, 100, before.Diamonds)

	_, err = svc.Pull(ctx, "dave", 1)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	after, err := store.GetUser(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	hist, err := store.GetHistory(ctx, "dave", 0)
	require.NoError(t, err)
	assert.Len(t, hist, 10)
	assert.Len(t, cache.seen, 1)
}

func TestPull_NewUserWithoutFundsIsNotCreated(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t, 100)

	_, err := svc.Pull(ctx, "erin", 1)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	_, err = store.GetUser(ctx, "erin")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPull_PityCarriesAcrossRequests(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, 1_000_000)

	var pity gacha.PityState
	for i := 0; i < 60; i++ {
		res, err := svc.Pull(ctx, "frank", 1)
		require.NoError(t, err)
		pity = pity.Apply(res.Outcomes[0])
		assert.Equal(t, pity, res.Pity)
		assert.Less(t, res.Pity.PullsSinceTier2, 10, "tier2 pity must fire within 10 draws")
	}
}

func TestPull_ConcurrentRequestsSerialize(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t, 120*20)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Pull(ctx, "gina", 1)
		}()
	}
	wg.Wait()

	u, err := store.GetUser(ctx, "gina")
	require.NoError(t, err)
	assert.Equal(t, 0, u.Diamonds)
	assert.Equal(t, 20, u.TotalPulls)

	_, err = svc.Pull(ctx, "gina", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestPull_RecordsMetrics(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, 10000)

	spent := testutil.ToFloat64(metrics.DiamondsSpent)
	okTen := testutil.ToFloat64(metrics.PullRequests.WithLabelValues("10", metrics.ResultOK))

	_, err := svc.Pull(ctx, "hana", 10)
	require.NoError(t, err)

	assert.InDelta(t, spent+1200, testutil.ToFloat64(metrics.DiamondsSpent), 0)
	assert.InDelta(t, okTen+1, testutil.ToFloat64(metrics.PullRequests.WithLabelValues("10", metrics.ResultOK)), 0)
}
