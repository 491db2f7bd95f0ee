package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gacha-bot/internal/database/memory"
	"github.com/xtding233/gacha-bot/internal/gacha"
	"github.com/xtding233/gacha-bot/internal/game"
	"github.com/xtding233/gacha-bot/internal/handler"
	"github.com/xtding233/gacha-bot/internal/logger"
	"github.com/xtding233/gacha-bot/internal/profile"
	"github.com/xtding233/gacha-bot/internal/pull"
	"github.com/xtding233/gacha-bot/internal/reward"
	"github.com/xtding233/gacha-bot/internal/token"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := gacha.DefaultConfig()
	engine, err := gacha.NewEngine(cfg, gacha.NewSeededRNG(11))
	require.NoError(t, err)

	price := token.Token{Name: "diamonds", PerDraw: 120, PerTenDraw: 1200}
	store := memory.NewStore()
	profiles := profile.NewService(store, cfg, 64, time.Minute)
	return NewRouter(Deps{
		Pulls:    pull.NewService(store, engine, price, 10000, profiles),
		Profiles: profiles,
		Rewards: reward.NewService(store, game.Rewards{
			StartingBalance: 10000,
			SignIn:          10000,
			Location:        time.UTC,
			Codes:           map[string]game.CodeCfg{"090828": {Reward: 10000}},
		}, profiles),
		Pool: handler.NewPoolInfo("1", "", "", cfg, price),
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestRouter_EndToEnd(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/users/alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/pulls", `{"user_id":"alice","count":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res pull.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Outcomes, 10)
	assert.Equal(t, 8800, res.Diamonds)

	rec = do(t, h, http.MethodGet, "/api/v1/users/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p profile.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 10, p.TotalPulls)
	assert.Equal(t, res.Pity.PullsSinceTier3, p.Pity.PullsSinceTier3)

	rec = do(t, h, http.MethodGet, "/api/v1/users/alice/history?limit=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hist handler.HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	assert.Len(t, hist.Pulls, 3)

	rec = do(t, h, http.MethodPost, "/api/v1/rewards/sign-in", `{"user_id":"alice"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/v1/rewards/sign-in", `{"user_id":"alice"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/rewards/redeem", `{"user_id":"alice","code":"090828"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// the cached profile is refreshed after writes
	rec = do(t, h, http.MethodGet, "/api/v1/users/alice", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 8800+10000+10000, p.Diamonds)
}

func TestRouter_PoolHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/pool", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"per_ten_draw":1200`)

	rec = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	do(t, h, http.MethodPost, "/api/v1/pulls", `{"user_id":"bob","count":1}`)
	rec = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gacha_draws_total")
	assert.Contains(t, rec.Body.String(), `path="/api/v1/pulls"`)
}

func TestRouter_RequestID(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestRouter_BodyLimit(t *testing.T) {
	h := newTestRouter(t)
	big := `{"user_id":"` + strings.Repeat("x", MaxRequestBodyBytes) + `","count":1}`
	rec := do(t, h, http.MethodPost, "/api/v1/pulls", big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecoverMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(logger.Config{Level: "error", Format: "text"}, &buf)
	t.Cleanup(func() { logger.Init(logger.DefaultConfig()) })

	h := requestIDMiddleware(recoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), LogMsgPanicRecovered)
	assert.Contains(t, buf.String(), "request_id=")
}
