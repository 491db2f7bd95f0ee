// Package server assembles the HTTP router and owns the HTTP listener.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xtding233/gacha-bot/internal/handler"
	"github.com/xtding233/gacha-bot/internal/metrics"
	"github.com/xtding233/gacha-bot/internal/profile"
	"github.com/xtding233/gacha-bot/internal/pull"
	"github.com/xtding233/gacha-bot/internal/reward"
)

// Deps are the services the router exposes.
type Deps struct {
	Pulls    pull.Service
	Profiles profile.Service
	Rewards  reward.Service
	Pool     handler.PoolInfo
	DB       handler.Pinger // nil when running without a database
}

type Server struct {
	httpServer *http.Server
}

// NewRouter builds the chi router with middleware and every route.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()

	// outermost first
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(bodyLimitMiddleware(MaxRequestBodyBytes))

	r.Get("/healthz", handler.HandleHealthz(d.DB))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/pool", handler.HandlePoolInfo(d.Pool))
		r.Post("/pulls", handler.HandlePull(d.Pulls))

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/", handler.HandleGetProfile(d.Profiles))
			r.Get("/history", handler.HandleGetHistory(d.Profiles))
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Post("/sign-in", handler.HandleSignIn(d.Rewards))
			r.Post("/redeem", handler.HandleRedeem(d.Rewards))
		})
	})

	return r
}

// NewServer creates a new Server instance
func NewServer(port int, d Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(d),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
	}
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
