package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xtding233/gacha-bot/internal/config"
	"github.com/xtding233/gacha-bot/internal/database"
	"github.com/xtding233/gacha-bot/internal/database/memory"
	"github.com/xtding233/gacha-bot/internal/database/postgres"
	"github.com/xtding233/gacha-bot/internal/gacha"
	"github.com/xtding233/gacha-bot/internal/game"
	"github.com/xtding233/gacha-bot/internal/handler"
	"github.com/xtding233/gacha-bot/internal/logger"
	"github.com/xtding233/gacha-bot/internal/metrics"
	"github.com/xtding233/gacha-bot/internal/profile"
	"github.com/xtding233/gacha-bot/internal/pull"
	"github.com/xtding233/gacha-bot/internal/repository"
	"github.com/xtding233/gacha-bot/internal/reward"
	"github.com/xtding233/gacha-bot/internal/server"
	"github.com/xtding233/gacha-bot/internal/transport/grpcapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logCfg.Environment = cfg.Environment
	logger.Init(logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := game.NewLoader(cfg.ConfigDir)
	_, resolved, err := loader.Resolve(cfg.Game, cfg.Pool)
	if err != nil {
		return fmt.Errorf("load pool config: %w", err)
	}

	var rng gacha.RandomSource
	if cfg.RNGSeed != 0 {
		rng = gacha.NewSeededRNG(cfg.RNGSeed)
	}
	engine, err := gacha.NewEngine(resolved.Engine, rng)
	if err != nil {
		return err
	}
	slog.Info("pool loaded",
		"game", cfg.Game,
		"pool", cfg.Pool,
		"version", resolved.Version,
		"tier3_pity", resolved.Engine.Tier3Pity,
		"tier2_pity", resolved.Engine.Tier2Pity)

	store, db, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	profiles := profile.NewService(store, resolved.Engine, cfg.ProfileCacheSize, cfg.ProfileCacheTTL)
	pulls := pull.NewService(store, engine, resolved.Price, resolved.Rewards.StartingBalance, profiles)
	rewards := reward.NewService(store, resolved.Rewards, profiles)

	if cfg.ConfigWatchInterval > 0 {
		w := game.NewFileWatcher(loader.Files(cfg.Game, cfg.Pool), cfg.ConfigWatchInterval,
			func(changed []string) { recheckConfig(loader, cfg.Game, cfg.Pool, changed) })
		go w.Run(ctx)
	}

	errCh := make(chan error, 2)

	httpSrv := server.NewServer(cfg.Port, server.Deps{
		Pulls:    pulls,
		Profiles: profiles,
		Rewards:  rewards,
		Pool:     handler.NewPoolInfo(resolved.Version, cfg.Game, cfg.Pool, resolved.Engine, resolved.Price),
		DB:       db,
	})
	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	grpcCtx, cancelGRPC := context.WithCancel(ctx)
	defer cancelGRPC()
	grpcDone := make(chan struct{})
	if cfg.GRPCPort != 0 {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
		if err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
		grpcSrv := grpcapi.NewServer(pulls, profiles)
		go func() {
			defer close(grpcDone)
			if err := grpcSrv.Serve(grpcCtx, lis); err != nil {
				errCh <- err
			}
		}()
	} else {
		close(grpcDone)
	}

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err = <-errCh:
		slog.Error("server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := httpSrv.Stop(shutdownCtx); serr != nil {
		slog.Error("http shutdown failed", "error", serr)
	}
	cancelGRPC()
	select {
	case <-grpcDone:
	case <-shutdownCtx.Done():
		slog.Warn("gRPC shutdown timed out")
	}

	slog.Info("server stopped")
	return err
}

// openStore returns the configured repository, a pinger for /healthz (nil
// for the memory store) and a close func.
func openStore(ctx context.Context, cfg *config.Config) (repository.Users, handler.Pinger, func(), error) {
	if cfg.Storage == config.StorageMemory {
		slog.Warn("using in-memory storage; data is lost on restart")
		return memory.NewStore(), nil, func() {}, nil
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, database.DefaultMaxConnIdle, database.DefaultMaxConnLife)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	return postgres.NewStore(pool), pool, pool.Close, nil
}

// recheckConfig re-validates the pool after a file change. The running engine
// is not replaced; a valid change applies on the next restart.
func recheckConfig(loader *game.Loader, gameName, pool string, changed []string) {
	loader.Invalidate()
	log := slog.With("files", changed, "game", gameName, "pool", pool)

	_, resolved, err := loader.Resolve(gameName, pool)
	if err == nil {
		_, err = gacha.NewEngine(resolved.Engine, gacha.NewSeededRNG(1))
	}
	if err != nil {
		metrics.ConfigReloadChecks.WithLabelValues(metrics.ResultBad).Inc()
		log.Error("changed pool config is invalid; keeping the running pool", "error", err)
		return
	}
	metrics.ConfigReloadChecks.WithLabelValues(metrics.ResultValid).Inc()
	log.Info("changed pool config is valid; restart to apply", "version", resolved.Version)
}
