package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/oggyb/accountadate/internal/app"
	"github.com/oggyb/accountadate/internal/cache"
	"github.com/oggyb/accountadate/internal/config"
	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/logger"
	"github.com/oggyb/accountadate/internal/server"
	"github.com/oggyb/accountadate/internal/service/account"
	"github.com/oggyb/accountadate/internal/service/badge"
	"github.com/oggyb/accountadate/internal/service/chat"
	"github.com/oggyb/accountadate/internal/service/explore"
	"github.com/oggyb/accountadate/internal/service/match"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisCache.Close()

	// Inject logger into app context
	appCtx := app.New(cfg, database, redisCache, log)

	registrars := []server.Registrar{
		account.NewRegistrar(appCtx),
		explore.NewRegistrar(appCtx),
		match.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
		badge.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database, 20, 0); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.StartGRPCServer(gctx, appCtx, registrars...)
	})
	g.Go(func() error {
		return server.StartMetricsServer(gctx, cfg.Metrics.Addr, log)
	})
	return g.Wait()
}
