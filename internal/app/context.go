package app

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/accountadate/internal/auth"
	"github.com/oggyb/accountadate/internal/cache"
	"github.com/oggyb/accountadate/internal/config"
	"github.com/oggyb/accountadate/internal/repository"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	Store      *repository.Store
	RedisCache *cache.RedisCache
	Tokens     *auth.TokenManager
	Logger     *slog.Logger

	// Now is the clock used for badge evaluation and end timestamps.
	Now func() time.Time
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		Config:     cfg,
		DB:         db,
		Store:      repository.NewStore(db, cfg.DB.Timeout),
		RedisCache: rdb,
		Tokens:     auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		Logger:     logger,
		Now:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}
