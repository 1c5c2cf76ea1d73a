// Package testutil wires throwaway storage for tests: an in-memory SQLite
// database per test and a miniredis instance.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oggyb/accountadate/internal/app"
	"github.com/oggyb/accountadate/internal/cache"
	"github.com/oggyb/accountadate/internal/config"
	"github.com/oggyb/accountadate/internal/db"
)

var nameCleaner = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// NewDB opens a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", nameCleaner.Replace(t.Name()))
	database, err := db.Open(sqlite.Open(dsn), "error")
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return database
}

// NewRedis starts a miniredis server and returns a cache bound to it.
func NewRedis(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	rc := cache.NewRedisCache(cfg)
	t.Cleanup(func() { rc.Client.Close() })
	return rc, mr
}

// Config returns the defaults with a short chat poll interval.
func Config() *config.Config {
	cfg := config.New()
	cfg.Auth.Secret = "test-secret"
	cfg.Chat.PollInterval = 50 * time.Millisecond
	return cfg
}

// CreateUsers inserts accounts named user1..userN and returns their ids.
func CreateUsers(t *testing.T, database *gorm.DB, n int) []uint64 {
	t.Helper()

	ids := make([]uint64, 0, n)
	for i := 1; i <= n; i++ {
		u := db.User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@test.com", i),
			PasswordHash: "x",
		}
		require.NoError(t, database.Create(&u).Error)
		ids = append(ids, u.ID)
	}
	return ids
}

// NewAppContext wires a fresh database, miniredis and a discarding logger.
func NewAppContext(t *testing.T) *app.AppContext {
	t.Helper()

	rc, _ := NewRedis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests
	return app.New(Config(), NewDB(t), rc, logger)
}
