package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oggyb/accountadate/internal/config"
	"github.com/redis/go-redis/v9"
)

// AdmirerCountTTL is how long a cached admirer count lives without reads.
const AdmirerCountTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// KeyForAdmirerCount generates Redis key for an account's admirer count
func KeyForAdmirerCount(accountID uint64) string {
	return fmt.Sprintf("admirers:count:%d", accountID)
}

// KeyForAdmirerVersion is bumped on every invalidation of the count.
func KeyForAdmirerVersion(accountID uint64) string {
	return fmt.Sprintf("admirers:version:%d", accountID)
}

// SetAdmirerCount stores count with a fresh TTL.
func (c *RedisCache) SetAdmirerCount(ctx context.Context, accountID uint64, count int64) error {
	return c.Client.Set(ctx, KeyForAdmirerCount(accountID), count, AdmirerCountTTL).Err()
}

// AdmirerCountVersion returns the invalidation generation of accountID.
// Read it before counting in the DB and pass it to SetAdmirerCountIfVersion.
func (c *RedisCache) AdmirerCountVersion(ctx context.Context, accountID uint64) (int64, error) {
	v, err := c.Client.Get(ctx, KeyForAdmirerVersion(accountID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetAdmirerCountIfVersion caches count only if no invalidation happened
// since version was read. stored is false when the count was stale.
func (c *RedisCache) SetAdmirerCountIfVersion(
	ctx context.Context,
	accountID uint64,
	count, version int64,
) (stored bool, err error) {
	versionKey := KeyForAdmirerVersion(accountID)
	err = c.Client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, versionKey).Int64()
		if errors.Is(err, redis.Nil) {
			cur = 0
		} else if err != nil {
			return err
		}
		if cur != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, KeyForAdmirerCount(accountID), count, AdmirerCountTTL)
			return nil
		})
		stored = err == nil
		return err
	}, versionKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil // invalidated while we were writing
	}
	return stored, err
}

// GetAdmirerCount returns the cached count. ok is false on a miss.
// A hit refreshes the TTL since the account is active.
func (c *RedisCache) GetAdmirerCount(ctx context.Context, accountID uint64) (count int64, ok bool, err error) {
	key := KeyForAdmirerCount(accountID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil // cache miss
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil // garbage is a miss
	}
	_ = c.Client.Expire(ctx, key, AdmirerCountTTL).Err()
	return n, true, nil
}

// InvalidateAdmirerCounts drops the cached counts of the given accounts
// and bumps their versions. A swipe changes the admirer set of both its
// parties.
func (c *RedisCache) InvalidateAdmirerCounts(ctx context.Context, accountIDs ...uint64) error {
	if len(accountIDs) == 0 {
		return nil
	}
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range accountIDs {
			pipe.Del(ctx, KeyForAdmirerCount(id))
			pipe.Incr(ctx, KeyForAdmirerVersion(id))
			pipe.Expire(ctx, KeyForAdmirerVersion(id), 2*AdmirerCountTTL)
		}
		return nil
	})
	return err
}
