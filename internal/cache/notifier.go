package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ChatChannel is the pub/sub channel of one match's conversation.
func ChatChannel(matchID uint64) string {
	return "chat:match:" + strconv.FormatUint(matchID, 10)
}

// PublishChatMessage announces a new message id on the match channel.
// Subscribers re-read storage, so the payload is only a hint.
func (c *RedisCache) PublishChatMessage(ctx context.Context, matchID, messageID uint64) error {
	return c.Client.Publish(ctx, ChatChannel(matchID), strconv.FormatUint(messageID, 10)).Err()
}

// SubscribeChat subscribes to the match channel and waits for Redis to
// confirm, so no publish after it returns is missed. The caller owns the
// returned PubSub and must Close it.
func (c *RedisCache) SubscribeChat(ctx context.Context, matchID uint64) (*redis.PubSub, error) {
	sub := c.Client.Subscribe(ctx, ChatChannel(matchID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", ChatChannel(matchID), err)
	}
	return sub, nil
}
