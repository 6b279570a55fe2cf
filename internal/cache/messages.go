// Package cache holds the Redis-backed message-list cache. Caching is
// strictly an optimization: a nil client turns every read into a miss and
// every write into a no-op, and correctness never depends on cache state.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const cacheTTL = 24 * time.Hour

// CachedMessage is the wire form of a message in the Redis list.
type CachedMessage struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversationId"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

// MessageCache keeps each conversation's message list in a Redis list keyed
// by conversation ID.
type MessageCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewMessageCache(client *redis.Client, logger *zap.Logger) *MessageCache {
	return &MessageCache{client: client, logger: logger}
}

func messagesKey(conversationID uuid.UUID) string {
	return fmt.Sprintf("chat:%s:messages", conversationID)
}

// Get returns the cached message list, or (nil, false) on a miss or when
// caching is disabled.
func (c *MessageCache) Get(ctx context.Context, conversationID uuid.UUID) ([]CachedMessage, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.LRange(ctx, messagesKey(conversationID), 0, -1).Result()
	if err != nil || len(raw) == 0 {
		return nil, false
	}

	messages := make([]CachedMessage, 0, len(raw))
	for _, item := range raw {
		var msg CachedMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			// A corrupt entry poisons the whole list; drop it.
			c.Invalidate(ctx, conversationID)
			return nil, false
		}
		messages = append(messages, msg)
	}
	return messages, true
}

// Replace overwrites the cached list with the given messages.
func (c *MessageCache) Replace(ctx context.Context, conversationID uuid.UUID, messages []CachedMessage) {
	if c.client == nil {
		return
	}

	key := messagesKey(conversationID)
	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	for _, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			c.logger.Warn("failed to marshal message for cache", zap.Error(err))
			continue
		}
		pipe.RPush(ctx, key, data)
	}
	pipe.Expire(ctx, key, cacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("failed to cache messages", zap.Error(err))
	}
}

// Invalidate drops the cached list for a conversation.
func (c *MessageCache) Invalidate(ctx context.Context, conversationID uuid.UUID) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, messagesKey(conversationID)).Err(); err != nil {
		c.logger.Warn("failed to invalidate message cache", zap.Error(err))
	}
}
