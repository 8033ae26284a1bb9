package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store with a sorted-set sliding window so multiple
// replicas share one view of each account's claim rate.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "namevault:ratelimit:"}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

// Allow checks and records a request atomically. Entries are scored by
// timestamp; everything older than the window is trimmed before counting.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := time.Now()
	cutoff := now.Add(-window)
	redisKey := s.key(key)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", cutoff.UnixNano()))
	countCmd := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("ratelimit count: %w", err)
	}

	count := int(countCmd.Val())
	if count >= limit {
		return &Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   now.Add(window),
			Limit:     limit,
		}, nil
	}

	record := s.client.TxPipeline()
	record.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	record.Expire(ctx, redisKey, window)
	if _, err := record.Exec(ctx); err != nil {
		return nil, fmt.Errorf("ratelimit record: %w", err)
	}

	return &Result{
		Allowed:   true,
		Remaining: limit - count - 1,
		ResetAt:   now.Add(window),
		Limit:     limit,
	}, nil
}

// Reset clears the counter for a key.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("ratelimit reset: %w", err)
	}
	return nil
}
