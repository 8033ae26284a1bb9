package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore implements Store using an in-memory sliding window.
// Single-process only; use RedisStore when running more than one replica.
type InMemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*slidingWindow
}

// slidingWindow tracks request timestamps. A true sliding window avoids the
// boundary burst a fixed window allows.
type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

// NewInMemoryStore creates a new in-memory rate limit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{buckets: make(map[string]*slidingWindow)}
}

// Allow checks if a request is allowed and increments the counter.
func (s *InMemoryStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sw := s.getOrCreateBucket(key, window)
	sw.cleanup(now)

	if len(sw.timestamps)+1 <= limit {
		sw.timestamps = append(sw.timestamps, now)

		resetAt := sw.timestamps[0].Add(window)
		return &Result{
			Allowed:   true,
			Remaining: limit - len(sw.timestamps),
			ResetAt:   resetAt,
			Limit:     limit,
		}, nil
	}

	return &Result{
		Allowed:   false,
		Remaining: 0,
		ResetAt:   sw.timestamps[0].Add(window),
		Limit:     limit,
	}, nil
}

// Reset clears the rate limit counter for a key.
func (s *InMemoryStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

// cleanup removes expired timestamps from a sliding window.
func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// getOrCreateBucket returns an existing bucket or creates a new one.
// Must be called while holding s.mu.
func (s *InMemoryStore) getOrCreateBucket(key string, window time.Duration) *slidingWindow {
	if sw := s.buckets[key]; sw != nil {
		return sw
	}
	sw := &slidingWindow{timestamps: []time.Time{}, window: window}
	s.buckets[key] = sw
	return sw
}
