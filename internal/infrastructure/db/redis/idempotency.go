package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore records idempotency keys for money-movement requests.
// Key format: ledger:idem:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Seen reports whether the key has already been recorded.
func (s *IdempotencyStore) Seen(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency check: %w", err)
	}
	return n > 0, nil
}

// Mark records the key as processed (expires after idempotencyTTL).
func (s *IdempotencyStore) Mark(ctx context.Context, key string) error {
	return s.client.Set(ctx, s.key(key), "1", idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "ledger:idem:" + key
}
