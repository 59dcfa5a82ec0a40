package usagegate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "usagegate:"

	// Anonymous counters roll over after a day; the client-side counter is
	// the durable one, this window just blunts rapid identity cycling.
	counterTTL = 24 * time.Hour
)

// RedisStore keeps anonymous usage counters in Redis with a rolling TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(clientID string) string {
	return fmt.Sprintf("%s%s", keyPrefix, clientID)
}

func (r *RedisStore) Get(ctx context.Context, clientID string) (int, error) {
	count, err := r.client.Get(ctx, key(clientID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

func (r *RedisStore) Increment(ctx context.Context, clientID string) (int, error) {
	k := key(clientID)
	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	// Set the window on first use only; later increments keep the original
	// expiry so the counter cannot be extended indefinitely.
	if count == 1 {
		if err := r.client.Expire(ctx, k, counterTTL).Err(); err != nil {
			return int(count), err
		}
	}
	return int(count), nil
}

func (r *RedisStore) Reset(ctx context.Context, clientID string) error {
	return r.client.Del(ctx, key(clientID)).Err()
}
