package dedup

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store backed by a Redis set. Every Record is
// durable immediately, so Flush has nothing left to do.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
	setKey string
}

// NewRedisStore creates a Redis-backed dedup store
func NewRedisStore(ctx context.Context, addr string, db int, setKey string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisStore{
		client: client,
		ctx:    ctx,
		setKey: setKey,
	}
}

// Ping verifies the Redis connection; called once at startup so a dead
// store aborts before anything is fetched or sent.
func (s *RedisStore) Ping() error {
	return s.client.Ping(s.ctx).Err()
}

// Seen reports whether the key has already been notified
func (s *RedisStore) Seen(key string) (bool, error) {
	return s.client.SIsMember(s.ctx, s.setKey, key).Result()
}

// Record marks a key as notified
func (s *RedisStore) Record(key string) error {
	return s.client.SAdd(s.ctx, s.setKey, key).Err()
}

// Flush is a no-op; Record writes through to Redis
func (s *RedisStore) Flush() error {
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
