package delivery

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const pendingSetKey = "nudge:pending_notifications"

// Registry records which delivery identifiers currently have a pending
// instruction. It lets a restarted scheduler cancel stale notifications
// before its first pass and makes supersede semantics observable.
type Registry interface {
	Track(ctx context.Context, identifier string) error
	Untrack(ctx context.Context, identifier string) error
	Pending(ctx context.Context) ([]string, error)
}

// RedisRegistry implements Registry on a Redis set, for server deployments
// where scheduler restarts must not leak stale pending notifications.
type RedisRegistry struct {
	client *redis.Client
}

// NewRedisRegistry connects to Redis at url.
func NewRedisRegistry(url string) (*RedisRegistry, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisRegistry{client: redis.NewClient(opts)}, nil
}

// Track adds the identifier to the pending set.
func (r *RedisRegistry) Track(ctx context.Context, identifier string) error {
	return r.client.SAdd(ctx, pendingSetKey, identifier).Err()
}

// Untrack removes the identifier from the pending set.
func (r *RedisRegistry) Untrack(ctx context.Context, identifier string) error {
	return r.client.SRem(ctx, pendingSetKey, identifier).Err()
}

// Pending returns all tracked identifiers.
func (r *RedisRegistry) Pending(ctx context.Context) ([]string, error) {
	return r.client.SMembers(ctx, pendingSetKey).Result()
}

// Close closes the Redis connection.
func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
