// Package redislock implements the MutexService port on top of Redis.
// Locks are plain keys written with SET NX and an expiry, so a crashed
// holder never blocks assembly for longer than the lock ttl.
package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when it still holds this
// instance's token, so an expired lock reacquired by another process is
// never released from here.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

const pollInterval = 200 * time.Millisecond

// RedisMutexService provides named, process-spanning locks.
type RedisMutexService struct {
	client *redis.Client
	token  string
}

// NewRedisMutexService creates a mutex service bound to the given client.
// Each instance carries its own ownership token.
func NewRedisMutexService(client *redis.Client) *RedisMutexService {
	return &RedisMutexService{
		client: client,
		token:  uuid.NewString(),
	}
}

// Acquire attempts to take the named lock for at most ttl. It returns false
// without error when another holder currently owns the lock.
func (s *RedisMutexService) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	acquired, err := s.client.SetNX(ctx, lockKey(name), s.token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx failed: %w", err)
	}
	return acquired, nil
}

// Wait blocks until the named lock becomes free or timeout elapses. The
// timeout elapsing is not an error; callers re-attempt Acquire and decide
// for themselves.
func (s *RedisMutexService) Wait(ctx context.Context, name string, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		n, err := s.client.Exists(ctx, lockKey(name)).Result()
		if err != nil {
			return fmt.Errorf("redis exists failed: %w", err)
		}
		if n == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return nil
		case <-ticker.C:
		}
	}
}

// Release frees the named lock if this instance still holds it. Releasing a
// lock that expired or was never acquired is a no-op.
func (s *RedisMutexService) Release(ctx context.Context, name string) error {
	if err := releaseScript.Run(ctx, s.client, []string{lockKey(name)}, s.token).Err(); err != nil {
		return fmt.Errorf("redis release failed: %w", err)
	}
	return nil
}

func lockKey(name string) string {
	return fmt.Sprintf("lock:%s", name)
}
