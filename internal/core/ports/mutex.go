package ports

import (
	"context"
	"time"
)

// MutexService is a named mutual exclusion primitive shared by all order
// assembly workers. Only one holder per name exists at any moment, across
// processes when backed by a shared store.
type MutexService interface {
	// Acquire attempts to take the named lock without blocking. Returns true
	// when the lock was obtained.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Wait blocks until the named lock becomes free or timeout elapses. It
	// does not acquire the lock; callers retry Acquire afterwards.
	Wait(ctx context.Context, name string, timeout time.Duration) error

	// Release frees the named lock if held by this service instance.
	Release(ctx context.Context, name string) error
}
