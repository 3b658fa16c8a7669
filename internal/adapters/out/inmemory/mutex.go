// Package inmemory holds process-local implementations of outbound ports.
// They back single-instance deployments and tests; multi-instance setups
// use the redis adapters instead.
package inmemory

import (
	"context"
	"sync"
	"time"
)

// MutexService provides named locks scoped to the current process.
// Lock ttls are ignored; a process-local holder cannot crash without the
// whole process going away.
type MutexService struct {
	mu    sync.Mutex
	held  map[string]bool
	freed map[string]chan struct{}
}

// NewMutexService creates an empty in-process mutex service.
func NewMutexService() *MutexService {
	return &MutexService{
		held:  make(map[string]bool),
		freed: make(map[string]chan struct{}),
	}
}

// Acquire attempts to take the named lock. It returns false without error
// when the lock is already held.
func (s *MutexService) Acquire(_ context.Context, name string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.held[name] {
		return false, nil
	}
	s.held[name] = true
	return true, nil
}

// Wait blocks until the named lock is released or timeout elapses. The
// timeout elapsing is not an error.
func (s *MutexService) Wait(ctx context.Context, name string, timeout time.Duration) error {
	s.mu.Lock()
	if !s.held[name] {
		s.mu.Unlock()
		return nil
	}
	freed := s.freed[name]
	if freed == nil {
		freed = make(chan struct{})
		s.freed[name] = freed
	}
	s.mu.Unlock()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	select {
	case <-freed:
		return nil
	case <-deadline.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees the named lock and wakes every waiter. Releasing a lock
// that is not held is a no-op.
func (s *MutexService) Release(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.held[name] {
		return nil
	}
	delete(s.held, name)
	if freed := s.freed[name]; freed != nil {
		close(freed)
		delete(s.freed, name)
	}
	return nil
}
