package inmemory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/solody/commerce-order-api/internal/adapters/out/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutexService_Acquire(t *testing.T) {
	t.Run("free lock is acquired", func(t *testing.T) {
		// Given
		svc := inmemory.NewMutexService()

		// When
		acquired, err := svc.Acquire(context.Background(), "orders", time.Minute)

		// Then
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("held lock is not acquired twice", func(t *testing.T) {
		// Given
		svc := inmemory.NewMutexService()
		ctx := context.Background()

		first, err := svc.Acquire(ctx, "orders", time.Minute)
		require.NoError(t, err)
		require.True(t, first)

		// When
		second, err := svc.Acquire(ctx, "orders", time.Minute)

		// Then
		require.NoError(t, err)
		assert.False(t, second)
	})

	t.Run("distinct names do not contend", func(t *testing.T) {
		// Given
		svc := inmemory.NewMutexService()
		ctx := context.Background()

		first, err := svc.Acquire(ctx, "orders", time.Minute)
		require.NoError(t, err)
		require.True(t, first)

		// When
		other, err := svc.Acquire(ctx, "payments", time.Minute)

		// Then
		require.NoError(t, err)
		assert.True(t, other)
	})

	t.Run("released lock can be acquired again", func(t *testing.T) {
		// Given
		svc := inmemory.NewMutexService()
		ctx := context.Background()

		acquired, err := svc.Acquire(ctx, "orders", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)
		require.NoError(t, svc.Release(ctx, "orders"))

		// When
		again, err := svc.Acquire(ctx, "orders", time.Minute)

		// Then
		require.NoError(t, err)
		assert.True(t, again)
	})
}

func TestMutexService_Wait(t *testing.T) {
	t.Run("returns immediately when lock is free", func(t *testing.T) {
		// Given
		svc := inmemory.NewMutexService()

		// When
		start := time.Now()
		err := svc.Wait(context.Background(), "orders", time.Minute)

		// Then
		require.NoError(t, err)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("wakes up when the holder releases", func(t *testing.T) {
		// Given
		svc := inmemory.NewMutexService()
		ctx := context.Background()

		acquired, err := svc.Acquire(ctx, "orders", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		released := make(chan struct{})
		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = svc.Release(ctx, "orders")
			close(released)
		}()

		// When
		err = svc.Wait(ctx, "orders", time.Minute)

		// Then
		require.NoError(t, err)
		<-released

		again, err := svc.Acquire(ctx, "orders", time.Minute)
		require.NoError(t, err)
		assert.True(t, again)
	})

	t.Run("timeout elapsing is not an error", func(t *testing.T) {
		// Given
		svc := inmemory.NewMutexService()
		ctx := context.Background()

		acquired, err := svc.Acquire(ctx, "orders", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		// When
		err = svc.Wait(ctx, "orders", 20*time.Millisecond)

		// Then
		require.NoError(t, err)
	})

	t.Run("cancelled context stops the wait", func(t *testing.T) {
		// Given
		svc := inmemory.NewMutexService()
		background := context.Background()

		acquired, err := svc.Acquire(background, "orders", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		ctx, cancel := context.WithCancel(background)
		cancel()

		// When
		err = svc.Wait(ctx, "orders", time.Minute)

		// Then
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestMutexService_MutualExclusion(t *testing.T) {
	// Given
	svc := inmemory.NewMutexService()
	ctx := context.Background()

	const workers = 16
	var inCritical atomic.Int32
	var overlaps atomic.Int32
	var completed atomic.Int32

	// When: workers hammer the same lock with the acquire/wait/acquire
	// pattern the order assembler uses.
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for attempt := 0; attempt < 20; attempt++ {
				acquired, err := svc.Acquire(ctx, "assembly", time.Minute)
				require.NoError(t, err)
				if !acquired {
					require.NoError(t, svc.Wait(ctx, "assembly", 10*time.Millisecond))
					acquired, err = svc.Acquire(ctx, "assembly", time.Minute)
					require.NoError(t, err)
					if !acquired {
						continue
					}
				}

				if inCritical.Add(1) > 1 {
					overlaps.Add(1)
				}
				time.Sleep(time.Microsecond)
				inCritical.Add(-1)

				completed.Add(1)
				require.NoError(t, svc.Release(ctx, "assembly"))
			}
		}()
	}
	wg.Wait()

	// Then
	assert.Zero(t, overlaps.Load())
	assert.Positive(t, completed.Load())
}
