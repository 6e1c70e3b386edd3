package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var processed atomic.Int64
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		processed.Add(1)
		return nil
	}, QueueConfig{Workers: 2, BufferSize: 8})

	q.Start(context.Background())
	defer q.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(Job{ID: "j", Type: "noop"}))
	}

	require.Eventually(t, func() bool {
		return processed.Load() == 5
	}, time.Second, 10*time.Millisecond)
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})
	err := q.Enqueue(Job{ID: "early"})
	assert.Error(t, err)
}

func TestQueueDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		<-block
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})

	q.Start(context.Background())
	defer func() {
		close(block)
		q.Stop()
	}()

	// First job occupies the worker, second fills the buffer; after that
	// Enqueue must fail fast instead of blocking the caller.
	require.NoError(t, q.Enqueue(Job{ID: "a"}))
	require.Eventually(t, func() bool {
		return q.Enqueue(Job{ID: "b"}) == nil
	}, time.Second, 5*time.Millisecond)

	err := q.Enqueue(Job{ID: "c"})
	assert.Error(t, err)
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var attempts atomic.Int64
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		if attempts.Add(1) == 1 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 4, MaxRetries: 2, RetryDelay: 10 * time.Millisecond})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "flaky", Type: "noop"}))

	require.Eventually(t, func() bool {
		return attempts.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestQueueStopWaitsForPendingRetry(t *testing.T) {
	var attempts atomic.Int64
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		attempts.Add(1)
		return errors.New("always fails")
	}, QueueConfig{Workers: 1, BufferSize: 4, MaxRetries: 5, RetryDelay: time.Minute})

	q.Start(context.Background())
	require.NoError(t, q.Enqueue(Job{ID: "doomed", Type: "noop"}))

	require.Eventually(t, func() bool {
		return attempts.Load() >= 1
	}, time.Second, 10*time.Millisecond)

	// The failed job is parked waiting a minute for its retry; Stop must
	// cancel that wait and return instead of hanging or leaking it.
	done := make(chan struct{})
	go func() {
		q.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return with a retry pending")
	}
	assert.EqualValues(t, 1, attempts.Load())
}
