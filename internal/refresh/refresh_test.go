package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestQueueRunsJobs(t *testing.T) {
	q := NewQueue(4, time.Second)

	var ran atomic.Int32
	done := make(chan struct{})
	q.Enqueue("job", func(ctx context.Context) error {
		ran.Add(1)
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
	q.Close()
	if ran.Load() != 1 {
		t.Fatalf("ran = %d", ran.Load())
	}
}

func TestQueueJobErrorsDoNotStopWorker(t *testing.T) {
	q := NewQueue(4, time.Second)

	q.Enqueue("bad", func(ctx context.Context) error {
		return errors.New("boom")
	})

	done := make(chan struct{})
	q.Enqueue("good", func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker stopped after a failing job")
	}
	q.Close()
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(1, time.Second)

	gate := make(chan struct{})
	var ran atomic.Int32

	// Occupy the worker so queued jobs stay queued.
	q.Enqueue("blocker", func(ctx context.Context) error {
		<-gate
		return nil
	})
	time.Sleep(50 * time.Millisecond)

	counted := func(ctx context.Context) error {
		ran.Add(1)
		return nil
	}
	q.Enqueue("queued", counted)  // fills the buffer
	q.Enqueue("dropped", counted) // dropped, queue is full

	close(gate)
	q.Close()

	if ran.Load() != 1 {
		t.Fatalf("ran = %d, want 1 (second job dropped)", ran.Load())
	}
}

func TestQueueJobTimeout(t *testing.T) {
	q := NewQueue(4, 20*time.Millisecond)

	done := make(chan error, 1)
	q.Enqueue("slow", func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	})

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("err = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("job context never expired")
	}
	q.Close()
}
