// Package refresh runs fire-and-forget recomputation jobs. A cache hit
// enqueues one; the request that triggered it never waits on it and never
// hears about its failure. Jobs carry their own timeout and their errors go
// to the log, nowhere else.
package refresh

import (
	"context"
	"log"
	"sync"
	"time"
)

type job struct {
	name string
	fn   func(ctx context.Context) error
}

type Queue struct {
	ch      chan job
	timeout time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

// NewQueue starts a single worker draining up to buffer pending jobs. One
// worker is enough: refresh is idempotent and last writer wins, so there is
// nothing to gain from racing refreshes of the same key.
func NewQueue(buffer int, perJobTimeout time.Duration) *Queue {
	if buffer <= 0 {
		buffer = 32
	}
	q := &Queue{
		ch:      make(chan job, buffer),
		timeout: perJobTimeout,
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue never blocks; when the buffer is full the job is dropped. A
// dropped refresh just means the cache entry lives until its TTL.
func (q *Queue) Enqueue(name string, fn func(ctx context.Context) error) {
	select {
	case q.ch <- job{name: name, fn: fn}:
	default:
		log.Printf("[refresh] queue full, dropping %s", name)
	}
}

func (q *Queue) run() {
	for j := range q.ch {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		if err := j.fn(ctx); err != nil {
			log.Printf("[refresh] %s: %v", j.name, err)
		}
		cancel()
	}
	close(q.done)
}

// Close stops accepting jobs and waits for the worker to drain.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.ch) })
	<-q.done
}
