package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"prospector-engine/internal/cache"
	"prospector-engine/internal/domain"
	"prospector-engine/internal/query"
	"prospector-engine/internal/refresh"
)

// Cached wraps a Runner with serve-from-cache, refresh-in-background
// behavior. A hit answers immediately and enqueues a recompute; a miss
// computes synchronously and populates the cache.
type Cached struct {
	Runner   *Runner
	Expander query.Expander
	Store    cache.Store
	TTL      time.Duration
	Refresh  *refresh.Queue
}

// Search expects a normalized, non-empty request; input validation lives at
// the HTTP boundary. The returned envelope is always well-formed.
func (c *Cached) Search(ctx context.Context, req domain.SearchRequest) domain.SearchResponse {
	p := c.Expander.Expand(req)
	key := p.Key()

	if !req.NoCache {
		if b, ok := c.Store.Get(ctx, key); ok {
			var resp domain.SearchResponse
			if err := json.Unmarshal(b, &resp); err == nil {
				resp.EnsureShape()
				resp.Cached = true

				// Two overlapping hits may both enqueue; refresh is
				// idempotent and last writer wins.
				c.Refresh.Enqueue("refresh "+key, func(rctx context.Context) error {
					return c.runAndStore(rctx, p, key)
				})
				return resp
			}
			// Corrupt entry: fall through to a fresh compute.
		}
	}

	resp := c.Runner.Run(ctx, p)
	c.store(ctx, key, resp)
	resp.Cached = false
	return resp
}

func (c *Cached) runAndStore(ctx context.Context, p query.Params, key string) error {
	resp := c.Runner.Run(ctx, p)
	if err := c.store(ctx, key, resp); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (c *Cached) store(ctx context.Context, key string, resp domain.SearchResponse) error {
	resp.Cached = false
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	c.Store.Set(ctx, key, b, c.TTL)
	return nil
}

// Warm primes the cache for a bare query, used by the daily warm task.
func (c *Cached) Warm(ctx context.Context, q string) error {
	req := domain.SearchRequest{Query: q}
	req.Normalize()
	if req.Query == "" {
		return nil
	}
	p := c.Expander.Expand(req)
	return c.runAndStore(ctx, p, p.Key())
}
