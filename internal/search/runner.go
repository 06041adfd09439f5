// Package search is the aggregation pipeline: fan out to every configured
// source, merge what came back, score, dedupe, cap.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/query"
	"prospector-engine/internal/rank"
	"prospector-engine/internal/source"
)

type Runner struct {
	Sources []source.Source
	Scorer  rank.Scorer

	// Timeout bounds each source independently; a slow source fails alone.
	Timeout time.Duration
	Version string
}

type sourceResult struct {
	name      string
	prospects []domain.Prospect
	err       error
}

// Run fans out to all sources concurrently and waits for every one of them
// to return, fail, or time out. Partial failure degrades the result set and
// populates errors; it never fails the search.
func (r *Runner) Run(ctx context.Context, p query.Params) domain.SearchResponse {
	results := make([]sourceResult, len(r.Sources))

	var g errgroup.Group
	for i, src := range r.Sources {
		i, src := i, src
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, r.Timeout)
			defer cancel()

			start := time.Now()
			prospects, err := safeFetch(sctx, src, p)
			if err != nil && errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("timeout after %s", r.Timeout)
			}
			if err != nil {
				log.Printf("[search] source=%s err=%v", src.Name(), err)
			} else {
				log.Printf("[search] source=%s results=%d took=%s", src.Name(), len(prospects), time.Since(start).Round(time.Millisecond))
			}

			results[i] = sourceResult{name: src.Name(), prospects: prospects, err: err}
			return nil // best-effort: don't cancel siblings
		})
	}
	_ = g.Wait()

	resp := domain.SearchResponse{
		Q:         p.Effective,
		Prospects: []domain.Prospect{},
		Sources:   []string{},
		TotalAPIs: len(r.Sources),
		Errors:    []string{},
		Version:   r.Version,
	}

	var merged []domain.Prospect
	for _, res := range results {
		merged = append(merged, res.prospects...)
		if res.err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", res.name, res.err))
			continue
		}
		resp.SuccessfulAPIs++
		if len(res.prospects) > 0 {
			resp.Sources = append(resp.Sources, res.name)
		}
	}

	resp.Prospects = rank.Rank(merged, r.Scorer, p.Limit)
	return resp
}

// safeFetch contains a panicking source; a bad upstream payload must never
// take down the whole aggregation.
func safeFetch(ctx context.Context, src source.Source, p query.Params) (prospects []domain.Prospect, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			prospects = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return src.Fetch(ctx, p)
}
