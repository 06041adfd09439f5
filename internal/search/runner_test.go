package search

import (
	"context"
	"strings"
	"testing"
	"time"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/query"
	"prospector-engine/internal/rank"
)

type fakeSource struct {
	name      string
	prospects []domain.Prospect
	err       error
	delay     time.Duration
	panics    bool
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) Fetch(ctx context.Context, _ query.Params) ([]domain.Prospect, error) {
	if f.panics {
		panic("bad payload")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.prospects, f.err
}

type flatScorer struct{}

func (flatScorer) Score(domain.Prospect) int { return 0 }

func testParams(q string, limit int) query.Params {
	req := domain.SearchRequest{Query: q, Limit: limit}
	req.Normalize()
	return query.Expander{}.Expand(req)
}

func newRunner(scorer rank.Scorer, srcs ...fakeSource) *Runner {
	r := &Runner{Scorer: scorer, Timeout: 200 * time.Millisecond, Version: "v1"}
	for _, s := range srcs {
		r.Sources = append(r.Sources, s)
	}
	return r
}

func TestRunMergesAllSources(t *testing.T) {
	r := newRunner(flatScorer{},
		fakeSource{name: "a", prospects: []domain.Prospect{{ID: "1", Title: "one"}}},
		fakeSource{name: "b", prospects: []domain.Prospect{{ID: "2", Title: "two"}}},
	)

	resp := r.Run(context.Background(), testParams("q", 10))
	if resp.TotalAPIs != 2 || resp.SuccessfulAPIs != 2 {
		t.Fatalf("counts = %d/%d", resp.SuccessfulAPIs, resp.TotalAPIs)
	}
	if len(resp.Prospects) != 2 {
		t.Fatalf("prospects = %d", len(resp.Prospects))
	}
	if len(resp.Sources) != 2 || resp.Sources[0] != "a" || resp.Sources[1] != "b" {
		t.Fatalf("sources = %v", resp.Sources)
	}
	if len(resp.Errors) != 0 {
		t.Fatalf("errors = %v", resp.Errors)
	}
}

func TestRunPartialFailureDegrades(t *testing.T) {
	r := newRunner(flatScorer{},
		fakeSource{name: "good", prospects: []domain.Prospect{{ID: "1", Title: "one"}}},
		fakeSource{name: "bad", err: context.Canceled},
	)

	resp := r.Run(context.Background(), testParams("q", 10))
	if resp.SuccessfulAPIs != 1 {
		t.Fatalf("successful = %d", resp.SuccessfulAPIs)
	}
	if len(resp.Errors) != 1 || !strings.HasPrefix(resp.Errors[0], "bad: ") {
		t.Fatalf("errors = %v", resp.Errors)
	}
	if len(resp.Prospects) != 1 {
		t.Fatalf("prospects = %d", len(resp.Prospects))
	}
}

func TestRunTimeoutTranslated(t *testing.T) {
	r := newRunner(flatScorer{},
		fakeSource{name: "slow", delay: time.Second},
	)

	resp := r.Run(context.Background(), testParams("q", 10))
	if resp.SuccessfulAPIs != 0 {
		t.Fatalf("successful = %d", resp.SuccessfulAPIs)
	}
	if len(resp.Errors) != 1 || !strings.Contains(resp.Errors[0], "timeout after") {
		t.Fatalf("errors = %v", resp.Errors)
	}
}

func TestRunSourceWithNoResultsCountsSuccessButNotSource(t *testing.T) {
	r := newRunner(flatScorer{},
		fakeSource{name: "empty"},
	)

	resp := r.Run(context.Background(), testParams("q", 10))
	if resp.SuccessfulAPIs != 1 {
		t.Fatalf("successful = %d", resp.SuccessfulAPIs)
	}
	if len(resp.Sources) != 0 {
		t.Fatalf("sources = %v", resp.Sources)
	}
}

func TestRunPanicIsContained(t *testing.T) {
	r := newRunner(flatScorer{},
		fakeSource{name: "boom", panics: true},
		fakeSource{name: "ok", prospects: []domain.Prospect{{ID: "1", Title: "one"}}},
	)

	resp := r.Run(context.Background(), testParams("q", 10))
	if resp.SuccessfulAPIs != 1 {
		t.Fatalf("successful = %d", resp.SuccessfulAPIs)
	}
	if len(resp.Errors) != 1 || !strings.Contains(resp.Errors[0], "panic") {
		t.Fatalf("errors = %v", resp.Errors)
	}
}

func TestRunZeroSources(t *testing.T) {
	r := newRunner(flatScorer{})
	resp := r.Run(context.Background(), testParams("q", 10))
	if resp.TotalAPIs != 0 || resp.SuccessfulAPIs != 0 {
		t.Fatalf("counts = %d/%d", resp.SuccessfulAPIs, resp.TotalAPIs)
	}
	if resp.Prospects == nil || resp.Sources == nil || resp.Errors == nil {
		t.Fatal("envelope slices must be non-nil")
	}
	if resp.Version != "v1" {
		t.Fatalf("version = %q", resp.Version)
	}
}

func TestRunCapsAtLimit(t *testing.T) {
	var many []domain.Prospect
	for i := 0; i < 20; i++ {
		many = append(many, domain.Prospect{ID: string(rune('a' + i)), Title: string(rune('a' + i))})
	}
	r := newRunner(flatScorer{}, fakeSource{name: "big", prospects: many})

	resp := r.Run(context.Background(), testParams("q", 5))
	if len(resp.Prospects) != 5 {
		t.Fatalf("prospects = %d, want 5", len(resp.Prospects))
	}
}
