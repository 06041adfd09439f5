package domain

import "strings"

const (
	LimitMin     = 1
	LimitMax     = 50
	LimitDefault = 10
)

// SearchRequest is the validated, clamped input to a unified search.
type SearchRequest struct {
	Query   string `json:"query"`
	Region  string `json:"region"`
	Type    string `json:"type"`    // "" | web | news
	Recency string `json:"recency"` // "" | 1d | 7d | 30d
	Site    string `json:"site"`    // "" | edu | gov | com | org
	Preset  string `json:"preset"`  // "" | universities | gov | aerospace | construction
	Limit   int    `json:"limit"`
	NoCache bool   `json:"noCache"`
}

// Normalize trims fields and clamps Limit into the allowed range. It does
// not validate Query; callers reject empty queries before any upstream call.
func (r *SearchRequest) Normalize() {
	r.Query = strings.TrimSpace(r.Query)
	r.Region = strings.TrimSpace(r.Region)
	if r.Region == "" {
		r.Region = "us"
	}
	if r.Limit == 0 {
		r.Limit = LimitDefault
	}
	if r.Limit < LimitMin {
		r.Limit = LimitMin
	}
	if r.Limit > LimitMax {
		r.Limit = LimitMax
	}
}

// SearchResponse is the envelope every search returns. All slices are
// non-nil so callers never see a malformed or partial body.
type SearchResponse struct {
	Q              string     `json:"q"`
	Prospects      []Prospect `json:"prospects"`
	Sources        []string   `json:"sources"`
	TotalAPIs      int        `json:"totalAPIs"`
	SuccessfulAPIs int        `json:"successfulAPIs"`
	Errors         []string   `json:"errors"`
	Cached         bool       `json:"cached"`
	Version        string     `json:"version,omitempty"`
}

// EnsureShape replaces nil slices with empty ones. Cached payloads that went
// through JSON can come back with nils; the envelope invariant must hold
// regardless.
func (r *SearchResponse) EnsureShape() {
	if r.Prospects == nil {
		r.Prospects = []Prospect{}
	}
	if r.Sources == nil {
		r.Sources = []string{}
	}
	if r.Errors == nil {
		r.Errors = []string{}
	}
}
