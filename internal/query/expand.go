// Package query turns a raw search request into the concrete parameters the
// source adapters need. Expansion is pure: same request and tables in, same
// params and cache key out.
package query

import (
	"fmt"
	"strings"

	"prospector-engine/internal/domain"
)

// Params is an expanded request. Effective is the human-readable query with
// preset and site clauses appended; it doubles as cache key material.
type Params struct {
	domain.SearchRequest

	Effective string
}

type Expander struct {
	// Presets maps a category name to clauses appended in list order.
	Presets map[string][]string
}

func (e Expander) Expand(req domain.SearchRequest) Params {
	clauses := []string{req.Query}

	if req.Preset != "" {
		for _, c := range e.Presets[req.Preset] {
			clauses = append(clauses, c)
		}
	}

	// Preset and site are ANDed; no conflict resolution beyond concatenation.
	if req.Site != "" {
		clauses = append(clauses, "site:"+strings.TrimPrefix(req.Site, "."))
	}

	return Params{
		SearchRequest: req,
		Effective:     strings.Join(clauses, " "),
	}
}

// Key is the deterministic cache key for one expanded request. NoCache is
// deliberately excluded; it changes read behavior, not identity.
func (p Params) Key() string {
	return fmt.Sprintf("unified:%s:%d:%s:%s:%s",
		p.Region, p.Limit, p.Type, p.Recency, strings.ToLower(p.Effective))
}
