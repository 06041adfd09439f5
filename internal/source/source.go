// Package source defines the adapter contract for upstream prospect
// providers and hosts one sub-package per provider.
package source

import (
	"context"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/query"
)

// Source is one upstream integration. Fetch never panics across the
// aggregation boundary: upstream failures come back as an error (and, for
// adapters that degrade inline, a synthetic "error"-typed prospect).
type Source interface {
	Name() string
	Fetch(ctx context.Context, p query.Params) ([]domain.Prospect, error)
}
