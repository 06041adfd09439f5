package rank

import (
	"sort"

	"prospector-engine/internal/domain"
)

// Rank scores every prospect, stable-sorts by score descending (ties keep
// input order), then walks the list once keeping the first occurrence of
// each dedupe key. Because the walk happens after sorting, a higher-scored
// duplicate always survives over a lower-scored one. The result is capped
// at limit.
func Rank(in []domain.Prospect, s Scorer, limit int) []domain.Prospect {
	out := make([]domain.Prospect, len(in))
	copy(out, in)

	for i := range out {
		out[i].Score = s.Score(out[i])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	seen := make(map[string]bool, len(out))
	deduped := out[:0]
	for _, p := range out {
		k := p.DedupeKey()
		if k != "" && seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, p)
	}

	if limit > 0 && len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return deduped
}
