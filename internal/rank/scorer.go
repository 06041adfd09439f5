package rank

import (
	"strings"

	"prospector-engine/internal/config"
	"prospector-engine/internal/domain"
)

type Scorer interface {
	Score(p domain.Prospect) int
}

// RuleScorer is a pure additive scorer over the yaml tables: a bonus for
// news-typed results, for hosts under trusted suffixes or on the trusted
// host list, and per recognized standard code in the title/catalyst text.
type RuleScorer struct {
	Cfg config.ScoringConfig
}

func (s RuleScorer) Score(p domain.Prospect) int {
	score := 0

	if p.Type == "news" {
		score += s.Cfg.NewsBonus
	}

	host := strings.ToLower(p.Host)
	if host != "" {
		for _, suf := range s.Cfg.TrustedSuffixes {
			if strings.HasSuffix(host, strings.ToLower(suf)) {
				score += s.Cfg.TrustedSuffixBonus
				break
			}
		}
		for _, th := range s.Cfg.TrustedHosts {
			t := strings.ToLower(th)
			if host == t || strings.HasSuffix(host, "."+t) {
				score += s.Cfg.TrustedSuffixBonus
				break
			}
		}
	}

	text := strings.ToLower(p.Title + " " + p.Catalyst)
	for _, code := range s.Cfg.StandardCodes {
		if strings.Contains(text, strings.ToLower(code)) {
			score += s.Cfg.CodeBonus
		}
	}

	return score
}
