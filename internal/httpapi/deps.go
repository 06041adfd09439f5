// Package httpapi is the engine's HTTP surface: search, export, saved
// prospects, templates, config, secrets, status, and the SSE event stream.
package httpapi

import (
	"database/sql"
	"sync/atomic"

	"prospector-engine/internal/cache"
	"prospector-engine/internal/config"
	"prospector-engine/internal/events"
	"prospector-engine/internal/search"
)

// Deps carries everything the handlers need. Cfg holds a config.Config and
// is swapped atomically when the user edits settings.
type Deps struct {
	Searcher *search.Cached
	Cache    cache.Store
	DB       *sql.DB
	Hub      *events.Hub

	Cfg         *atomic.Value
	UserCfgPath string

	// HasKey reports whether a credential is resolvable (env or keychain)
	// without revealing it.
	HasKey func(name string) bool

	// CronSecret guards the warm endpoint. Empty disables the check.
	CronSecret func() string
}

func (d Deps) config() config.Config {
	if c, ok := d.Cfg.Load().(config.Config); ok {
		return c
	}
	return config.Config{}
}
