package httpapi

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
)

// handleWarm primes the cache for the configured warm queries. When a cron
// secret is set, the caller must present it as a bearer token.
func handleWarm(d Deps, w http.ResponseWriter, r *http.Request) {
	if secret := d.CronSecret(); secret != "" {
		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid cron secret")
			return
		}
	}

	cfg := d.config()
	warmed := 0
	var failed []string
	for _, q := range cfg.Warm.Queries {
		if err := d.Searcher.Warm(r.Context(), q); err != nil {
			log.Printf("[warm] %q: %v", q, err)
			failed = append(failed, q)
			continue
		}
		warmed++
	}
	if failed == nil {
		failed = []string{}
	}

	writeJSON(w, map[string]any{"ok": true, "warmed": warmed, "failed": failed})
}
