package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"prospector-engine/internal/cache"
	"prospector-engine/internal/secrets"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]bool{"ok": true})
}

type statusResponse struct {
	OK      bool            `json:"ok"`
	Version string          `json:"version"`
	Keys    map[string]bool `json:"keys"`
	Cache   string          `json:"cache"` // ok | mismatch | error | skip
}

// cacheRoundTrip writes a probe entry and reads it back. "skip" means the
// store is the in-process fallback and the probe proves nothing.
func cacheRoundTrip(store cache.Store, skip bool) string {
	if skip {
		return "skip"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	probe := []byte(time.Now().UTC().Format(time.RFC3339Nano))
	store.Set(ctx, "status:probe", probe, 30*time.Second)
	got, ok := store.Get(ctx, "status:probe")
	store.Delete(ctx, "status:probe")
	if !ok {
		return "error"
	}
	if !bytes.Equal(got, probe) {
		return "mismatch"
	}
	return "ok"
}

func handleStatus(d Deps, w http.ResponseWriter, r *http.Request) {
	cfg := d.config()

	keys := map[string]bool{
		secrets.EnvSerpAPIKey: d.HasKey(secrets.EnvSerpAPIKey),
		secrets.EnvSamAPIKey:  d.HasKey(secrets.EnvSamAPIKey),
		secrets.EnvOpenAIKey:  d.HasKey(secrets.EnvOpenAIKey),
		secrets.EnvRedisURL:   d.HasKey(secrets.EnvRedisURL),
		secrets.EnvCronSecret: d.HasKey(secrets.EnvCronSecret),
	}

	writeJSON(w, statusResponse{
		OK:      true,
		Version: cfg.Search.Version,
		Keys:    keys,
		Cache:   cacheRoundTrip(d.Cache, !d.HasKey(secrets.EnvRedisURL)),
	})
}
