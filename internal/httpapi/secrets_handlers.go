package httpapi

import (
	"encoding/json"
	"net/http"

	"prospector-engine/internal/secrets"
)

// Secrets only ever travel request -> keychain. No handler echoes a value
// back.

func handleSetKey(d Deps, w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid body")
		return
	}

	switch body.Name {
	case secrets.EnvSerpAPIKey, secrets.EnvSamAPIKey, secrets.EnvOpenAIKey,
		secrets.EnvRedisURL, secrets.EnvCronSecret:
	default:
		WriteError(w, r, http.StatusBadRequest, "bad_request", "unknown key name")
		return
	}

	if err := secrets.SetAPIKey(body.Name, body.Value); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keychain_error", err.Error())
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func handleSetIMAPPassword(d Deps, w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid body")
		return
	}

	cfg := d.config()
	if cfg.Alerts.Username == "" || cfg.Alerts.IMAPHost == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "alerts account is not configured")
		return
	}

	if err := secrets.SetIMAPPassword(cfg, body.Password); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keychain_error", err.Error())
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}
