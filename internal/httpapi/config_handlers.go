package httpapi

import (
	"encoding/json"
	"net/http"

	"prospector-engine/internal/config"
)

func handleGetConfig(d Deps, w http.ResponseWriter, r *http.Request) {
	writeJSON(w, d.config())
}

// handlePutConfig validates, persists, and swaps the live config in one
// step. A payload with validation errors is rejected and nothing changes.
func handlePutConfig(d Deps, w http.ResponseWriter, r *http.Request) {
	var incoming config.Config
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid config body")
		return
	}

	normalized, v := config.NormalizeAndValidate(incoming)
	if !v.OK() {
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"ok":       false,
			"errors":   v.Errors,
			"warnings": v.Warnings,
		})
		return
	}

	if err := config.Save(d.UserCfgPath, normalized); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	d.Cfg.Store(normalized)

	writeJSON(w, map[string]any{"ok": true, "warnings": v.Warnings})
}

func handleConfigPath(d Deps, w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"path": d.UserCfgPath})
}
