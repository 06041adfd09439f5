package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/events"
	"prospector-engine/internal/store"
)

func handleListSaved(d Deps, w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	list, err := store.ListSavedProspects(r.Context(), d.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if list == nil {
		list = []domain.Prospect{}
	}
	writeJSON(w, map[string]any{"prospects": list})
}

func handleSaveProspect(d Deps, w http.ResponseWriter, r *http.Request) {
	var p domain.Prospect
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid prospect body")
		return
	}
	if err := store.SaveProspect(r.Context(), d.DB, p); err != nil {
		WriteError(w, r, http.StatusBadRequest, "save_failed", err.Error())
		return
	}

	d.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), "prospect_saved", map[string]string{
		"id":    p.ID,
		"title": p.Title,
	}))

	writeJSON(w, map[string]bool{"ok": true})
}

func handleDeleteSaved(d Deps, w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/prospects/saved/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "missing prospect id")
		return
	}
	if err := store.DeleteSavedProspect(r.Context(), d.DB, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}
