package httpapi

import (
	"net/http"

	"prospector-engine/internal/store"
)

func handleListTemplates(d Deps, w http.ResponseWriter, r *http.Request) {
	list, err := store.ListTemplates(r.Context(), d.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if list == nil {
		list = []store.Template{}
	}
	writeJSON(w, map[string]any{"templates": list})
}
