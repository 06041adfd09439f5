package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"prospector-engine/internal/domain"
	"prospector-engine/internal/events"
)

// parseSearchRequest accepts both GET query params and a POST JSON body.
// GET takes "q" with "query" as an alias.
func parseSearchRequest(r *http.Request) (domain.SearchRequest, error) {
	var req domain.SearchRequest

	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
		req.Normalize()
		return req, nil
	}

	q := r.URL.Query()
	req.Query = q.Get("q")
	if req.Query == "" {
		req.Query = q.Get("query")
	}
	req.Region = q.Get("region")
	req.Type = q.Get("type")
	req.Recency = q.Get("recency")
	req.Site = q.Get("site")
	req.Preset = q.Get("preset")
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Limit = n
		}
	}
	if v := q.Get("nocache"); v == "1" || strings.EqualFold(v, "true") {
		req.NoCache = true
	}
	req.Normalize()
	return req, nil
}

func handleSearch(d Deps, w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if req.Query == "" {
		// The envelope stays well-formed even on rejection so the UI
		// renders it like any other result.
		resp := domain.SearchResponse{Errors: []string{"input: query is required"}}
		resp.EnsureShape()
		WriteJSON(w, http.StatusBadRequest, resp)
		return
	}

	resp := d.Searcher.Search(r.Context(), req)

	d.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), "search_completed", map[string]any{
		"q":       resp.Q,
		"count":   len(resp.Prospects),
		"cached":  resp.Cached,
		"sources": resp.Sources,
	}))

	writeJSON(w, resp)
}
