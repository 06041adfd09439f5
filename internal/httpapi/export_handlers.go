package httpapi

import (
	"net/http"
	"strings"

	"prospector-engine/internal/domain"
)

var csvColumns = []string{
	"title", "organization", "publishedDate", "bidDueDate", "url", "type", "source", "host",
}

// csvField flattens newlines to spaces, doubles quotes, and wraps the value
// when it contains a comma or quote.
func csvField(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	quoted := strings.Contains(s, ",") || strings.Contains(s, `"`)
	s = strings.ReplaceAll(s, `"`, `""`)
	if quoted {
		return `"` + s + `"`
	}
	return s
}

func prospectsCSV(prospects []domain.Prospect) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvColumns, ","))
	b.WriteString("\n")
	for _, p := range prospects {
		row := []string{
			csvField(p.Title),
			csvField(p.Organization),
			csvField(p.PublishedDate),
			csvField(p.BidDueDate),
			csvField(p.URL),
			csvField(p.Type),
			csvField(p.Source),
			csvField(p.Host),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func handleExportCSV(d Deps, w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil || req.Query == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "query is required")
		return
	}

	resp := d.Searcher.Search(r.Context(), req)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="unified-search.csv"`)
	_, _ = w.Write([]byte(prospectsCSV(resp.Prospects)))
}
