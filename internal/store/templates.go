package store

import (
	"context"
	"database/sql"
	"time"
)

type Template struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Query   string `json:"query"`
	Preset  string `json:"preset"`
	Site    string `json:"site"`
	Recency string `json:"recency"`
}

// SeedTemplates inserts the starter templates once; existing names win.
func SeedTemplates(ctx context.Context, db *sql.DB, templates []Template) error {
	now := time.Now().UTC().Format(time.RFC3339)
	for _, t := range templates {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO search_templates(name, query, preset, site, recency, created_at)
VALUES(?,?,?,?,?,?);`,
			t.Name, t.Query, t.Preset, t.Site, t.Recency, now); err != nil {
			return err
		}
	}
	return nil
}

func ListTemplates(ctx context.Context, db *sql.DB) ([]Template, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, name, query, preset, site, recency
FROM search_templates
ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Query, &t.Preset, &t.Site, &t.Recency); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DefaultTemplates are the seed rows for a fresh database.
func DefaultTemplates() []Template {
	return []Template{
		{Name: "Flammability standards", Query: "UL 94 ASTM E1354 testing", Recency: "30d"},
		{Name: "University fire labs", Query: "fire research laboratory", Preset: "universities"},
		{Name: "Government RFPs", Query: "fire safety testing RFP", Preset: "gov", Recency: "7d"},
		{Name: "Construction materials", Query: "fire rated assembly testing", Preset: "construction"},
	}
}
