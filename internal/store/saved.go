package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"prospector-engine/internal/domain"
)

// SaveProspect upserts one prospect into the saved list. Saving the same
// record twice refreshes it rather than duplicating it.
func SaveProspect(ctx context.Context, db *sql.DB, p domain.Prospect) error {
	if p.ID == "" {
		return errors.New("missing prospect id")
	}

	_, err := db.ExecContext(ctx, `
INSERT INTO saved_prospects(id, title, url, organization, location, published_date, bid_due_date, catalyst, type, source, host, score, saved_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  title = excluded.title,
  url = excluded.url,
  organization = excluded.organization,
  location = excluded.location,
  published_date = excluded.published_date,
  bid_due_date = excluded.bid_due_date,
  catalyst = excluded.catalyst,
  type = excluded.type,
  source = excluded.source,
  host = excluded.host,
  score = excluded.score,
  saved_at = excluded.saved_at;`,
		p.ID, p.Title, p.URL, p.Organization, p.Location, p.PublishedDate,
		p.BidDueDate, p.Catalyst, p.Type, p.Source, p.Host, p.Score,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func ListSavedProspects(ctx context.Context, db *sql.DB, limit int) ([]domain.Prospect, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, title, url, organization, location, published_date, bid_due_date, catalyst, type, source, host, score
FROM saved_prospects
ORDER BY saved_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Prospect
	for rows.Next() {
		var p domain.Prospect
		if err := rows.Scan(&p.ID, &p.Title, &p.URL, &p.Organization, &p.Location,
			&p.PublishedDate, &p.BidDueDate, &p.Catalyst, &p.Type, &p.Source, &p.Host, &p.Score); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func DeleteSavedProspect(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM saved_prospects WHERE id = ?;`, id)
	return err
}
