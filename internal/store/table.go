package store

import "database/sql"

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS saved_prospects (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  organization TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  published_date TEXT NOT NULL DEFAULT '',
  bid_due_date TEXT NOT NULL DEFAULT '',
  catalyst TEXT NOT NULL DEFAULT '',
  type TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  host TEXT NOT NULL DEFAULT '',
  score INTEGER NOT NULL DEFAULT 0,
  saved_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saved_prospects_saved_at ON saved_prospects(saved_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS search_templates (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  query TEXT NOT NULL,
  preset TEXT NOT NULL DEFAULT '',
  site TEXT NOT NULL DEFAULT '',
  recency TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}
