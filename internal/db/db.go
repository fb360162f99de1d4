package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
    qid         TEXT PRIMARY KEY,
    label       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    gender      TEXT NOT NULL DEFAULT '',
    fetched_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS sitelinks (
    qid     TEXT NOT NULL,
    project TEXT NOT NULL,
    title   TEXT NOT NULL,
    PRIMARY KEY (qid, project)
);

CREATE TABLE IF NOT EXISTS category_articles (
    qid        TEXT NOT NULL,
    project    TEXT NOT NULL,
    title      TEXT NOT NULL,
    fetched_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    PRIMARY KEY (qid, project)
);

CREATE INDEX IF NOT EXISTS idx_sitelinks_project ON sitelinks(project);
CREATE INDEX IF NOT EXISTS idx_category_articles_project ON category_articles(project);
`

// Open opens or creates the SQLite cache database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
