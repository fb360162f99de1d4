package db

import (
	"database/sql"
	"fmt"
	"time"

	"enbyscan/internal/model"
)

// ReplaceItems swaps the cached Wikidata items and sitelinks for a fresh
// fetch, inside one transaction.
func ReplaceItems(db *sql.DB, items []model.Item, sitelinks []model.Sitelink) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sitelinks`); err != nil {
		return fmt.Errorf("failed to clear sitelinks: %w", err)
	}

	insertItem, err := tx.Prepare(`INSERT INTO items (qid, label, description, gender) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer insertItem.Close()
	for _, it := range items {
		if _, err := insertItem.Exec(it.QID, it.Label, it.Description, it.Gender); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", it.QID, err)
		}
	}

	insertLink, err := tx.Prepare(`INSERT OR REPLACE INTO sitelinks (qid, project, title) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare sitelink insert: %w", err)
	}
	defer insertLink.Close()
	for _, sl := range sitelinks {
		if _, err := insertLink.Exec(sl.QID, sl.Project, sl.Title); err != nil {
			return fmt.Errorf("failed to insert sitelink %s/%s: %w", sl.QID, sl.Project, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit items: %w", err)
	}
	return nil
}

// ListItems retrieves all cached Wikidata items.
func ListItems(db *sql.DB) ([]model.Item, error) {
	rows, err := db.Query(`SELECT qid, label, description, gender, fetched_at FROM items ORDER BY qid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var results []model.Item
	for rows.Next() {
		var it model.Item
		var fetchedAt string
		if err := rows.Scan(&it.QID, &it.Label, &it.Description, &it.Gender, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
			it.FetchedAt = t
		}
		results = append(results, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	return results, nil
}

// ListSitelinks retrieves all cached sitelinks.
func ListSitelinks(db *sql.DB) ([]model.Sitelink, error) {
	rows, err := db.Query(`SELECT qid, project, title FROM sitelinks ORDER BY qid, project`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sitelinks: %w", err)
	}
	defer rows.Close()

	var results []model.Sitelink
	for rows.Next() {
		var sl model.Sitelink
		if err := rows.Scan(&sl.QID, &sl.Project, &sl.Title); err != nil {
			return nil, fmt.Errorf("failed to scan sitelink row: %w", err)
		}
		results = append(results, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sitelink rows: %w", err)
	}
	return results, nil
}
