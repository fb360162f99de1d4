package db

import (
	"database/sql"
	"fmt"
	"time"

	"enbyscan/internal/model"
)

// ReplaceArticles swaps the cached category membership for one project,
// inside one transaction. Other projects' rows are untouched.
func ReplaceArticles(db *sql.DB, project string, articles []model.Article) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM category_articles WHERE project = ?`, project); err != nil {
		return fmt.Errorf("failed to clear articles for %s: %w", project, err)
	}

	insert, err := tx.Prepare(`INSERT OR REPLACE INTO category_articles (qid, project, title) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare article insert: %w", err)
	}
	defer insert.Close()
	for _, a := range articles {
		if _, err := insert.Exec(a.QID, project, a.Title); err != nil {
			return fmt.Errorf("failed to insert article %s/%s: %w", a.QID, project, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit articles: %w", err)
	}
	return nil
}

// ListArticles retrieves all cached category articles across projects.
func ListArticles(db *sql.DB) ([]model.Article, error) {
	rows, err := db.Query(`SELECT qid, project, title, fetched_at FROM category_articles ORDER BY project, qid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var results []model.Article
	for rows.Next() {
		var a model.Article
		var fetchedAt string
		if err := rows.Scan(&a.QID, &a.Project, &a.Title, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
			a.FetchedAt = t
		}
		results = append(results, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}
	return results, nil
}
