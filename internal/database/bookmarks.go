package database

import (
	"fmt"

	"github.com/samachar-app/samachar/internal/models"
)

// AddBookmark pins a summary. Adding an existing bookmark is a no-op.
func (db *DB) AddBookmark(summaryID int64) error {
	_, err := db.conn.Exec(`
		INSERT INTO bookmarks (summary_id) VALUES (?)
		ON CONFLICT(summary_id) DO NOTHING`, summaryID)
	if err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

// RemoveBookmark unpins a summary.
func (db *DB) RemoveBookmark(summaryID int64) error {
	_, err := db.conn.Exec(`DELETE FROM bookmarks WHERE summary_id = ?`, summaryID)
	return err
}

// ListBookmarks returns all bookmarks, newest first.
func (db *DB) ListBookmarks() ([]models.Bookmark, error) {
	rows, err := db.conn.Query(`
		SELECT id, summary_id, created_at FROM bookmarks ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		var b models.Bookmark
		var createdAt string
		if err := rows.Scan(&b.ID, &b.SummaryID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		b.CreatedAt, _ = parseTime(createdAt)
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}
