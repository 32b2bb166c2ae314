package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/samachar-app/samachar/internal/models"
	"github.com/samachar-app/samachar/internal/taxonomy"
)

// UpsertSummary inserts a summary, or refreshes the stored row when a
// summary with the same source URL already exists.
func (db *DB) UpsertSummary(s *models.Summary) error {
	tags, err := json.Marshal(s.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO summaries (date, title, body, source_url, tags)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source_url) DO UPDATE SET
			date  = excluded.date,
			title = excluded.title,
			body  = excluded.body,
			tags  = excluded.tags`,
		s.Date, s.Title, s.Body, s.SourceURL, string(tags))
	if err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}

	return db.conn.QueryRow(`SELECT id FROM summaries WHERE source_url = ?`, s.SourceURL).Scan(&s.ID)
}

// SummariesByDate returns up to limit summaries for one calendar day,
// oldest first.
func (db *DB) SummariesByDate(date string, limit int) ([]models.Summary, error) {
	rows, err := db.conn.Query(`
		SELECT id, date, title, body, source_url, tags, created_at
		FROM summaries WHERE date = ?
		ORDER BY id ASC LIMIT ?`, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// SummariesInRange returns summaries with fromDate <= date <= toDate,
// ordered by date then insertion order.
func (db *DB) SummariesInRange(fromDate, toDate string) ([]models.Summary, error) {
	rows, err := db.conn.Query(`
		SELECT id, date, title, body, source_url, tags, created_at
		FROM summaries WHERE date >= ? AND date <= ?
		ORDER BY date ASC, id ASC`, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// DeleteSummariesBefore removes summaries older than cutoffDate.
// Bookmarked summaries are never removed. Returns how many rows went.
func (db *DB) DeleteSummariesBefore(cutoffDate string) (int64, error) {
	result, err := db.conn.Exec(`
		DELETE FROM summaries
		WHERE date < ? AND id NOT IN (SELECT summary_id FROM bookmarks)`, cutoffDate)
	if err != nil {
		return 0, fmt.Errorf("delete old summaries: %w", err)
	}
	return result.RowsAffected()
}

func scanSummaries(rows *sql.Rows) ([]models.Summary, error) {
	var summaries []models.Summary
	for rows.Next() {
		var s models.Summary
		var tags, createdAt string

		if err := rows.Scan(&s.ID, &s.Date, &s.Title, &s.Body, &s.SourceURL, &tags, &createdAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}

		if err := json.Unmarshal([]byte(tags), &s.Tags); err != nil {
			return nil, fmt.Errorf("parse tags for summary %d: %w", s.ID, err)
		}
		if s.Tags == nil {
			s.Tags = []taxonomy.Topic{}
		}
		s.CreatedAt, _ = parseTime(createdAt)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
