package database

import (
	"database/sql"
	"errors"
	"time"
)

// SetJobRun records when a named job last completed.
func (db *DB) SetJobRun(name string, t time.Time) error {
	_, err := db.conn.Exec(`
		INSERT INTO job_runs (name, last_run) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET last_run = excluded.last_run`,
		name, t.UTC().Format("2006-01-02 15:04:05"))
	return err
}

// LastJobRun returns when a named job last completed. ok is false when
// the job has never run.
func (db *DB) LastJobRun(name string) (time.Time, bool, error) {
	var lastRun string
	err := db.conn.QueryRow(`SELECT last_run FROM job_runs WHERE name = ?`, name).Scan(&lastRun)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	t, err := parseTime(lastRun)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), true, nil
}
