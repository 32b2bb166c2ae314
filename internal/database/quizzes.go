package database

import (
	"encoding/json"
	"fmt"

	"github.com/samachar-app/samachar/internal/models"
)

// CreateQuiz stores the question batch for a day. The day must not
// already have a quiz; callers clear it first with DeleteQuizForDate.
func (db *DB) CreateQuiz(q *models.Quiz) error {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	result, err := db.conn.Exec(`INSERT INTO quizzes (date, questions) VALUES (?, ?)`,
		q.Date, string(questions))
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	q.ID = id
	return nil
}

// DeleteQuizForDate removes any stored quiz for the given day.
func (db *DB) DeleteQuizForDate(date string) error {
	_, err := db.conn.Exec(`DELETE FROM quizzes WHERE date = ?`, date)
	return err
}

// QuizByDate fetches the quiz stored for one day. It returns
// sql.ErrNoRows when the day has no quiz.
func (db *DB) QuizByDate(date string) (*models.Quiz, error) {
	var q models.Quiz
	var questions, createdAt string

	err := db.conn.QueryRow(`
		SELECT id, date, questions, created_at FROM quizzes WHERE date = ?`, date).
		Scan(&q.ID, &q.Date, &questions, &createdAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(questions), &q.Questions); err != nil {
		return nil, fmt.Errorf("parse questions for quiz %d: %w", q.ID, err)
	}
	q.CreatedAt, _ = parseTime(createdAt)
	return &q, nil
}
