// Package models defines the data types shared across the application.
package models

import (
	"time"

	"github.com/samachar-app/samachar/internal/taxonomy"
)

// Article is a candidate news item discovered during aggregation,
// before extraction and summarization.
type Article struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Summary is a summarized news item persisted for a calendar day.
type Summary struct {
	ID        int64            `json:"id"`
	Date      string           `json:"date"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	SourceURL string           `json:"source_url"`
	Tags      []taxonomy.Topic `json:"tags"`
	CreatedAt time.Time        `json:"created_at"`
}

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Valid reports whether the question is well formed: a non-empty
// question text, exactly four options, and a correct answer index
// within range.
func (q QuizQuestion) Valid() bool {
	if q.Question == "" {
		return false
	}
	if len(q.Options) != 4 {
		return false
	}
	return q.CorrectAnswer >= 0 && q.CorrectAnswer <= 3
}

// Quiz is the stored question batch for a calendar day.
type Quiz struct {
	ID        int64          `json:"id"`
	Date      string         `json:"date"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"created_at"`
}

// Bookmark pins a summary so retention sweeps never remove it.
type Bookmark struct {
	ID        int64     `json:"id"`
	SummaryID int64     `json:"summary_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Digest describes a stored weekly digest PDF.
type Digest struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
