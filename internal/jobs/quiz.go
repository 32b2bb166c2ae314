package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samachar-app/samachar/internal/database"
	"github.com/samachar-app/samachar/internal/dateutil"
	"github.com/samachar-app/samachar/internal/models"
)

const (
	// questionsPerSummary is how many questions each summary yields.
	questionsPerSummary = 2

	// maxQuizSummaries caps how many of the day's summaries feed the quiz.
	maxQuizSummaries = 50
)

// QuestionGenerator turns one summary into multiple-choice questions.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, summary string, count int) ([]models.QuizQuestion, error)
}

// QuizJob builds the daily question batch from the day's summaries.
type QuizJob struct {
	db        *database.DB
	generator QuestionGenerator
	loc       *time.Location
}

// NewQuizJob wires the quiz pipeline.
func NewQuizJob(db *database.DB, generator QuestionGenerator, loc *time.Location) *QuizJob {
	return &QuizJob{db: db, generator: generator, loc: loc}
}

// Run regenerates the quiz for the most recent completed calendar day.
// A summary whose batch fails generation or validation contributes no
// questions; the rest of the day still gets a quiz. A day with no
// summaries, or no valid questions, stores nothing.
func (j *QuizJob) Run(ctx context.Context, now time.Time) error {
	day := dateutil.Yesterday(now, j.loc)

	if err := j.db.DeleteQuizForDate(day); err != nil {
		return fmt.Errorf("clear existing quiz: %w", err)
	}

	summaries, err := j.db.SummariesByDate(day, maxQuizSummaries)
	if err != nil {
		return fmt.Errorf("load summaries: %w", err)
	}
	if len(summaries) == 0 {
		slog.Info("No summaries for quiz day, skipping", "day", day)
		return nil
	}

	var questions []models.QuizQuestion
	failed := 0
	for _, s := range summaries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		batch, err := j.generator.GenerateQuestions(ctx, s.Body, questionsPerSummary)
		if err != nil {
			slog.Warn("Question generation failed", "summary_id", s.ID, "error", err)
			failed++
			continue
		}
		questions = append(questions, batch...)
	}

	if len(questions) == 0 {
		slog.Warn("No valid questions generated, storing nothing", "day", day, "failed_summaries", failed)
		return nil
	}

	quiz := &models.Quiz{Date: day, Questions: questions}
	if err := j.db.CreateQuiz(quiz); err != nil {
		return fmt.Errorf("store quiz: %w", err)
	}

	slog.Info("Quiz generated", "day", day, "questions", len(questions), "failed_summaries", failed)
	return nil
}
