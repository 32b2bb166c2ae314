// Package jobs implements the daily ingest, quiz, and weekly digest
// pipelines and the clock that drives them.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samachar-app/samachar/internal/classify"
	"github.com/samachar-app/samachar/internal/database"
	"github.com/samachar-app/samachar/internal/dateutil"
	"github.com/samachar-app/samachar/internal/extract"
	"github.com/samachar-app/samachar/internal/models"
	"github.com/samachar-app/samachar/internal/similarity"
)

const (
	// retentionDays is how long summaries live before the sweep
	// removes them. Bookmarked summaries are exempt.
	retentionDays = 7

	// MaxPersistedPerDay caps how many summaries one ingest run stores.
	MaxPersistedPerDay = 100

	// MinArticleChars is the floor on extracted article text. Shorter
	// pages are navigation shells or teasers, not articles.
	MinArticleChars = 120

	// MinSummaryChars is the floor on a usable model summary.
	MinSummaryChars = 50

	// dupThreshold and dupNGramSize tune the headline near-duplicate
	// check. The threshold must stay high enough that short distinct
	// headlines sharing a few words survive; only lightly reworded
	// versions of the same headline should cross it.
	dupThreshold = 0.7
	dupNGramSize = 3
)

// Collector gathers candidate articles for one calendar day.
type Collector interface {
	CollectForDay(ctx context.Context, day string) []models.Article
}

// PageExtractor reduces an article URL to readable text.
type PageExtractor interface {
	Extract(pageURL string) (*extract.Content, error)
}

// Summarizer condenses article text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Ingest is the daily pipeline: sweep old summaries, collect candidate
// articles, then extract, summarize, classify, and persist each one.
type Ingest struct {
	db         *database.DB
	collector  Collector
	extractor  PageExtractor
	summarizer Summarizer
	classifier *classify.Classifier
	loc        *time.Location
}

// NewIngest wires the ingest pipeline.
func NewIngest(db *database.DB, collector Collector, extractor PageExtractor, summarizer Summarizer, classifier *classify.Classifier, loc *time.Location) *Ingest {
	return &Ingest{
		db:         db,
		collector:  collector,
		extractor:  extractor,
		summarizer: summarizer,
		classifier: classifier,
		loc:        loc,
	}
}

// Run executes one ingest for the most recent completed calendar day.
// A failed retention sweep aborts the run; per-article failures only
// cost that article.
func (j *Ingest) Run(ctx context.Context, now time.Time) error {
	cutoff := dateutil.DayOf(now.AddDate(0, 0, -retentionDays), j.loc)
	deleted, err := j.db.DeleteSummariesBefore(cutoff)
	if err != nil {
		return fmt.Errorf("retention sweep: %w", err)
	}
	if deleted > 0 {
		slog.Info("Swept expired summaries", "deleted", deleted, "cutoff", cutoff)
	}

	day := dateutil.Yesterday(now, j.loc)
	candidates := j.collector.CollectForDay(ctx, day)
	slog.Info("Collected candidate articles", "day", day, "count", len(candidates))

	dedup := similarity.New(dupThreshold, dupNGramSize)
	persisted := 0
	skipped := 0
	for _, article := range candidates {
		if persisted >= MaxPersistedPerDay {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if dedup.SeenBefore(article.Title) {
			slog.Debug("Skipping near-duplicate headline", "title", article.Title)
			skipped++
			continue
		}

		summary, ok := j.processArticle(ctx, day, article)
		if !ok {
			skipped++
			continue
		}

		if err := j.db.UpsertSummary(summary); err != nil {
			slog.Error("Failed to store summary", "url", article.Link, "error", err)
			skipped++
			continue
		}
		persisted++
	}

	slog.Info("Ingest complete", "day", day, "persisted", persisted, "skipped", skipped)
	return nil
}

func (j *Ingest) processArticle(ctx context.Context, day string, article models.Article) (*models.Summary, bool) {
	content, err := j.extractor.Extract(article.Link)
	if err != nil {
		slog.Warn("Extraction failed", "url", article.Link, "error", err)
		return nil, false
	}
	if len(content.Text) < MinArticleChars {
		slog.Debug("Article text too short", "url", article.Link, "chars", len(content.Text))
		return nil, false
	}

	title := content.Title
	if title == "" {
		title = article.Title
	}

	body, err := j.summarizer.Summarize(ctx, content.Text)
	if err != nil {
		slog.Warn("Summarization failed", "url", article.Link, "error", err)
		return nil, false
	}
	if len(body) < MinSummaryChars {
		slog.Debug("Summary too short", "url", article.Link, "chars", len(body))
		return nil, false
	}

	// Tagging reads what the reader will see: the title and the summary,
	// not the full article text.
	tags := j.classifier.Classify(title + " " + body)
	if len(tags) == 0 {
		slog.Debug("No topic matched, dropping article", "url", article.Link)
		return nil, false
	}

	return &models.Summary{
		Date:      day,
		Title:     title,
		Body:      body,
		SourceURL: article.Link,
		Tags:      tags,
	}, true
}
