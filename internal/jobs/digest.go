package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samachar-app/samachar/internal/database"
	"github.com/samachar-app/samachar/internal/dateutil"
	"github.com/samachar-app/samachar/internal/models"
)

const (
	// digestWindowDays is how many completed days one digest covers.
	digestWindowDays = 7

	// digestRetentionDays is how long generated PDFs stay in storage.
	digestRetentionDays = 30
)

// OverviewWriter produces the editorial overview for a digest.
type OverviewWriter interface {
	SummarizeWeek(ctx context.Context, combined string) (string, error)
}

// DigestStore holds generated digest PDFs.
type DigestStore interface {
	Upload(ctx context.Context, name string, data []byte) error
	List(ctx context.Context) ([]models.Digest, error)
	Remove(ctx context.Context, name string) error
}

// DigestJob renders the weekly PDF digest and prunes old ones.
type DigestJob struct {
	db       *database.DB
	overview OverviewWriter
	store    DigestStore
	loc      *time.Location
}

// NewDigestJob wires the digest pipeline.
func NewDigestJob(db *database.DB, overview OverviewWriter, store DigestStore, loc *time.Location) *DigestJob {
	return &DigestJob{db: db, overview: overview, store: store, loc: loc}
}

// Run builds one digest covering the last seven completed days and
// uploads it, then removes stored digests past their retention. A week
// with no summaries, or an overview that fails or comes back empty,
// produces no digest.
func (j *DigestJob) Run(ctx context.Context, now time.Time) error {
	j.sweepOldDigests(ctx, now)

	days := dateutil.LastNDays(now, j.loc, digestWindowDays)
	newest, oldest := days[0], days[len(days)-1]

	summaries, err := j.db.SummariesInRange(oldest, newest)
	if err != nil {
		return fmt.Errorf("load week summaries: %w", err)
	}
	if len(summaries) == 0 {
		slog.Info("No summaries this week, skipping digest", "from", oldest, "to", newest)
		return nil
	}

	combined := combineForOverview(summaries)
	overview, err := j.overview.SummarizeWeek(ctx, combined)
	if err != nil {
		slog.Warn("Weekly overview failed, skipping digest", "error", err)
		return nil
	}
	if strings.TrimSpace(overview) == "" {
		slog.Warn("Weekly overview came back empty, skipping digest")
		return nil
	}

	pdf, err := renderDigest(oldest, newest, overview, summaries)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	name := fmt.Sprintf("%s_to_%s_digest.pdf", oldest, newest)
	if err := j.store.Upload(ctx, name, pdf); err != nil {
		return fmt.Errorf("upload digest: %w", err)
	}

	slog.Info("Digest uploaded", "name", name, "stories", len(summaries), "bytes", len(pdf))
	return nil
}

func (j *DigestJob) sweepOldDigests(ctx context.Context, now time.Time) {
	digests, err := j.store.List(ctx)
	if err != nil {
		slog.Warn("Could not list stored digests for sweep", "error", err)
		return
	}

	cutoff := now.AddDate(0, 0, -digestRetentionDays)
	for _, d := range digests {
		if !d.CreatedAt.Before(cutoff) {
			continue
		}
		if err := j.store.Remove(ctx, d.Name); err != nil {
			slog.Warn("Could not remove expired digest", "name", d.Name, "error", err)
			continue
		}
		slog.Info("Removed expired digest", "name", d.Name)
	}
}

func combineForOverview(summaries []models.Summary) string {
	var sb strings.Builder
	for _, s := range summaries {
		sb.WriteString(s.Title)
		sb.WriteString(": ")
		sb.WriteString(s.Body)
		sb.WriteString("\n")
	}
	return sb.String()
}
