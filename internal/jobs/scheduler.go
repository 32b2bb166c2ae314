package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/samachar-app/samachar/internal/database"
	"github.com/samachar-app/samachar/internal/dateutil"
)

// Job names, also the keys under which run times are recorded.
const (
	JobIngest = "ingest"
	JobQuiz   = "quiz"
	JobDigest = "digest"
)

// Runner is a job the scheduler can fire.
type Runner interface {
	Run(ctx context.Context, now time.Time) error
}

type jobSpec struct {
	runner  Runner
	at      string // "HH:MM" local wall clock
	weekday *time.Weekday
}

// Scheduler fires each job once per day at its configured local time.
// The digest job additionally only fires on its configured weekday.
type Scheduler struct {
	db    *database.DB
	loc   *time.Location
	jobs  map[string]jobSpec
	order []string
	locks sync.Map // job name -> *sync.Mutex
}

// Config sets when each job fires.
type Config struct {
	IngestAt  string
	QuizAt    string
	DigestAt  string
	DigestDay time.Weekday
}

// NewScheduler wires the three pipelines to their firing times.
func NewScheduler(db *database.DB, loc *time.Location, cfg Config, ingest, quiz, digest Runner) (*Scheduler, error) {
	for _, at := range []string{cfg.IngestAt, cfg.QuizAt, cfg.DigestAt} {
		if _, err := time.Parse("15:04", at); err != nil {
			return nil, fmt.Errorf("invalid job time %q: %w", at, err)
		}
	}

	digestDay := cfg.DigestDay
	return &Scheduler{
		db:  db,
		loc: loc,
		jobs: map[string]jobSpec{
			JobIngest: {runner: ingest, at: cfg.IngestAt},
			JobQuiz:   {runner: quiz, at: cfg.QuizAt},
			JobDigest: {runner: digest, at: cfg.DigestAt, weekday: &digestDay},
		},
		order: []string{JobIngest, JobQuiz, JobDigest},
	}, nil
}

// lockJob acquires a per-job mutex without blocking. Returns nil and
// false when the job is already running.
func (s *Scheduler) lockJob(name string) (*sync.Mutex, bool) {
	val, _ := s.locks.LoadOrStore(name, &sync.Mutex{})
	mu := val.(*sync.Mutex)
	if mu.TryLock() {
		return mu, true
	}
	return nil, false
}

// Run starts the scheduler loop. It checks for due jobs every 60 seconds.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	slog.Info("Scheduler started")

	s.tick(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx, time.Now())
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	for _, name := range s.order {
		if ctx.Err() != nil {
			return
		}
		spec := s.jobs[name]
		due, err := s.isDue(name, spec, now)
		if err != nil {
			slog.Error("Could not determine job schedule", "job", name, "error", err)
			continue
		}
		if !due {
			continue
		}
		if err := s.fire(ctx, name, spec, now); err != nil {
			slog.Error("Scheduled job failed", "job", name, "error", err)
		}
	}
}

// isDue reports whether the job's daily firing time has passed today
// without the job having run today yet.
func (s *Scheduler) isDue(name string, spec jobSpec, now time.Time) (bool, error) {
	local := now.In(s.loc)

	if spec.weekday != nil && local.Weekday() != *spec.weekday {
		return false, nil
	}

	at, err := time.Parse("15:04", spec.at)
	if err != nil {
		return false, err
	}
	if local.Hour()*60+local.Minute() < at.Hour()*60+at.Minute() {
		return false, nil
	}

	lastRun, ok, err := s.db.LastJobRun(name)
	if err != nil {
		return false, err
	}
	if ok && dateutil.SameDay(lastRun, dateutil.DayOf(now, s.loc), s.loc) {
		return false, nil
	}
	return true, nil
}

// fire runs one job under its lock, with panic recovery, and records
// the run on success.
func (s *Scheduler) fire(ctx context.Context, name string, spec jobSpec, now time.Time) (err error) {
	mu, ok := s.lockJob(name)
	if !ok {
		slog.Debug("Job already running, skipping", "job", name)
		return nil
	}
	defer mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic in job", "job", name, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic in %s job: %v", name, r)
		}
	}()

	slog.Info("Running job", "job", name)
	start := time.Now()
	if err := spec.runner.Run(ctx, now); err != nil {
		return err
	}

	if err := s.db.SetJobRun(name, now); err != nil {
		return fmt.Errorf("record %s run: %w", name, err)
	}
	slog.Info("Job complete", "job", name, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// RunNow fires one job immediately, bypassing the schedule check but
// not the per-job lock. The job's error is returned to the caller.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	spec, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	return s.fire(ctx, name, spec, time.Now())
}

// ParseWeekday resolves a weekday name like "Sunday" (case-insensitive).
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", name)
}
