package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/samachar-app/samachar/internal/models"
)

type fakeStore struct {
	digests  []models.Digest
	listErr  error
	uploaded map[string][]byte
	removed  []string
}

func (f *fakeStore) Upload(ctx context.Context, name string, data []byte) error {
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[name] = data
	return nil
}

func (f *fakeStore) List(ctx context.Context) ([]models.Digest, error) {
	return f.digests, f.listErr
}

func (f *fakeStore) Remove(ctx context.Context, name string) error {
	f.removed = append(f.removed, name)
	return nil
}

type fakeOverview struct {
	text string
	err  error
}

func (f *fakeOverview) SummarizeWeek(ctx context.Context, combined string) (string, error) {
	return f.text, f.err
}

func TestDigestRendersAndUploadsWeek(t *testing.T) {
	db := testDB(t)
	// In range for now = 2025-06-02: days 2025-05-26 .. 2025-06-01.
	seedSummaries(t, db, "2025-05-26", "An early-week story about parliamentary business.")
	seedSummaries(t, db, "2025-06-01", "A late-week story about monetary policy decisions.")
	// Outside the window.
	seedSummaries(t, db, "2025-05-25", "A story from the prior week.")

	store := &fakeStore{}
	job := NewDigestJob(db, &fakeOverview{text: "A week of policy activity."}, store, ist(t))
	if err := job.Run(context.Background(), testNow(t)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	const wantName = "2025-05-26_to_2025-06-01_digest.pdf"
	data, ok := store.uploaded[wantName]
	if !ok {
		t.Fatalf("digest not uploaded as %q, got %v", wantName, keys(store.uploaded))
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("uploaded object is not a PDF (starts with %q)", data[:4])
	}
}

func TestDigestSkipsWhenOverviewFails(t *testing.T) {
	db := testDB(t)
	seedSummaries(t, db, "2025-06-01", "A story about monetary policy decisions this week.")

	store := &fakeStore{}
	job := NewDigestJob(db, &fakeOverview{err: errors.New("model overloaded")}, store, ist(t))
	if err := job.Run(context.Background(), testNow(t)); err != nil {
		t.Fatalf("overview failure is a soft failure, not a run error: %v", err)
	}
	if len(store.uploaded) != 0 {
		t.Fatalf("no digest should ship without an overview, got %v", keys(store.uploaded))
	}
}

func TestDigestSkipsWhenOverviewEmpty(t *testing.T) {
	db := testDB(t)
	seedSummaries(t, db, "2025-06-01", "A story about monetary policy decisions this week.")

	store := &fakeStore{}
	job := NewDigestJob(db, &fakeOverview{text: "   "}, store, ist(t))
	if err := job.Run(context.Background(), testNow(t)); err != nil {
		t.Fatal(err)
	}
	if len(store.uploaded) != 0 {
		t.Fatalf("blank overview should abort the digest, got %v", keys(store.uploaded))
	}
}

func TestDigestSkipsEmptyWeek(t *testing.T) {
	db := testDB(t)

	store := &fakeStore{}
	job := NewDigestJob(db, &fakeOverview{text: "x"}, store, ist(t))
	if err := job.Run(context.Background(), testNow(t)); err != nil {
		t.Fatal(err)
	}
	if len(store.uploaded) != 0 {
		t.Fatalf("empty week should produce no digest, got %v", keys(store.uploaded))
	}
}

func TestDigestSweepsExpiredObjects(t *testing.T) {
	db := testDB(t)
	now := testNow(t)

	store := &fakeStore{digests: []models.Digest{
		{Name: "ancient_digest.pdf", CreatedAt: now.AddDate(0, 0, -40)},
		{Name: "recent_digest.pdf", CreatedAt: now.AddDate(0, 0, -5)},
	}}
	job := NewDigestJob(db, &fakeOverview{text: "x"}, store, ist(t))
	if err := job.Run(context.Background(), now); err != nil {
		t.Fatal(err)
	}

	if len(store.removed) != 1 || store.removed[0] != "ancient_digest.pdf" {
		t.Errorf("removed = %v, want only the 40-day-old digest", store.removed)
	}
}

func TestDigestToleratesSweepListFailure(t *testing.T) {
	db := testDB(t)
	seedSummaries(t, db, "2025-06-01", "A story about monetary policy decisions this week.")

	store := &fakeStore{listErr: errors.New("bucket unreachable")}
	job := NewDigestJob(db, &fakeOverview{text: "x"}, store, ist(t))
	if err := job.Run(context.Background(), testNow(t)); err != nil {
		t.Fatalf("sweep failure should not block the digest: %v", err)
	}
	if len(store.uploaded) != 1 {
		t.Fatal("digest was not uploaded")
	}
}

func TestAsciiSafe(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"café society", "cafe society"},
		{"naïve résumé", "naive resume"},
		{"plain ascii", "plain ascii"},
		{"₹500 crore", "500 crore"},
		{"line\nbreak", "line\nbreak"},
	}
	for _, tt := range tests {
		if got := asciiSafe(tt.in); got != tt.want {
			t.Errorf("asciiSafe(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func keys(m map[string][]byte) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}
