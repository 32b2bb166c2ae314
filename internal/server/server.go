// Package server exposes the read API, bookmark management, and manual
// job triggers over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/samachar-app/samachar/internal/config"
	"github.com/samachar-app/samachar/internal/database"
	"github.com/samachar-app/samachar/internal/models"
)

// JobTrigger fires a named job on demand.
type JobTrigger interface {
	RunNow(ctx context.Context, name string) error
}

// DigestStore reads stored weekly digests.
type DigestStore interface {
	List(ctx context.Context) ([]models.Digest, error)
	Download(ctx context.Context, name string) ([]byte, error)
}

type Server struct {
	cfg     config.Config
	db      *database.DB
	digests DigestStore
	jobs    JobTrigger
	loc     *time.Location
	version string
	httpSrv *http.Server
}

func New(cfg config.Config, db *database.DB, digests DigestStore, jobs JobTrigger, loc *time.Location, version string) *Server {
	return &Server{
		cfg:     cfg,
		db:      db,
		digests: digests,
		jobs:    jobs,
		loc:     loc,
		version: version,
	}
}

// Start sets up routes and starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	s.routes(mux)

	handler := recoveryMiddleware(loggingMiddleware(mux))

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	slog.Info("Starting server", "addr", addr)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	// Manual job triggers
	mux.Handle("POST /jobs/ingest", s.requireAPIKey(http.HandlerFunc(s.handleTriggerIngest)))
	mux.Handle("POST /jobs/quiz", s.requireAPIKey(http.HandlerFunc(s.handleTriggerQuiz)))
	mux.Handle("POST /jobs/digest", s.requireAPIKey(http.HandlerFunc(s.handleTriggerDigest)))

	// Read API
	mux.Handle("GET /api/v1/summaries", s.requireAPIKey(http.HandlerFunc(s.handleSummaries)))
	mux.Handle("GET /api/v1/quiz", s.requireAPIKey(http.HandlerFunc(s.handleQuiz)))
	mux.Handle("GET /api/v1/digests", s.requireAPIKey(http.HandlerFunc(s.handleDigestList)))
	mux.Handle("GET /api/v1/digests/{name}", s.requireAPIKey(http.HandlerFunc(s.handleDigestDownload)))

	// Bookmarks
	mux.Handle("GET /api/v1/bookmarks", s.requireAPIKey(http.HandlerFunc(s.handleBookmarkList)))
	mux.Handle("POST /api/v1/bookmarks", s.requireAPIKey(http.HandlerFunc(s.handleBookmarkAdd)))
	mux.Handle("DELETE /api/v1/bookmarks/{summaryID}", s.requireAPIKey(http.HandlerFunc(s.handleBookmarkRemove)))
}
