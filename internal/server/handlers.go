package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samachar-app/samachar/internal/dateutil"
	"github.com/samachar-app/samachar/internal/jobs"
	"github.com/samachar-app/samachar/internal/models"
)

const defaultSummaryLimit = 100

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]string{"status": "ok", "version": s.version})
}

// --- Job triggers ---

func (s *Server) handleTriggerIngest(w http.ResponseWriter, r *http.Request) {
	s.triggerJob(w, r, jobs.JobIngest)
}

func (s *Server) handleTriggerQuiz(w http.ResponseWriter, r *http.Request) {
	s.triggerJob(w, r, jobs.JobQuiz)
}

func (s *Server) handleTriggerDigest(w http.ResponseWriter, r *http.Request) {
	s.triggerJob(w, r, jobs.JobDigest)
}

// triggerJob runs a job synchronously so the caller learns whether it
// worked. A failed run is the caller's problem to retry.
func (s *Server) triggerJob(w http.ResponseWriter, r *http.Request, name string) {
	slog.Info("Manual job trigger", "job", name)
	if err := s.jobs.RunNow(r.Context(), name); err != nil {
		slog.Error("Triggered job failed", "job", name, "error", err)
		jsonError(w, name+" job failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "completed", "job": name})
}

// --- Read API ---

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	day, ok := s.dayParam(w, r)
	if !ok {
		return
	}

	limit := defaultSummaryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	summaries, err := s.db.SummariesByDate(day, limit)
	if err != nil {
		slog.Error("Failed to list summaries", "date", day, "error", err)
		jsonError(w, "Failed to list summaries", http.StatusInternalServerError)
		return
	}
	if summaries == nil {
		summaries = []models.Summary{}
	}

	jsonResponse(w, map[string]any{"date": day, "summaries": summaries})
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	day, ok := s.dayParam(w, r)
	if !ok {
		return
	}

	quiz, err := s.db.QuizByDate(day)
	if errors.Is(err, sql.ErrNoRows) {
		jsonError(w, "No quiz for "+day, http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("Failed to load quiz", "date", day, "error", err)
		jsonError(w, "Failed to load quiz", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, quiz)
}

func (s *Server) handleDigestList(w http.ResponseWriter, r *http.Request) {
	digests, err := s.digests.List(r.Context())
	if err != nil {
		slog.Error("Failed to list digests", "error", err)
		jsonError(w, "Failed to list digests", http.StatusInternalServerError)
		return
	}
	if digests == nil {
		digests = []models.Digest{}
	}
	jsonResponse(w, map[string]any{"digests": digests})
}

func (s *Server) handleDigestDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !strings.HasSuffix(name, ".pdf") || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		jsonError(w, "Invalid digest name", http.StatusBadRequest)
		return
	}

	data, err := s.digests.Download(r.Context(), name)
	if err != nil {
		jsonError(w, "Digest not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Write(data)
}

// --- Bookmarks ---

func (s *Server) handleBookmarkList(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.db.ListBookmarks()
	if err != nil {
		slog.Error("Failed to list bookmarks", "error", err)
		jsonError(w, "Failed to list bookmarks", http.StatusInternalServerError)
		return
	}
	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}
	jsonResponse(w, map[string]any{"bookmarks": bookmarks})
}

func (s *Server) handleBookmarkAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SummaryID int64 `json:"summary_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SummaryID == 0 {
		jsonError(w, "summary_id is required", http.StatusBadRequest)
		return
	}

	if err := s.db.AddBookmark(req.SummaryID); err != nil {
		jsonError(w, "Unknown summary", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"status": "bookmarked", "summary_id": req.SummaryID})
}

func (s *Server) handleBookmarkRemove(w http.ResponseWriter, r *http.Request) {
	summaryID, err := strconv.ParseInt(r.PathValue("summaryID"), 10, 64)
	if err != nil {
		jsonError(w, "Invalid summary id", http.StatusBadRequest)
		return
	}

	if err := s.db.RemoveBookmark(summaryID); err != nil {
		slog.Error("Failed to remove bookmark", "summary_id", summaryID, "error", err)
		jsonError(w, "Failed to remove bookmark", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]any{"status": "removed", "summary_id": summaryID})
}

// dayParam resolves the optional date query parameter, defaulting to
// the most recent completed day.
func (s *Server) dayParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	day := r.URL.Query().Get("date")
	if day == "" {
		return dateutil.Yesterday(time.Now(), s.loc), true
	}
	if _, err := time.Parse(dateutil.DayFormat, day); err != nil {
		jsonError(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return "", false
	}
	return day, true
}

func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
