// Package httpapi exposes the loop's last outcome over a small read-only
// API, so a dashboard or another monitor can scrape the grab job.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/swgrab/internal/domain"
	"github.com/hamed0406/swgrab/internal/grab"
)

// OutcomeSource yields the most recent completed pass; grab.Loop satisfies it.
type OutcomeSource interface {
	Last() *grab.Outcome
}

type Server struct {
	Logger *zap.Logger
	Target domain.Target
	Source OutcomeSource
}

func NewServer(l *zap.Logger, target domain.Target, src OutcomeSource) *Server {
	return &Server{Logger: l, Target: target, Source: src}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/v1/target", s.handleTarget)
	r.Get("/api/v1/state", s.handleState)

	return r
}

func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Target)
}

// handleState answers 503 until the first pass has completed, so a probe on
// this endpoint also tells whether the loop is live.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	out := s.Source.Last()
	if out == nil {
		http.Error(w, "no observation yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
