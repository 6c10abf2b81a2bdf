// Package http serves a live preview of a lorebook project.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/metrics"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/presentation/graph"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/validator"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CompileFunc turns a loaded project into a lorebook.
type CompileFunc func(ctx context.Context, p *ports.Project) (*lorebook.Lorebook, error)

// Server recompiles the project on every request so edits show up without a
// restart. Metrics, when set, is only exposed; feeding it is up to Compile.
type Server struct {
	Loader  ports.TreeLoader
	Compile CompileFunc
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

// NewHandler creates the preview router.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.GetHealth)
	r.Get("/lorebook", s.GetLorebook)
	r.Get("/graph", s.GetGraph)
	r.Get("/validate", s.GetValidate)
	r.Get("/events", s.SubscribeEvents)
	if s.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetLorebook handles GET /lorebook with the freshly compiled JSON.
func (s *Server) GetLorebook(w http.ResponseWriter, r *http.Request) {
	_, lb, ok := s.compile(w, r)
	if !ok {
		return
	}
	data, err := lb.Marshal()
	if err != nil {
		s.fail(w, "marshal", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// GetGraph handles GET /graph with a Mermaid flowchart of the entry tree.
// Records with validation errors are flagged.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	p, lb, ok := s.compile(w, r)
	if !ok {
		return
	}
	overlay := &graph.Overlay{}
	for _, issue := range validator.Validate(lb).Issues {
		if issue.Severity == validator.SeverityError {
			overlay.Flagged = append(overlay.Flagged, issue.Entry)
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(p.Entries, overlay))
}

type issueResponse struct {
	Entry    string `json:"entry"`
	Index    int    `json:"index"`
	Field    string `json:"field"`
	Reason   string `json:"reason"`
	Severity string `json:"severity"`
}

// GetValidate handles GET /validate. Responds 422 when any issue is an error.
func (s *Server) GetValidate(w http.ResponseWriter, r *http.Request) {
	_, lb, ok := s.compile(w, r)
	if !ok {
		return
	}
	report := validator.Validate(lb)
	resp := make([]issueResponse, 0, len(report.Issues))
	for _, i := range report.Issues {
		resp = append(resp, issueResponse{
			Entry:    i.Entry,
			Index:    i.Index,
			Field:    i.Field,
			Reason:   i.Reason,
			Severity: string(i.Severity),
		})
	}
	status := http.StatusOK
	if report.Err() != nil {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

// SubscribeEvents handles GET /events (SSE). A "reload" message is sent each
// time the project source changes.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	watcher, ok := s.Loader.(ports.Watchable)
	if !ok {
		http.Error(w, "Source is not watchable", http.StatusNotImplemented)
		return
	}
	events, err := watcher.Watch(r.Context())
	if err != nil {
		s.fail(w, "watch", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected")
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}

func (s *Server) compile(w http.ResponseWriter, r *http.Request) (*ports.Project, *lorebook.Lorebook, bool) {
	p, err := s.Loader.Load(r.Context())
	if err != nil {
		s.fail(w, "load", err)
		return nil, nil, false
	}
	lb, err := s.Compile(r.Context(), p)
	if err != nil {
		s.fail(w, "compile", err)
		return nil, nil, false
	}
	return p, lb, true
}

func (s *Server) fail(w http.ResponseWriter, stage string, err error) {
	s.Logger.Error("preview failed", "stage", stage, "err", err)
	http.Error(w, fmt.Sprintf("%s error: %v", stage, err), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
