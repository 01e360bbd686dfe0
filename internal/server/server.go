package server

import (
	"log/slog"
	"net/http"

	"greenlens/internal/monitor"
	"greenlens/internal/usecase"
)

// Server exposes the ingestion and question-answering pipelines over HTTP.
// It owns one long-lived index handle for its lifetime; the use cases it
// carries share that handle.
type Server struct {
	ingest     *usecase.IngestUseCase
	answer     *usecase.AnswerUseCase
	live       *monitor.LiveMonitor
	docsDir    string
	reportsDir string
	log        *slog.Logger
}

func New(
	ingest *usecase.IngestUseCase,
	answer *usecase.AnswerUseCase,
	live *monitor.LiveMonitor,
	docsDir, reportsDir string,
	log *slog.Logger,
) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		ingest:     ingest,
		answer:     answer,
		live:       live,
		docsDir:    docsDir,
		reportsDir: reportsDir,
		log:        log,
	}
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ingest", s.handleIngest)
	mux.HandleFunc("/ask", s.handleAsk)
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/report", s.handleReport)
	return corsMiddleware(mux)
}

func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("greenlens API listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// corsMiddleware allows any origin; the frontend is served from a
// different origin in every deployment.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
