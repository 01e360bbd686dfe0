package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"greenlens/internal/domain"
	"greenlens/internal/report"
)

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type ingestResponse struct {
	Message string `json:"message"`
	Source  string `json:"source"`
	Pages   int    `json:"pages"`
	Chunks  int    `json:"chunks"`
}

type reportRequest struct {
	Company        string  `json:"company"`
	CO2EmissionKg  float64 `json:"co2_emission_kg"`
	RenewableShare float64 `json:"renewable_share"`
	ESGScore       float64 `json:"esg_score"`
}

type errorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "greenlens API is live",
		"endpoints": []string{"/ingest", "/ask", "/live", "/report", "/health"},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// 32MB cap on uploads.
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to parse multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file field"})
		return
	}
	defer file.Close()

	if err := os.MkdirAll(s.docsDir, 0755); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create docs directory"})
		return
	}

	path := filepath.Join(s.docsDir, filepath.Base(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save upload"})
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save upload"})
		return
	}
	dst.Close()

	s.log.Info("uploaded document saved", "path", path)

	summary, err := s.ingest.Ingest(path)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{
		Message: header.Filename + " ingested successfully",
		Source:  summary.Source,
		Pages:   summary.Pages,
		Chunks:  summary.Chunks,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing question"})
		return
	}

	answer, err := s.answer.Answer(req.Question)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, askResponse{Answer: answer})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.live == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "live monitoring disabled"})
		return
	}
	writeJSON(w, http.StatusOK, s.live.Snapshot())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Company == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing company"})
		return
	}

	rep := report.Generate(req.Company, req.CO2EmissionKg, req.RenewableShare, req.ESGScore)

	if s.reportsDir != "" {
		if _, err := report.Save(rep, s.reportsDir); err != nil {
			s.log.Warn("could not save report copy", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, rep)
}

// writeError maps the error taxonomy to HTTP statuses without collapsing
// failures into empty answers.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnreadableDocument),
		errors.Is(err, domain.ErrDimensionMismatch):
		status = http.StatusUnprocessableEntity
	}

	resp := errorResponse{Error: err.Error()}
	var stage *domain.StageError
	if errors.As(err, &stage) {
		resp.Stage = stage.Stage
	}

	s.log.Error("request failed", "stage", resp.Stage, "error", err)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
