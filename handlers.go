package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"scanax/internal/analysis"
	"scanax/internal/llm"
	"scanax/internal/models"
)

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "active",
		"engine": fmt.Sprintf("%s %s", s.cfg.Engine.Provider, s.cfg.EngineModel()),
	})
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	// Nothing to analyze; answer without touching the engine.
	if strings.TrimSpace(req.Code) == "" {
		s.writeJSON(w, http.StatusOK, models.AnalyzeResponse{Errors: []models.Finding{}})
		return
	}

	findings, err := s.svc.Analyze(r.Context(), req.Code, req.APIKey)
	if err != nil {
		s.engineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, models.AnalyzeResponse{Errors: findings})
}

func (s *server) handleFix(w http.ResponseWriter, r *http.Request) {
	var req models.FixRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, validationDetail(err))
		return
	}
	if strings.TrimSpace(req.OriginalCode) == "" {
		s.writeError(w, http.StatusBadRequest, "original_code must not be empty")
		return
	}

	line := 0
	if req.VulnerabilityLine != nil {
		total := analysis.CountLines(req.OriginalCode)
		if *req.VulnerabilityLine < 1 || *req.VulnerabilityLine > total {
			s.writeError(w, http.StatusBadRequest,
				fmt.Sprintf("vulnerability_line %d is out of range for a %d-line submission", *req.VulnerabilityLine, total))
			return
		}
		line = *req.VulnerabilityLine
	}

	switch s.cfg.Fix.Mode {
	case "rewrite":
		fix, err := s.svc.FixRewrite(r.Context(), req.OriginalCode, req.VulnerabilityDescription, line, req.APIKey)
		if err != nil {
			s.engineError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, fix)
	default:
		changes, err := s.svc.FixSurgical(r.Context(), req.OriginalCode, req.VulnerabilityDescription, line, req.APIKey)
		if err != nil {
			s.engineError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, models.SurgicalFixResponse{Changes: changes})
	}
}

func (s *server) handleScanDependencies(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.svc.ScanDependencies(r.Context(), req.Code, req.APIKey)
	if err != nil {
		s.engineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// decode binds the JSON body into v, bounding the body size. A body
// that is not valid JSON is the caller's error.
func (s *server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.Analysis.MaxCodeBytes))
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return false
	}
	return true
}

// engineError maps a collaborator failure onto the response. Rate
// limiting is surfaced distinctly so the caller can back off; anything
// else (including a malformed engine payload) is a generic internal
// failure, never partially trusted.
func (s *server) engineError(w http.ResponseWriter, err error) {
	if errors.Is(err, llm.ErrRateLimited) {
		logrus.Warnf("Engine rate limited: %v", err)
		s.writeError(w, http.StatusTooManyRequests, "Engine rate limit hit. Please wait a moment.")
		return
	}
	logrus.Errorf("Engine error: %v", err)
	s.writeError(w, http.StatusInternalServerError, "Internal analysis failure.")
}

func validationDetail(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		missing := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			missing = append(missing, fe.Field())
		}
		return fmt.Sprintf("missing or invalid fields: %s", strings.Join(missing, ", "))
	}
	return "invalid request"
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, models.ErrorResponse{Detail: detail})
}
