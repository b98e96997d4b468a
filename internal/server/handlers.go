package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"staffq/internal/corpus"
	"staffq/internal/domain"
	"staffq/internal/logger"
	"staffq/internal/usecase"
)

type chatRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Employees []domain.Employee `json:"employees"`
	Count     int               `json:"count"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{
		"message": "HR Resource Query Chatbot API is running!",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"employees_loaded": s.directory.Count(),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "query must not be empty")
		return
	}

	start := time.Now()
	ans := s.answerer.Answer(r.Context(), query)

	s.log.Info("answered query",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("query", logger.Truncate(query, 80)),
		zap.Int("matches", len(ans.Shortlist)),
		zap.Float64("confidence", ans.Confidence),
		zap.String("source", ans.Source),
		zap.Duration("duration", time.Since(start)))

	_ = writeJSON(w, http.StatusOK, usecase.NewAnswerResponse(ans))
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, s.directory.All())
}

func (s *Server) handleSearchEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter corpus.Filter
	if skills := strings.TrimSpace(q.Get("skills")); skills != "" {
		filter.Skills = strings.Split(skills, ",")
	}
	if raw := strings.TrimSpace(q.Get("min_experience")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "min_experience must be an integer")
			return
		}
		filter.MinExperience = n
	}
	filter.Availability = strings.TrimSpace(q.Get("availability"))
	filter.Department = strings.TrimSpace(q.Get("department"))

	matched := s.directory.Search(filter)
	_ = writeJSON(w, http.StatusOK, searchResponse{
		Employees: matched,
		Count:     len(matched),
	})
}
