package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"staffq/internal/corpus"
	"staffq/internal/domain"
)

// Answerer runs one query through the full pipeline.
type Answerer interface {
	Answer(ctx context.Context, query string) domain.Answer
}

// Server exposes the staffing query API over HTTP.
type Server struct {
	answerer  Answerer
	directory *corpus.Directory
	origins   []string
	log       *zap.Logger
}

// New creates a new API server.
func New(answerer Answerer, directory *corpus.Directory, corsOrigins []string, log *zap.Logger) *Server {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	return &Server{
		answerer:  answerer,
		directory: directory,
		origins:   corsOrigins,
		log:       log,
	}
}

// Router builds the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/chat", s.handleChat)
	r.Get("/employees", s.handleListEmployees)
	r.Get("/employees/search", s.handleSearchEmployees)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "endpoint not found")
	})

	return r
}
