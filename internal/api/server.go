package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/reasonlab/epistress/internal/config"
	"github.com/reasonlab/epistress/internal/pipeline"
	"github.com/reasonlab/epistress/internal/runner"
)

// Server is the HTTP API for the stress harness.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	llmStats     *runner.LLMStats
	llmModel     string
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. llmStats and llmModel
// may be zero when the configured runner is local.
func NewServer(orch *pipeline.Orchestrator, llmStats *runner.LLMStats, llmModel string, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		llmStats:     llmStats,
		llmModel:     llmModel,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/extract", s.handleExtract)
		r.Post("/api/compare", s.handleCompare)
		r.Post("/api/suite", s.handleSuiteRun)
		r.Get("/api/suite/{jobID}/status", s.handleSuiteStatus)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
