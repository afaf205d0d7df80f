package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/resumatch/resumatch/internal/config"
	"github.com/resumatch/resumatch/internal/match"
	"github.com/resumatch/resumatch/internal/pipeline"
)

// Server is the HTTP API server for resumatch.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	postings     *PostingStore
	log          *slog.Logger
	cfg          config.Config

	// Match rankings are cached per résumé; the whole cache is discarded
	// when the posting set changes.
	matchMu sync.Mutex
	ranker  *match.Ranker
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		postings:     NewPostingStore(),
		ranker:       match.NewRanker(),
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

		r.Post("/api/resumes", s.handleUploadResume)
		r.Get("/api/resumes/{jobID}", s.handleResumeStatus)
		r.Post("/api/resumes/sync", s.handleResumeSync)

		r.Post("/api/postings/fetch", s.handleFetchPostings)
		r.Get("/api/postings", s.handleListPostings)

		r.Post("/api/match", s.handleMatch)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
