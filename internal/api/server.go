// Package api provides the HTTP server: public catalog pages, the admin console API and health.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/echoverse/echo-web/internal/ratelimit"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *Services
	router   *chi.Mux
	api      huma.API
	opts     Options
	logger   *slog.Logger
	started  time.Time
	limiter  *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, opts Options, logger *slog.Logger) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		services: services,
		router:   chi.NewRouter(),
		opts:     opts,
		logger:   logger,
		started:  time.Now(),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Echo Admin API", opts.Version)
	humaConfig.OpenAPIPath = OpenAPIPath
	humaConfig.DocsPath = ""
	humaConfig.SchemasPath = "/admin/api/schemas"
	// Envelope first so later transformers see the envelope rather than the raw body.
	humaConfig.Transformers = append([]huma.Transformer{EnvelopeTransformer}, humaConfig.Transformers...)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the handler chain.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// API exposes the huma API, mainly for OpenAPI generation.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(renderBoundary(s.logger))
	if s.opts.AdminRPS > 0 {
		s.limiter = ratelimit.New(s.opts.AdminRPS, s.opts.AdminBurst)
		s.router.Use(writeLimiter(s.limiter, s.logger))
	}
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
// chi tries static segments before parameters but backtracks to the parameter routes when a
// static branch has no match, so unknown /admin/... paths are caught explicitly and never
// reach the dynamic category and item routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerAdminRoutes()
	s.registerCatalogRoutes()

	s.router.Handle("/admin/*", http.HandlerFunc(s.handleNotFound))
	s.router.NotFound(s.handleNotFound)
}
