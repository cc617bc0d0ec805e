package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yegors/awardsearch/internal/config"
	"github.com/yegors/awardsearch/internal/search"
	"github.com/yegors/awardsearch/pkg/logger"
)

// Router serves a finished search run over HTTP.
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router over the run results.
func NewRouter(results *search.Results, config *config.Config, logger *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(results, logger),
		middleware: NewMiddleware(logger),
		config:     config,
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		router.Get("/flights", r.handler.GetAllFlights)
		router.Get("/flights/filtered", r.handler.GetFilteredFlights)
		router.Get("/summary", r.handler.GetSummary)
	})

	return router
}
