package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"ordbok-backend/application/ports"
	querybus "ordbok-backend/application/queries/bus"
	"ordbok-backend/interfaces/http/rest/handlers"
	"ordbok-backend/interfaces/http/rest/middleware"
	appErrors "ordbok-backend/pkg/errors"
	"ordbok-backend/pkg/observability"
)

// RouterConfig holds the HTTP-facing settings
type RouterConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	EnableMetrics  bool
	Debug          bool
	Graph          handlers.GraphLimits
}

// Router creates and configures the HTTP router
type Router struct {
	queryBus *querybus.QueryBus
	checkers []ports.HealthChecker
	metrics  *observability.Collector
	config   RouterConfig
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	queryBus *querybus.QueryBus,
	checkers []ports.HealthChecker,
	metrics *observability.Collector,
	config RouterConfig,
	logger *zap.Logger,
) *Router {
	return &Router{
		queryBus: queryBus,
		checkers: checkers,
		metrics:  metrics,
		config:   config,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.config.EnableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}

	if rt.config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.config.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	errorHandler := appErrors.NewErrorHandler(rt.logger, rt.config.Debug)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.Handle(w, r, appErrors.NewNotFoundError("route"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		notAllowed := appErrors.New(appErrors.ErrorTypeValidation, "method not allowed").
			WithDetail("method", r.Method)
		notAllowed.HTTPStatus = http.StatusMethodNotAllowed
		errorHandler.Handle(w, r, notAllowed)
	})

	// Health checks
	healthHandler := handlers.NewHealthHandler(rt.checkers, rt.logger)
	router.Get("/health", healthHandler.Health)
	router.Get("/ready", healthHandler.Ready)

	if rt.config.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		entryHandler := handlers.NewEntryHandler(rt.queryBus, errorHandler, rt.config.Graph, rt.logger)

		r.Route("/dictionaries/{dictionary}/entries/{id}", func(r chi.Router) {
			r.Get("/", entryHandler.GetEntry)
			r.Get("/relationships", entryHandler.GetRelationships)
			r.Get("/graph", entryHandler.GetGraph)
		})
	})

	return router
}
