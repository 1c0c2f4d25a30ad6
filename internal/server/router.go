// Package server собирает HTTP API ленты: маршруты, middleware и /metrics.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iudanet/commentfeed/internal/metrics"
	"github.com/iudanet/commentfeed/internal/server/handlers"
	"github.com/iudanet/commentfeed/internal/server/middleware"
	"github.com/iudanet/commentfeed/pkg/api"
)

// Config holds the dependencies of the HTTP surface.
type Config struct {
	Lister   handlers.ElementLister
	Engine   handlers.FeedEngine
	Gatherer prometheus.Gatherer
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	// SubmitLimiter ограничивает POST /api/v1/submissions. nil отключает ограничение.
	SubmitLimiter *middleware.RateLimiter
	Version       string
}

// NewRouter builds the API router.
//
//	GET  /api/v1/comments     rendered feed
//	POST /api/v1/submissions  local submission notice, 202
//	GET  /api/v1/download     200 when unlocked, 403 otherwise
//	GET  /api/v1/health       liveness
//	GET  /metrics             Prometheus exposition
func NewRouter(cfg Config) http.Handler {
	healthHandler := handlers.NewHealthHandler(cfg.Version, cfg.Logger)
	commentsHandler := handlers.NewCommentsHandler(cfg.Lister, cfg.Engine, cfg.Logger)

	r := mux.NewRouter()
	// middleware mux видят шаблон маршрута; на несовпавшие запросы не вызываются
	r.Use(
		middleware.LoggingWithSkip(cfg.Logger, []string{"/api/v1/health", "/metrics"}),
		middleware.MetricsMiddleware(cfg.Metrics),
	)

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	apiRouter.HandleFunc("/comments", commentsHandler.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/download", commentsHandler.Download).Methods(http.MethodGet)

	var submit http.Handler = http.HandlerFunc(commentsHandler.Submit)
	if cfg.SubmitLimiter != nil {
		submit = cfg.SubmitLimiter.Middleware(submit)
	}
	apiRouter.Handle("/submissions", submit).Methods(http.MethodPost)

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	r.NotFoundHandler = jsonStatusHandler(http.StatusNotFound, "route not found")
	r.MethodNotAllowedHandler = jsonStatusHandler(http.StatusMethodNotAllowed, "method not allowed")

	return middleware.RecoveryMiddleware(cfg.Logger)(r)
}

func jsonStatusHandler(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{
			Error:   http.StatusText(status),
			Message: message,
		})
	})
}
