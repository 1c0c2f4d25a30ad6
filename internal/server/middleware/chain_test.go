package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iudanet/commentfeed/internal/metrics"
)

// feedChain повторяет порядок middleware из server.NewRouter:
// recovery снаружи, логирование и метрики внутри mux, API на подроутере /api/v1.
type feedChain struct {
	handler  http.Handler
	logs     *bytes.Buffer
	registry *prometheus.Registry
}

func newFeedChain(t *testing.T, routes func(apiRouter *mux.Router)) *feedChain {
	t.Helper()

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	registry := prometheus.NewRegistry()

	r := mux.NewRouter()
	r.Use(
		LoggingWithSkip(logger, []string{"/api/v1/health", "/metrics"}),
		MetricsMiddleware(metrics.New(registry)),
	)

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}).Methods(http.MethodGet)
	routes(apiRouter)

	r.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "# no samples\n")
	}).Methods(http.MethodGet)

	return &feedChain{
		handler:  RecoveryMiddleware(logger)(r),
		logs:     logs,
		registry: registry,
	}
}

func (c *feedChain) do(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.7:51000"
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}
