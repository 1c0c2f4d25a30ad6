package middleware

import (
	"net/http"
	"time"

	"github.com/iudanet/commentfeed/internal/metrics"
)

// MetricsMiddleware считает HTTP запросы по шаблону маршрута и статусу.
// Должен подключаться через mux.Router.Use, иначе маршрут неизвестен.
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			m.ObserveRequest(r.Method, routeLabel(r), wrapped.statusCode, time.Since(start))
		})
	}
}
