package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionRoutes(apiRouter *mux.Router) {
	apiRouter.HandleFunc("/submissions", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"s1"}`))
	}).Methods(http.MethodPost)
}

func TestLoggingWithSkip_FeedRoutes(t *testing.T) {
	chain := newFeedChain(t, submissionRoutes)

	assert.Equal(t, http.StatusOK, chain.do(http.MethodGet, "/api/v1/health").Code)
	assert.Equal(t, http.StatusOK, chain.do(http.MethodGet, "/metrics").Code)
	assert.Empty(t, chain.logs.String(), "health and metrics polls are not logged")

	rec := chain.do(http.MethodPost, "/api/v1/submissions")
	require.Equal(t, http.StatusAccepted, rec.Code)

	lines := strings.Split(strings.TrimSpace(chain.logs.String()), "\n")
	require.Len(t, lines, 1)
	line := lines[0]
	assert.Contains(t, line, "level=INFO")
	assert.Contains(t, line, `msg="HTTP request"`)
	assert.Contains(t, line, "method=POST")
	assert.Contains(t, line, "route=/api/v1/submissions")
	assert.Contains(t, line, "remote_addr=10.0.0.7:51000")
	assert.Contains(t, line, "status=202")
	assert.Contains(t, line, "bytes_written=11")
}

func TestLoggingWithSkip_SkippedRoutesStillCounted(t *testing.T) {
	chain := newFeedChain(t, submissionRoutes)

	chain.do(http.MethodGet, "/api/v1/health")
	chain.do(http.MethodGet, "/api/v1/health")
	chain.do(http.MethodPost, "/api/v1/submissions")

	expected := `
# HELP commentfeed_http_requests_total HTTP requests by method, route and status code.
# TYPE commentfeed_http_requests_total counter
commentfeed_http_requests_total{code="200",method="GET",route="/api/v1/health"} 2
commentfeed_http_requests_total{code="202",method="POST",route="/api/v1/submissions"} 1
`
	err := testutil.GatherAndCompare(chain.registry, strings.NewReader(expected), "commentfeed_http_requests_total")
	assert.NoError(t, err)
}

func TestLoggingMiddleware_LevelFollowsStatus(t *testing.T) {
	chain := newFeedChain(t, func(apiRouter *mux.Router) {
		apiRouter.HandleFunc("/download", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}).Methods(http.MethodGet)
		apiRouter.HandleFunc("/comments/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}).Methods(http.MethodGet)
	})

	chain.do(http.MethodGet, "/api/v1/download")
	chain.do(http.MethodGet, "/api/v1/comments/_abc")

	lines := strings.Split(strings.TrimSpace(chain.logs.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=WARN")
	assert.Contains(t, lines[0], "route=/api/v1/download")
	assert.Contains(t, lines[1], "level=ERROR")
	assert.Contains(t, lines[1], "path=/api/v1/comments/_abc")
	assert.Contains(t, lines[1], "route=/api/v1/comments/{id}")
}

func TestLoggingMiddleware_UnmatchedRouteNotLogged(t *testing.T) {
	chain := newFeedChain(t, submissionRoutes)

	// mux не применяет Use к NotFound и MethodNotAllowed
	assert.Equal(t, http.StatusNotFound, chain.do(http.MethodGet, "/api/v1/unknown").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, chain.do(http.MethodGet, "/api/v1/submissions").Code)
	assert.Empty(t, chain.logs.String())
}

func TestRouteLabel_Unmatched(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/comments", nil)
	assert.Equal(t, "unmatched", routeLabel(req))
}

func TestWrapResponseWriter_Reuses(t *testing.T) {
	rw := wrapResponseWriter(httptest.NewRecorder())
	assert.Same(t, rw, wrapResponseWriter(rw))
	assert.Equal(t, http.StatusOK, rw.statusCode)
}
