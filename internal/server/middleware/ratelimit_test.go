package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/iudanet/commentfeed/pkg/api"
)

// slowRate почти не пополняет bucket за время теста
const slowRate = rate.Limit(0.001)

func TestNewRateLimiter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	limiter := NewRateLimiter(rate.Limit(2), 5, time.Minute, logger)
	defer limiter.Stop()

	assert.NotNil(t, limiter)
	assert.Equal(t, rate.Limit(2), limiter.limit)
	assert.Equal(t, 5, limiter.burst)
	assert.Equal(t, time.Minute, limiter.idleTTL)
	assert.NotNil(t, limiter.visitors)
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	limiter := NewRateLimiter(slowRate, 0, 0, logger)
	defer limiter.Stop()

	assert.Equal(t, 1, limiter.burst)
	assert.Equal(t, DefaultIdleTTL, limiter.idleTTL)
}

func TestRateLimiter_Allow(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Burst requests are allowed", func(t *testing.T) {
		limiter := NewRateLimiter(slowRate, 5, time.Minute, logger)
		defer limiter.Stop()

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("192.168.1.1"), fmt.Sprintf("request %d should be allowed", i+1))
		}
	})

	t.Run("Requests over burst are denied", func(t *testing.T) {
		limiter := NewRateLimiter(slowRate, 3, time.Minute, logger)
		defer limiter.Stop()

		key := "192.168.1.2"
		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow(key))
		}

		assert.False(t, limiter.Allow(key), "4th request should be denied")
		assert.False(t, limiter.Allow(key), "5th request should be denied")
	})

	t.Run("Keys have independent buckets", func(t *testing.T) {
		limiter := NewRateLimiter(slowRate, 2, time.Minute, logger)
		defer limiter.Stop()

		assert.True(t, limiter.Allow("192.168.1.3"))
		assert.True(t, limiter.Allow("192.168.1.3"))
		assert.False(t, limiter.Allow("192.168.1.3"))

		// Другой ключ не затронут
		assert.True(t, limiter.Allow("192.168.1.4"))
	})

	t.Run("Bucket refills over time", func(t *testing.T) {
		limiter := NewRateLimiter(rate.Limit(20), 1, time.Minute, logger)
		defer limiter.Stop()

		key := "192.168.1.5"
		assert.True(t, limiter.Allow(key))
		assert.False(t, limiter.Allow(key))

		time.Sleep(100 * time.Millisecond)

		assert.True(t, limiter.Allow(key), "token should be refilled after 1/rate")
	})
}

func TestRateLimiter_CleanupIdle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := NewRateLimiter(slowRate, 10, time.Minute, logger)
	defer limiter.Stop()

	start := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return start }

	limiter.Allow("192.168.1.1")
	limiter.Allow("192.168.1.2")

	limiter.now = func() time.Time { return start.Add(50 * time.Second) }
	limiter.Allow("192.168.1.3")

	limiter.cleanupIdle(start.Add(90 * time.Second))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.visitors, 1, "idle keys should be removed")
	assert.Contains(t, limiter.visitors, "192.168.1.3")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	limiter := NewRateLimiter(slowRate, 1, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NotPanics(t, func() {
		limiter.Stop()
		limiter.Stop()
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Requests within burst pass", func(t *testing.T) {
		handler := RateLimitMiddleware(slowRate, 3, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusAccepted, w.Code)
		}
	})

	t.Run("Request over burst gets 429", func(t *testing.T) {
		handler := RateLimitMiddleware(slowRate, 1, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))

		req1 := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", nil)
		req1.RemoteAddr = "192.168.1.2:12345"
		w1 := httptest.NewRecorder()
		handler.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusAccepted, w1.Code)

		// Тот же IP с другого порта попадает в тот же bucket
		req2 := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", nil)
		req2.RemoteAddr = "192.168.1.2:54321"
		w2 := httptest.NewRecorder()
		handler.ServeHTTP(w2, req2)

		assert.Equal(t, http.StatusTooManyRequests, w2.Code)
		assert.Equal(t, "application/json", w2.Header().Get("Content-Type"))
		assert.Equal(t, "1000", w2.Header().Get("Retry-After"))

		var errResp api.ErrorResponse
		require.NoError(t, json.NewDecoder(w2.Body).Decode(&errResp))
		assert.Equal(t, "Too Many Requests", errResp.Error)
		assert.Contains(t, errResp.Message, "rate limit exceeded")
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xRealIP    string
		expectedIP string
	}{
		{
			name:       "X-Forwarded-For with single IP",
			remoteAddr: "10.0.0.1:12345",
			xff:        "192.168.1.1",
			expectedIP: "192.168.1.1",
		},
		{
			name:       "X-Forwarded-For with multiple IPs",
			remoteAddr: "10.0.0.1:12345",
			xff:        "192.168.1.1, 10.0.0.2, 10.0.0.3",
			expectedIP: "192.168.1.1", // Первый IP
		},
		{
			name:       "X-Real-IP when X-Forwarded-For is empty",
			remoteAddr: "10.0.0.1:12345",
			xRealIP:    "192.168.2.1",
			expectedIP: "192.168.2.1",
		},
		{
			name:       "RemoteAddr without port when headers are empty",
			remoteAddr: "192.168.3.1:54321",
			expectedIP: "192.168.3.1",
		},
		{
			name:       "RemoteAddr without port kept as is",
			remoteAddr: "192.168.3.2",
			expectedIP: "192.168.3.2",
		},
		{
			name:       "X-Forwarded-For takes precedence over X-Real-IP",
			remoteAddr: "10.0.0.1:12345",
			xff:        "192.168.1.1",
			xRealIP:    "192.168.2.1",
			expectedIP: "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}

			assert.Equal(t, tt.expectedIP, getClientIP(req))
		})
	}
}

func TestRateLimitMiddleware_LogsExceededRequests(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	handler := RateLimitMiddleware(slowRate, 1, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Первый запрос проходит
	req1 := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", nil)
	req1.RemoteAddr = "192.168.1.1:12345"
	handler.ServeHTTP(httptest.NewRecorder(), req1)

	// Второй запрос блокируется и логируется
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", nil)
	req2.RemoteAddr = "192.168.1.1:12345"
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusTooManyRequests, w2.Code)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "Rate limit exceeded")
	assert.Contains(t, logOutput, "192.168.1.1")
	assert.Contains(t, logOutput, "/api/v1/submissions")
	assert.Contains(t, logOutput, "POST")
}
