package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/iudanet/commentfeed/pkg/api"
)

// DefaultIdleTTL время, после которого неактивный клиент забывается
const DefaultIdleTTL = 10 * time.Minute

// RateLimiter ограничивает частоту запросов по ключу (обычно IP адрес).
// Каждому ключу выделяется свой token bucket из golang.org/x/time/rate.
type RateLimiter struct {
	visitors map[string]*visitor
	logger   *slog.Logger
	stopC    chan struct{}
	now      func() time.Time
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	stopOnce sync.Once
	mu       sync.Mutex
}

type visitor struct {
	lastSeen time.Time
	limiter  *rate.Limiter
}

// NewRateLimiter создает новый rate limiter
// limit - устойчивая частота запросов в секунду, burst - размер всплеска
// idleTTL - через сколько неактивный ключ удаляется из памяти
func NewRateLimiter(limit rate.Limit, burst int, idleTTL time.Duration, logger *slog.Logger) *RateLimiter {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	if burst < 1 {
		burst = 1
	}

	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		idleTTL:  idleTTL,
		logger:   logger,
		now:      time.Now,
		stopC:    make(chan struct{}),
	}

	// Запускаем периодическую очистку неактивных ключей
	go rl.cleanup()

	return rl
}

// cleanup периодически удаляет неактивные ключи для экономии памяти
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupIdle(rl.now())
		case <-rl.stopC:
			return
		}
	}
}

// cleanupIdle удаляет ключи, не использовавшиеся дольше idleTTL
func (rl *RateLimiter) cleanupIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.visitors, key)
		}
	}
}

// Stop останавливает cleanup goroutine. Повторный вызов безопасен.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopC)
	})
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// retryAfter возвращает подсказку клиенту в секундах
func (rl *RateLimiter) retryAfter() string {
	if rl.limit <= 0 || rl.limit == rate.Inf {
		return "60"
	}
	return strconv.Itoa(int(math.Ceil(1 / float64(rl.limit))))
}

// Middleware возвращает http middleware, отклоняющий запросы сверх лимита с 429
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Используем IP адрес как ключ
		key := getClientIP(r)

		if !rl.Allow(key) {
			rl.logger.Warn("Rate limit exceeded",
				"ip", key,
				"method", r.Method,
				"path", r.URL.Path,
			)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", rl.retryAfter())
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{
				Error:   http.StatusText(http.StatusTooManyRequests),
				Message: "rate limit exceeded, please try again later",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware создает middleware для ограничения частоты запросов
// Лимитер живет столько же, сколько процесс. Если нужен Stop, используйте NewRateLimiter.
func RateLimitMiddleware(limit rate.Limit, burst int, logger *slog.Logger) func(http.Handler) http.Handler {
	return NewRateLimiter(limit, burst, DefaultIdleTTL, logger).Middleware
}

// getClientIP извлекает IP адрес клиента из запроса
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси
func getClientIP(r *http.Request) string {
	// Проверяем X-Forwarded-For (для прокси/load balancers)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Берем первый IP из списка (реальный клиент)
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	// Проверяем X-Real-IP
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr без порта: иначе каждое соединение получит свой bucket
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
