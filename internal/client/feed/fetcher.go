// Package feed загружает CSV-экспорт опубликованной таблицы.
package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Response is the body of a successful fetch.
type Response struct {
	Body     string
	ViaRelay bool
}

// Config описывает параметры загрузчика ленты.
type Config struct {
	FeedURL  string        // FeedURL адрес CSV-экспорта
	RelayURL string        // RelayURL префикс relay, к нему дописывается экранированный FeedURL
	Timeout  time.Duration // Timeout таймаут одного HTTP запроса
	Rate     float64       // Rate запросов в секунду, 0 отключает ограничение
	Burst    int
}

// Fetcher загружает текст ленты: сначала напрямую, при ошибке один раз через relay.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	feedURL    string
	relayURL   string
}

// NewFetcher создает новый загрузчик ленты
func NewFetcher(cfg Config, logger *slog.Logger) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.Rate > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}

	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		logger:     logger,
		feedURL:    cfg.FeedURL,
		relayURL:   cfg.RelayURL,
	}
}

// Fetch downloads the feed. A transport failure or non-2xx status on the
// direct request is retried exactly once through the relay. The body is
// checked with CheckFormat before it is returned.
func (f *Fetcher) Fetch(ctx context.Context) (*Response, error) {
	body, err := f.get(ctx, f.feedURL)
	viaRelay := false
	if err != nil {
		if f.relayURL == "" {
			return nil, fmt.Errorf("%w: %w", ErrTransport, err)
		}

		f.logger.Warn("Direct feed fetch failed, retrying via relay", "error", err)

		body, err = f.get(ctx, f.RelayRequestURL())
		if err != nil {
			return nil, fmt.Errorf("%w: relay: %w", ErrTransport, err)
		}
		viaRelay = true
	}

	if err := CheckFormat(body); err != nil {
		return nil, err
	}

	return &Response{Body: body, ViaRelay: viaRelay}, nil
}

// RelayRequestURL returns the relay address for the configured feed.
func (f *Fetcher) RelayRequestURL() string {
	return f.relayURL + url.QueryEscape(f.feedURL)
}

// CheckFormat rejects text that looks like an HTML page instead of CSV.
func CheckFormat(text string) error {
	if strings.HasPrefix(strings.TrimSpace(text), "<") {
		return ErrFormat
	}
	return nil
}

func (f *Fetcher) get(ctx context.Context, target string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(data), nil
}
