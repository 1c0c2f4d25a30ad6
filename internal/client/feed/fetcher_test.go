package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleCSV = "Timestamp,client_timestamp,name,comment,blocked\n10/17/2026 10:00:00,T1,ann,hi,\n"

func TestFetcher_Direct(t *testing.T) {
	var relayHits atomic.Int32
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		relayHits.Add(1)
	}))
	defer relay.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	f := NewFetcher(Config{FeedURL: server.URL + "/pub?output=csv", RelayURL: relay.URL + "/?url="}, setupTestLogger())

	resp, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, resp.Body)
	assert.False(t, resp.ViaRelay)
	assert.Equal(t, int32(0), relayHits.Load())
}

func TestFetcher_FallsBackToRelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	feedURL := server.URL + "/pub?output=csv&gid=0"

	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// relay получает исходный адрес целиком в параметре url
		assert.Equal(t, feedURL, r.URL.Query().Get("url"))
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer relay.Close()

	f := NewFetcher(Config{FeedURL: feedURL, RelayURL: relay.URL + "/?url="}, setupTestLogger())
	assert.Equal(t, relay.URL+"/?url="+url.QueryEscape(feedURL), f.RelayRequestURL())

	resp, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.ViaRelay)
	assert.Equal(t, sampleCSV, resp.Body)
}

func TestFetcher_RelayAlsoFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer relay.Close()

	f := NewFetcher(Config{FeedURL: server.URL, RelayURL: relay.URL + "/?url="}, setupTestLogger())

	_, err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestFetcher_NoRelayConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(Config{FeedURL: server.URL}, setupTestLogger())

	_, err := f.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetcher_RejectsHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("\n  <!DOCTYPE html><html>sign in</html>"))
	}))
	defer server.Close()

	f := NewFetcher(Config{FeedURL: server.URL}, setupTestLogger())

	_, err := f.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFormat)
}

func TestFetcher_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	f := NewFetcher(Config{FeedURL: server.URL, Rate: 1, Burst: 1, Timeout: time.Second}, setupTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat(sampleCSV))
	assert.NoError(t, CheckFormat(""))
	assert.ErrorIs(t, CheckFormat("  <html>"), ErrFormat)
}
