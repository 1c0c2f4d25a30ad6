// Package api содержит HTTP клиент к API запущенного commentfeed serve.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/commentfeed/pkg/api"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// Submit сообщает серверу о локальной отправке комментария
func (c *Client) Submit(ctx context.Context, req api.SubmissionRequest) (*api.SubmissionResponse, error) {
	var resp api.SubmissionResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/submissions", req, &resp); err != nil {
		return nil, fmt.Errorf("submit request failed: %w", err)
	}
	return &resp, nil
}

// ListComments получает отрисованную ленту
func (c *Client) ListComments(ctx context.Context) (*api.CommentsResponse, error) {
	var resp api.CommentsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/comments", nil, &resp); err != nil {
		return nil, fmt.Errorf("list comments request failed: %w", err)
	}
	return &resp, nil
}

// DownloadStatus reports whether the server has unlocked the download.
// A 403 answer is a valid "locked" state, not an error.
func (c *Client) DownloadStatus(ctx context.Context) (*api.DownloadResponse, error) {
	var resp api.DownloadResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/download", nil, &resp)

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusForbidden {
		return &api.DownloadResponse{Available: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("download status request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			statusErr.Message = errResp.Message
		}
		return statusErr
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
