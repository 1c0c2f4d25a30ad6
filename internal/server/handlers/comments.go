package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/commentfeed/internal/client/render"
	"github.com/iudanet/commentfeed/internal/models"
	"github.com/iudanet/commentfeed/pkg/api"
)

// maxSubmissionBytes ограничивает тело запроса отправки
const maxSubmissionBytes = 64 << 10

// ElementLister возвращает текущий отрисованный список
//
//go:generate moq -out handlers_mock.go . ElementLister FeedEngine
type ElementLister interface {
	Elements() []render.Element
}

// FeedEngine is the part of the sync engine the HTTP surface talks to.
type FeedEngine interface {
	OnLocalSubmit(ctx context.Context, name, comment, clientTimestamp string) models.SubmissionReceipt
	DownloadAvailable() bool
	HasRecentSubmission(ctx context.Context) bool
}

// CommentsHandler обрабатывает запросы к ленте комментариев
type CommentsHandler struct {
	lister ElementLister
	engine FeedEngine
	logger *slog.Logger
}

// NewCommentsHandler создает новый handler ленты
func NewCommentsHandler(lister ElementLister, engine FeedEngine, logger *slog.Logger) *CommentsHandler {
	return &CommentsHandler{
		lister: lister,
		engine: engine,
		logger: logger,
	}
}

// List обрабатывает GET /api/v1/comments
// Возвращает отрисованный список: заблокированные комментарии не попадают в ответ.
func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	elements := h.lister.Elements()

	resp := api.CommentsResponse{
		Comments: make([]api.Comment, 0, len(elements)),
		Count:    len(elements),
	}
	for _, el := range elements {
		resp.Comments = append(resp.Comments, api.Comment{
			ID:              el.ID,
			Key:             el.Key,
			Name:            el.Record.Name,
			Comment:         el.Record.Comment,
			ServerTimestamp: el.Record.ServerTimestamp,
			ClientTimestamp: el.Record.ClientTimestamp,
			Pending:         el.Record.IsPending(),
		})
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// Submit обрабатывает POST /api/v1/submissions
// Сообщает движку о завершенной отправке формы. Содержимое не проверяется.
func (h *CommentsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req api.SubmissionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmissionBytes)).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "invalid submission body", slog.Any("error", err))
		sendError(w, h.logger, "invalid JSON body", http.StatusBadRequest)
		return
	}

	receipt := h.engine.OnLocalSubmit(r.Context(), req.Name, req.Comment, strings.TrimSpace(req.ClientTimestamp))

	sendJSON(w, h.logger, api.SubmissionResponse{
		ID:              receipt.ID,
		ClientTimestamp: receipt.ClientTimestamp,
		SubmittedAt:     receipt.SubmittedAt,
	}, http.StatusAccepted)
}

// Download обрабатывает GET /api/v1/download
// 200 после отправки в этом процессе или недавней сохраненной отправки, иначе 403.
func (h *CommentsHandler) Download(w http.ResponseWriter, r *http.Request) {
	resp := api.DownloadResponse{
		Available:        h.engine.DownloadAvailable(),
		RecentSubmission: h.engine.HasRecentSubmission(r.Context()),
	}

	status := http.StatusOK
	if !resp.Available {
		status = http.StatusForbidden
	}

	sendJSON(w, h.logger, resp, status)
}
