// Package sync поддерживает локальную копию ленты комментариев: периодически
// опрашивает таблицу, сливает новые строки в хранилище и показывает
// отправленные пользователем комментарии до их появления в ленте.
package sync

import (
	"context"
	"errors"
	"log/slog"
	gosync "sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/commentfeed/internal/client/comments"
	"github.com/iudanet/commentfeed/internal/client/feed"
	"github.com/iudanet/commentfeed/internal/client/render"
	"github.com/iudanet/commentfeed/internal/client/storage"
	"github.com/iudanet/commentfeed/internal/metrics"
	"github.com/iudanet/commentfeed/internal/models"
	"github.com/iudanet/commentfeed/internal/sheet"
)

// Default timings
const (
	DefaultPollInterval    = 5 * time.Second
	DefaultSubmitPollDelay = 1500 * time.Millisecond
	DefaultRecencyWindow   = 5 * time.Minute
)

// FeedFetcher загружает текст ленты
//
//go:generate moq -out fetcher_mock.go . FeedFetcher
type FeedFetcher interface {
	Fetch(ctx context.Context) (*feed.Response, error)
}

// Options настраивает движок синхронизации. Нулевые значения заменяются значениями по умолчанию.
type Options struct {
	Now             func() time.Time // Now источник времени, для тестов
	OnUnlock        func()           // OnUnlock вызывается один раз при первой разблокировке загрузки
	PollInterval    time.Duration
	SubmitPollDelay time.Duration
	RecencyWindow   time.Duration
}

// PollResult contains poll operation results
type PollResult struct {
	Rows       int  // строк данных в ленте
	Considered int  // строк, переданных в merge
	Added      int  // новых записей
	Reconciled int  // pending-записей, замененных подтвержденными
	Skipped    int  // пустых и уже известных строк
	FullReload bool // хранилище было очищено перед merge
	ViaRelay   bool // лента получена через relay
}

// Service владеет состоянием ленты: хранилищем, счетчиком обработанных строк
// и флагом разблокировки загрузки.
type Service struct {
	fetcher  FeedFetcher
	receipts storage.ReceiptStorage
	store    *comments.Store
	view     render.View
	metrics  *metrics.Metrics
	logger   *slog.Logger
	done     chan struct{}
	opts     Options

	// mu сериализует изменение хранилища вместе с проходом отрисовки
	mu gosync.Mutex
	// число непустых строк данных из прошлого опроса (sheet.Parse отбрасывает пустые)
	lastRowCount int

	unlocked atomic.Bool

	bgMu     gosync.Mutex
	bgWG     gosync.WaitGroup
	bgClosed bool
}

// NewService creates a new sync service. view and m may be nil.
func NewService(
	fetcher FeedFetcher,
	receipts storage.ReceiptStorage,
	store *comments.Store,
	view render.View,
	m *metrics.Metrics,
	logger *slog.Logger,
	opts Options,
) *Service {
	if view == nil {
		view = render.NewList()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.SubmitPollDelay <= 0 {
		opts.SubmitPollDelay = DefaultSubmitPollDelay
	}
	if opts.RecencyWindow <= 0 {
		opts.RecencyWindow = DefaultRecencyWindow
	}

	return &Service{
		fetcher:  fetcher,
		receipts: receipts,
		store:    store,
		view:     view,
		metrics:  m,
		logger:   logger,
		opts:     opts,
		done:     make(chan struct{}),
	}
}

// Run polls the feed once, restores a recent optimistic echo and then polls
// append-only every PollInterval until ctx is cancelled. Ticks never wait
// for an outstanding poll. Poll failures are logged and retried on the next
// tick.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("Starting feed sync", "interval", s.opts.PollInterval)

	_, _ = s.PollOnce(ctx, false)
	s.RestoreRecent(ctx)

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	var inflight gosync.WaitGroup
	for {
		select {
		case <-ctx.Done():
			inflight.Wait()
			s.logger.Info("Feed sync stopped")
			return nil
		case <-ticker.C:
			inflight.Add(1)
			go func() {
				defer inflight.Done()
				_, _ = s.PollOnce(ctx, true)
			}()
		}
	}
}

// PollOnce fetches and parses the feed and merges it into the store. A full
// poll (appendOnly false) clears the store first; an append-only poll passes
// only rows beyond the previously observed row count. On error the store
// keeps its last good state.
func (s *Service) PollOnce(ctx context.Context, appendOnly bool) (*PollResult, error) {
	start := s.opts.Now()

	resp, err := s.fetcher.Fetch(ctx)
	if err != nil {
		result := metrics.ResultTransport
		if errors.Is(err, feed.ErrFormat) {
			result = metrics.ResultFormat
			s.logger.Error("Feed returned HTML instead of CSV, check that the sheet is published", "error", err)
		} else {
			s.logger.Warn("Feed poll failed", "error", err)
		}
		s.metrics.ObservePoll(result, s.opts.Now().Sub(start), false)
		return nil, err
	}

	records := sheet.Records(sheet.Parse(resp.Body))

	s.mu.Lock()
	rows := records
	if appendOnly {
		rows = nil
		if s.lastRowCount < len(records) {
			rows = records[s.lastRowCount:]
		}
	}
	s.lastRowCount = len(records)

	merged := s.store.Merge(rows, !appendOnly)
	for _, clientTimestamp := range merged.Reconciled {
		s.view.Remove(pendingElement(clientTimestamp))
	}
	if !appendOnly || merged.Changed() {
		s.renderAll()
	}
	s.mu.Unlock()

	result := &PollResult{
		Rows:       len(records),
		Considered: len(rows),
		Added:      len(merged.Added),
		Reconciled: len(merged.Reconciled),
		Skipped:    merged.Skipped,
		FullReload: !appendOnly,
		ViaRelay:   resp.ViaRelay,
	}

	s.metrics.ObservePoll(metrics.ResultOK, s.opts.Now().Sub(start), resp.ViaRelay)
	s.metrics.AddReconciliations(result.Reconciled)

	logArgs := []any{
		"rows", result.Rows,
		"added", result.Added,
		"reconciled", result.Reconciled,
		"full_reload", result.FullReload,
		"via_relay", result.ViaRelay,
	}
	if result.Added > 0 || result.Reconciled > 0 {
		s.logger.Info("Feed merged", logArgs...)
	} else {
		s.logger.Debug("Feed unchanged", logArgs...)
	}

	return result, nil
}

// OnLocalSubmit shows a just-submitted comment immediately, records a
// receipt, unlocks the download and schedules one append-only poll after
// SubmitPollDelay. An empty clientTimestamp is replaced by the current time
// in ISO-8601. Receipt storage errors are logged, not returned.
func (s *Service) OnLocalSubmit(ctx context.Context, name, comment, clientTimestamp string) models.SubmissionReceipt {
	now := s.opts.Now()
	if clientTimestamp == "" {
		clientTimestamp = models.FormatClientTimestamp(now)
	}

	receipt := models.NewSubmissionReceipt(name, comment, clientTimestamp, now)

	s.mu.Lock()
	echoed := s.echo(receipt.PendingRecord())
	s.mu.Unlock()

	s.logger.Info("Local submission", "client_timestamp", clientTimestamp, "echoed", echoed)

	if err := s.receipts.AppendReceipt(ctx, receipt); err != nil {
		s.logger.Warn("Failed to persist submission receipt", "error", err)
	}

	s.unlock()
	s.schedulePoll(ctx)

	return receipt
}

// RestoreRecent re-applies the unlock and resurrects the pending echo when
// the latest receipt is within RecencyWindow. It reports whether the latest
// receipt was recent. An unreadable log counts as empty.
func (s *Service) RestoreRecent(ctx context.Context) bool {
	latest, ok := s.latestReceipt(ctx)
	if !ok || !latest.IsRecent(s.opts.Now(), s.opts.RecencyWindow) {
		return false
	}

	s.unlock()

	s.mu.Lock()
	restored := false
	if !s.store.HasClientTimestamp(latest.ClientTimestamp) {
		restored = s.echo(latest.PendingRecord())
	}
	s.mu.Unlock()

	s.logger.Info("Recent submission found", "client_timestamp", latest.ClientTimestamp, "echo_restored", restored)

	return true
}

// HasRecentSubmission reports whether the latest receipt is within RecencyWindow.
func (s *Service) HasRecentSubmission(ctx context.Context) bool {
	latest, ok := s.latestReceipt(ctx)
	return ok && latest.IsRecent(s.opts.Now(), s.opts.RecencyWindow)
}

// DownloadAvailable reports the download-unlock flag. Once set it stays set.
func (s *Service) DownloadAvailable() bool {
	return s.unlocked.Load()
}

// Close stops scheduled polls and waits for running ones.
func (s *Service) Close() {
	s.bgMu.Lock()
	if !s.bgClosed {
		s.bgClosed = true
		close(s.done)
	}
	s.bgMu.Unlock()

	s.bgWG.Wait()
}

// echo вставляет pending-запись на ее место в списке без полной перерисовки.
// Вызывается под s.mu.
func (s *Service) echo(rec models.CommentRecord) bool {
	key, ok := s.store.Insert(rec)
	if !ok {
		return false
	}

	if el := s.view.Render(key, rec); el != nil {
		s.view.InsertAt(el, s.visibleIndex(key))
	}

	s.metrics.IncEchoes()
	return true
}

// visibleIndex возвращает позицию key среди незаблокированных записей.
func (s *Service) visibleIndex(key string) int {
	idx := 0
	for _, e := range s.store.Ordered() {
		if e.Key == key {
			break
		}
		if !e.Record.Blocked {
			idx++
		}
	}
	return idx
}

// renderAll перерисовывает весь упорядоченный список. Вызывается под s.mu.
func (s *Service) renderAll() {
	ordered := s.store.Ordered()
	elements := make([]*render.Element, 0, len(ordered))
	for _, e := range ordered {
		if el := s.view.Render(e.Key, e.Record); el != nil {
			elements = append(elements, el)
		}
	}

	s.view.Reset(elements)
	s.metrics.SetSizes(len(ordered), len(elements))
}

func (s *Service) unlock() {
	if s.unlocked.CompareAndSwap(false, true) {
		s.logger.Info("Download unlocked")
		if s.opts.OnUnlock != nil {
			s.opts.OnUnlock()
		}
	}
}

func (s *Service) latestReceipt(ctx context.Context) (models.SubmissionReceipt, bool) {
	receipts, err := s.receipts.GetReceipts(ctx)
	if err != nil {
		s.logger.Warn("Failed to read submission receipts, treating as empty", "error", err)
		return models.SubmissionReceipt{}, false
	}
	return storage.LatestReceipt(receipts)
}

// schedulePoll запускает один append-only опрос через SubmitPollDelay.
// Опрос не привязан к ctx запроса и прерывается только Close.
func (s *Service) schedulePoll(ctx context.Context) {
	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	if s.bgClosed {
		return
	}

	s.bgWG.Add(1)
	go func() {
		defer s.bgWG.Done()

		timer := time.NewTimer(s.opts.SubmitPollDelay)
		defer timer.Stop()

		select {
		case <-s.done:
			return
		case <-timer.C:
		}

		pollCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		go func() {
			select {
			case <-s.done:
				cancel()
			case <-pollCtx.Done():
			}
		}()

		_, _ = s.PollOnce(pollCtx, true)
	}()
}

func pendingElement(clientTimestamp string) *render.Element {
	key := models.PendingKey(clientTimestamp)
	return &render.Element{
		ID:              render.SafeID(key),
		Key:             key,
		ClientTimestamp: clientTimestamp,
	}
}
