package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/commentfeed/internal/client/storage"
	"github.com/iudanet/commentfeed/internal/models"
)

// AppendReceipt reads the whole log, appends receipt and writes the log back
// in one transaction.
func (s *Storage) AppendReceipt(ctx context.Context, receipt models.SubmissionReceipt) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	receipts, err := loadReceipts(ctx, tx)
	if err != nil {
		if !errors.Is(err, storage.ErrCorruptReceipts) {
			return err
		}
		// Поврежденный журнал начинаем заново
		receipts = nil
	}
	receipts = append(receipts, receipt)

	data, err := json.Marshal(receipts)
	if err != nil {
		return fmt.Errorf("failed to marshal receipts: %w", err)
	}

	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, query, storage.ReceiptsKey, data); err != nil {
		return fmt.Errorf("failed to save receipts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetReceipts returns the whole log. A missing log is empty; an undecodable
// one yields storage.ErrCorruptReceipts.
func (s *Storage) GetReceipts(ctx context.Context) ([]models.SubmissionReceipt, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	receipts, err := loadReceipts(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipts: %w", err)
	}
	return receipts, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadReceipts(ctx context.Context, q queryer) ([]models.SubmissionReceipt, error) {
	var data []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, storage.ReceiptsKey).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var receipts []models.SubmissionReceipt
	if err := json.Unmarshal(data, &receipts); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrCorruptReceipts, err)
	}
	return receipts, nil
}
