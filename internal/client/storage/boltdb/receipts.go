package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/commentfeed/internal/client/storage"
	"github.com/iudanet/commentfeed/internal/models"
)

// AppendReceipt reads the whole log, appends receipt and writes the log back
// in one transaction.
func (s *Storage) AppendReceipt(ctx context.Context, receipt models.SubmissionReceipt) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketReceipts)
		if bucket == nil {
			return fmt.Errorf("receipts bucket not found")
		}

		receipts, err := decodeReceipts(bucket.Get([]byte(storage.ReceiptsKey)))
		if err != nil {
			// Поврежденный журнал начинаем заново
			receipts = nil
		}
		receipts = append(receipts, receipt)

		data, err := json.Marshal(receipts)
		if err != nil {
			return fmt.Errorf("failed to marshal receipts: %w", err)
		}

		if err := bucket.Put([]byte(storage.ReceiptsKey), data); err != nil {
			return fmt.Errorf("failed to save receipts: %w", err)
		}

		return nil
	})
}

// GetReceipts returns the whole log. A missing log is empty; an undecodable
// one yields storage.ErrCorruptReceipts.
func (s *Storage) GetReceipts(ctx context.Context) ([]models.SubmissionReceipt, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var receipts []models.SubmissionReceipt
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketReceipts)
		if bucket == nil {
			return fmt.Errorf("receipts bucket not found")
		}

		var err error
		receipts, err = decodeReceipts(bucket.Get([]byte(storage.ReceiptsKey)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get receipts: %w", err)
	}

	return receipts, nil
}

func decodeReceipts(data []byte) ([]models.SubmissionReceipt, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var receipts []models.SubmissionReceipt
	if err := json.Unmarshal(data, &receipts); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrCorruptReceipts, err)
	}
	return receipts, nil
}
