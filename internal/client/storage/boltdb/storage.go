// Package boltdb реализует журнал квитанций поверх BoltDB.
package boltdb

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketReceipts = []byte("receipts")
)

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db     *bbolt.DB
	closed atomic.Bool
}

// New creates a new BoltDB storage instance.
// dbPath is the path to the BoltDB database file. lockTimeout bounds the
// wait for the file lock held by another process; zero waits forever.
func New(ctx context.Context, dbPath string, lockTimeout time.Duration) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	// Инициализируем buckets
	if err := storage.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil || !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketReceipts); err != nil {
			return fmt.Errorf("failed to create receipts bucket: %w", err)
		}
		return nil
	})
}
