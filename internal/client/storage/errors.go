package storage

import "errors"

// Common client storage errors
var (
	// ErrCorruptReceipts indicates that the persisted receipt log cannot be decoded
	ErrCorruptReceipts = errors.New("receipt log is corrupt")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
