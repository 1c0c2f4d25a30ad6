package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/commentfeed/internal/client/storage"
	"github.com/iudanet/commentfeed/internal/models"
)

var _ storage.ReceiptStore = (*Storage)(nil)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
	}

	return s, cleanup
}

func receipt(comment string) models.SubmissionReceipt {
	return models.NewSubmissionReceipt("ann", comment, "2026-10-17T10:00:00.000Z",
		time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC))
}

func TestReceipts_EmptyLog(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	receipts, err := s.GetReceipts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestReceipts_Append(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		name    string
		comment string
		wantLen int
	}{
		{name: "first append", comment: "first", wantLen: 1},
		{name: "second append", comment: "second", wantLen: 2},
		{name: "third append", comment: "third", wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.AppendReceipt(ctx, receipt(tt.comment)))

			receipts, err := s.GetReceipts(ctx)
			require.NoError(t, err)
			require.Len(t, receipts, tt.wantLen)
			assert.Equal(t, tt.comment, receipts[len(receipts)-1].Comment)
		})
	}
}

func TestReceipts_FileDatabase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "receipts.sqlite")

	s, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.AppendReceipt(ctx, receipt("persisted")))
	require.NoError(t, s.Close())

	// Миграции при повторном открытии не ломают существующие данные
	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	receipts, err := reopened.GetReceipts(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "persisted", receipts[0].Comment)
}

func TestReceipts_Corrupt(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, storage.ReceiptsKey, []byte("oops"))
	require.NoError(t, err)

	_, err = s.GetReceipts(ctx)
	assert.ErrorIs(t, err, storage.ErrCorruptReceipts)

	require.NoError(t, s.AppendReceipt(ctx, receipt("fresh")))
	receipts, err := s.GetReceipts(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
}

func TestReceipts_Closed(t *testing.T) {
	s, _ := setupTestStorage(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.GetReceipts(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
