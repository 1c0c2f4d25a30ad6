package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/commentfeed/internal/client/storage"
	"github.com/iudanet/commentfeed/internal/models"
)

func receipt(comment string) models.SubmissionReceipt {
	return models.NewSubmissionReceipt("ann", comment, "2026-10-17T10:00:00.000Z",
		time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC))
}

func TestReceipts_EmptyLog(t *testing.T) {
	store := newTestStorage(t)

	receipts, err := store.GetReceipts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestReceipts_AppendPreservesOrder(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first, second := receipt("first"), receipt("second")
	require.NoError(t, store.AppendReceipt(ctx, first))
	require.NoError(t, store.AppendReceipt(ctx, second))

	receipts, err := store.GetReceipts(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, first.ID, receipts[0].ID)
	assert.Equal(t, second.ID, receipts[1].ID)
	assert.True(t, receipts[1].SubmittedAt.Equal(second.SubmittedAt))
}

func TestReceipts_SurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")
	ctx := context.Background()

	store, err := New(ctx, dbPath, time.Second)
	require.NoError(t, err)
	require.NoError(t, store.AppendReceipt(ctx, receipt("persisted")))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath, time.Second)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	receipts, err := reopened.GetReceipts(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "persisted", receipts[0].Comment)
}

func TestReceipts_Corrupt(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketReceipts).Put([]byte(storage.ReceiptsKey), []byte("{not json"))
	})
	require.NoError(t, err)

	_, err = store.GetReceipts(ctx)
	assert.ErrorIs(t, err, storage.ErrCorruptReceipts)

	// Добавление перезаписывает поврежденный журнал
	require.NoError(t, store.AppendReceipt(ctx, receipt("fresh")))
	receipts, err := store.GetReceipts(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "fresh", receipts[0].Comment)
}
