// Package storage описывает долговременное хранилище клиента.
package storage

import (
	"context"
	"io"

	"github.com/iudanet/commentfeed/internal/models"
)

// ReceiptsKey is the fixed key the receipt log is stored under.
const ReceiptsKey = "user-submitted"

// ReceiptStorage определяет интерфейс журнала квитанций об отправке.
// Журнал читается целиком и целиком перезаписывается при каждом добавлении.
//
//go:generate moq -out receipts_mock.go . ReceiptStorage
type ReceiptStorage interface {
	// AppendReceipt добавляет квитанцию в конец журнала
	AppendReceipt(ctx context.Context, receipt models.SubmissionReceipt) error
	// GetReceipts возвращает весь журнал в порядке добавления
	GetReceipts(ctx context.Context) ([]models.SubmissionReceipt, error)
}

// ReceiptStore is a receipt log backed by a closable database.
type ReceiptStore interface {
	ReceiptStorage
	io.Closer
}

// LatestReceipt returns the most recently appended receipt.
func LatestReceipt(receipts []models.SubmissionReceipt) (models.SubmissionReceipt, bool) {
	if len(receipts) == 0 {
		return models.SubmissionReceipt{}, false
	}
	return receipts[len(receipts)-1], true
}
