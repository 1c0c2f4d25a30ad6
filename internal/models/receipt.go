package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionReceipt фиксирует успешную локальную отправку комментария.
// Используется только для восстановления optimistic echo после перезапуска
// и для проверки "недавней отправки".
type SubmissionReceipt struct {
	SubmittedAt     time.Time `json:"submitted_at"`     // SubmittedAt момент отправки
	ID              string    `json:"id"`               // ID уникальный идентификатор квитанции (UUID)
	Name            string    `json:"name"`             // Name имя автора
	Comment         string    `json:"comment"`          // Comment текст комментария
	ClientTimestamp string    `json:"client_timestamp"` // ClientTimestamp идентификатор отправки
}

// NewSubmissionReceipt creates a receipt stamped with submittedAt.
func NewSubmissionReceipt(name, comment, clientTimestamp string, submittedAt time.Time) SubmissionReceipt {
	return SubmissionReceipt{
		ID:              uuid.NewString(),
		Name:            name,
		Comment:         comment,
		ClientTimestamp: clientTimestamp,
		SubmittedAt:     submittedAt,
	}
}

// IsRecent reports whether the receipt was submitted less than window ago.
// A receipt without a submission time is never recent.
func (r SubmissionReceipt) IsRecent(now time.Time, window time.Duration) bool {
	if r.SubmittedAt.IsZero() {
		return false
	}
	return now.Sub(r.SubmittedAt) < window
}

// PendingRecord returns the optimistic record for this submission.
func (r SubmissionReceipt) PendingRecord() CommentRecord {
	return CommentRecord{
		Name:            r.Name,
		Comment:         r.Comment,
		ClientTimestamp: r.ClientTimestamp,
	}
}
