package models

import (
	"strings"
	"time"
)

// UnknownKey is the identity key of a record that carries neither a server
// nor a client timestamp.
const UnknownKey = "_unknown"

// CommentRecord представляет один комментарий ленты.
// Запись либо подтверждена сервером (ServerTimestamp не пустой),
// либо ожидает подтверждения (pending) и идентифицируется только ClientTimestamp.
type CommentRecord struct {
	Name            string `json:"name"`             // Name имя автора
	Comment         string `json:"comment"`          // Comment текст комментария
	ServerTimestamp string `json:"server_timestamp"` // ServerTimestamp время публикации, присвоенное таблицей
	ClientTimestamp string `json:"client_timestamp"` // ClientTimestamp идентификатор отправки, сгенерированный клиентом
	Blocked         bool   `json:"blocked"`          // Blocked скрыт модератором
}

// CommentKey derives the identity key for a server/client timestamp pair.
func CommentKey(serverTimestamp, clientTimestamp string) string {
	if serverTimestamp != "" {
		return serverTimestamp + "_" + clientTimestamp
	}
	return PendingKey(clientTimestamp)
}

// PendingKey returns the key a pending (unconfirmed) record is stored under.
func PendingKey(clientTimestamp string) string {
	if clientTimestamp == "" {
		return UnknownKey
	}
	return "_" + clientTimestamp
}

// Key returns the record's identity key.
func (r CommentRecord) Key() string {
	return CommentKey(r.ServerTimestamp, r.ClientTimestamp)
}

// IsPending reports whether the record has not been confirmed by the feed yet.
func (r CommentRecord) IsPending() bool {
	return r.ServerTimestamp == ""
}

// IsEmpty reports whether the record has neither a name nor a comment.
// Such rows are spreadsheet padding and never reach the store.
func (r CommentRecord) IsEmpty() bool {
	return r.Name == "" && r.Comment == ""
}

// EffectiveTimestamp returns the timestamp the record is ordered by.
func (r CommentRecord) EffectiveTimestamp() string {
	if r.ServerTimestamp != "" {
		return r.ServerTimestamp
	}
	return r.ClientTimestamp
}

// SortKey returns the effective time in Unix milliseconds.
// Unparsable or missing timestamps sort as epoch zero.
func (r CommentRecord) SortKey() int64 {
	t, ok := ParseTimestamp(r.EffectiveTimestamp())
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

// timestampLayouts перечисляет форматы, которые встречаются в ленте:
// ISO-8601 от клиента (toISOString) и локальный формат Google Sheets.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"2.1.2006 15:04:05",
	"2.1.2006",
}

// ParseTimestamp parses a feed or client timestamp. Layouts without a zone
// are interpreted in the local time zone.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatClientTimestamp formats t the way browsers format Date.toISOString.
func FormatClientTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
