// Package comments содержит дедуплицированное хранилище комментариев ленты.
package comments

import (
	"sort"
	"sync"

	"github.com/iudanet/commentfeed/internal/models"
)

// Entry is a stored record together with its identity key.
type Entry struct {
	Key    string
	Record models.CommentRecord
}

// MergeResult описывает изменения, внесенные одним вызовом Merge.
type MergeResult struct {
	Added      []string // Added ключи добавленных записей
	Reconciled []string // Reconciled client timestamp'ы pending-записей, замененных подтвержденными
	Skipped    int      // Skipped пустые строки и уже известные ключи
}

// Changed reports whether the merge modified the store.
func (r MergeResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Reconciled) > 0
}

// Store представляет множество комментариев, индексированное по ключу идентичности.
// Порядок вставки не хранится: порядок отображения вычисляется из timestamp'ов.
// Запись не изменяется на месте; pending-запись может быть только заменена
// подтвержденной (reconciliation).
type Store struct {
	entries     map[string]models.CommentRecord // map[key]record
	mu          sync.RWMutex                    // мьютекс для потокобезопасности
	newestFirst bool
}

// NewStore создает пустое хранилище. newestFirst задает направление сортировки.
func NewStore(newestFirst bool) *Store {
	return &Store{
		entries:     make(map[string]models.CommentRecord),
		newestFirst: newestFirst,
	}
}

// Merge вливает строки ленты в хранилище.
// При fullReload хранилище предварительно очищается.
// Повторный Merge тех же строк ничего не меняет.
func (s *Store) Merge(rows []models.CommentRecord, fullReload bool) MergeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fullReload {
		s.entries = make(map[string]models.CommentRecord)
	}

	var res MergeResult
	for _, rec := range rows {
		// Пустые строки таблицы
		if rec.IsEmpty() {
			res.Skipped++
			continue
		}

		key := rec.Key()
		if _, exists := s.entries[key]; exists {
			res.Skipped++
			continue
		}

		// Подтвержденная строка заменяет локальное эхо с тем же client timestamp
		if rec.ClientTimestamp != "" && !rec.IsPending() {
			pendingKey := models.PendingKey(rec.ClientTimestamp)
			if _, ok := s.entries[pendingKey]; ok {
				delete(s.entries, pendingKey)
				res.Reconciled = append(res.Reconciled, rec.ClientTimestamp)
			}
		}

		s.entries[key] = rec
		res.Added = append(res.Added, key)
	}

	return res
}

// Insert добавляет одну запись, если ее ключа еще нет.
// Возвращает ключ и true, если запись была добавлена.
func (s *Store) Insert(rec models.CommentRecord) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rec.Key()
	if rec.IsEmpty() {
		return key, false
	}
	if _, exists := s.entries[key]; exists {
		return key, false
	}

	s.entries[key] = rec
	return key, true
}

// Get возвращает запись по ключу.
func (s *Store) Get(key string) (models.CommentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.entries[key]
	return rec, ok
}

// HasClientTimestamp reports whether any record, pending or confirmed,
// carries the given client timestamp.
func (s *Store) HasClientTimestamp(clientTimestamp string) bool {
	if clientTimestamp == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.entries {
		if rec.ClientTimestamp == clientTimestamp {
			return true
		}
	}
	return false
}

// Len возвращает количество записей.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Ordered returns every entry sorted by effective time. Unparsable
// timestamps sort as epoch zero; equal times are ordered by key.
func (s *Store) Ordered() []Entry {
	s.mu.RLock()
	result := make([]Entry, 0, len(s.entries))
	for key, rec := range s.entries {
		result = append(result, Entry{Key: key, Record: rec})
	}
	newestFirst := s.newestFirst
	s.mu.RUnlock()

	sortKeys := make(map[string]int64, len(result))
	for _, e := range result {
		sortKeys[e.Key] = e.Record.SortKey()
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := sortKeys[result[i].Key], sortKeys[result[j].Key]
		if a == b {
			return result[i].Key < result[j].Key
		}
		if newestFirst {
			return a > b
		}
		return a < b
	})

	return result
}
