// Package render отображает упорядоченный список комментариев.
// Движок синхронизации знает только интерфейс View.
package render

import (
	"regexp"
	"sync"

	"github.com/iudanet/commentfeed/internal/models"
)

// Element is one rendered comment.
type Element struct {
	ID              string               `json:"id"`
	Key             string               `json:"key"`
	ClientTimestamp string               `json:"client_timestamp,omitempty"` // ClientTimestamp метка pending-элемента для последующего удаления
	Record          models.CommentRecord `json:"record"`
}

// View is the render bridge between the sync engine and a concrete output.
//
//go:generate moq -out view_mock.go . View
type View interface {
	// Render builds an element for rec, or returns nil when rec must not be shown.
	Render(key string, rec models.CommentRecord) *Element
	// Remove drops a previously rendered element.
	Remove(el *Element)
	// InsertAt places el at index in the current list.
	InsertAt(el *Element, index int)
	// Reset replaces the whole list.
	Reset(elements []*Element)
}

var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SafeID derives an element ID from an identity key.
func SafeID(key string) string {
	return "comment-" + unsafeIDChars.ReplaceAllString(key, "_")
}

// NewElement builds the element for a record, or nil for blocked records.
// Pending records are tagged with their client timestamp.
func NewElement(key string, rec models.CommentRecord) *Element {
	if rec.Blocked {
		return nil
	}

	el := &Element{
		ID:     SafeID(key),
		Key:    key,
		Record: rec,
	}
	if rec.IsPending() {
		el.ClientTimestamp = rec.ClientTimestamp
	}
	return el
}

// List хранит отрисованные элементы в памяти. Используется HTTP API
// и как основа терминального представления.
type List struct {
	elements []*Element
	mu       sync.RWMutex
}

// NewList создает пустой список
func NewList() *List {
	return &List{}
}

// Render implements View.
func (l *List) Render(key string, rec models.CommentRecord) *Element {
	return NewElement(key, rec)
}

// Remove implements View. Elements are matched by ID.
func (l *List) Remove(el *Element) {
	if el == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.elements {
		if e.ID == el.ID {
			l.elements = append(l.elements[:i], l.elements[i+1:]...)
			return
		}
	}
}

// InsertAt implements View. An out-of-range index appends.
func (l *List) InsertAt(el *Element, index int) {
	if el == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.elements) {
		l.elements = append(l.elements, el)
		return
	}

	l.elements = append(l.elements, nil)
	copy(l.elements[index+1:], l.elements[index:])
	l.elements[index] = el
}

// Reset implements View. Nil elements are ignored.
func (l *List) Reset(elements []*Element) {
	next := make([]*Element, 0, len(elements))
	for _, el := range elements {
		if el != nil {
			next = append(next, el)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.elements = next
}

// Elements returns a snapshot of the rendered list.
func (l *List) Elements() []Element {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]Element, len(l.elements))
	for i, el := range l.elements {
		result[i] = *el
	}
	return result
}

// FindPending returns the element tagged with clientTimestamp, if any.
func (l *List) FindPending(clientTimestamp string) *Element {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, el := range l.elements {
		if el.ClientTimestamp != "" && el.ClientTimestamp == clientTimestamp {
			return el
		}
	}
	return nil
}

// Len returns the number of rendered elements.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.elements)
}
