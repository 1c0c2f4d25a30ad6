package render

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/iudanet/commentfeed/internal/client/iocli"
	"github.com/iudanet/commentfeed/internal/models"
)

const clearScreen = "\x1b[H\x1b[2J"

// Terminal перерисовывает ленту в терминале после каждого изменения списка.
// Если вывод не терминал, кадры просто дописываются друг за другом.
type Terminal struct {
	list  *List
	out   iocli.IO
	title string
	mu    sync.Mutex
}

// NewTerminal создает терминальное представление
func NewTerminal(out iocli.IO, title string) *Terminal {
	return &Terminal{
		list:  NewList(),
		out:   out,
		title: title,
	}
}

// Render implements View.
func (t *Terminal) Render(key string, rec models.CommentRecord) *Element {
	return t.list.Render(key, rec)
}

// Remove implements View.
func (t *Terminal) Remove(el *Element) {
	t.list.Remove(el)
	t.redraw()
}

// InsertAt implements View.
func (t *Terminal) InsertAt(el *Element, index int) {
	t.list.InsertAt(el, index)
	t.redraw()
}

// Reset implements View.
func (t *Terminal) Reset(elements []*Element) {
	t.list.Reset(elements)
	t.redraw()
}

// Elements returns the currently displayed elements.
func (t *Terminal) Elements() []Element {
	return t.list.Elements()
}

func (t *Terminal) redraw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	width := t.out.Width()
	var b strings.Builder
	if t.out.IsTerminal() {
		b.WriteString(clearScreen)
	}
	if t.title != "" {
		b.WriteString(t.title)
		b.WriteString("\n\n")
	}

	elements := t.list.Elements()
	if len(elements) == 0 {
		b.WriteString("(no comments yet)\n")
	}
	for _, el := range elements {
		b.WriteString(FormatElement(el, width))
	}
	if !t.out.IsTerminal() {
		b.WriteString("---\n")
	}

	_, _ = t.out.Write([]byte(b.String()))
}

// FormatElement renders one element as text. Lines are cut to width when
// width is positive.
func FormatElement(el Element, width int) string {
	stamp := Sanitize(el.Record.EffectiveTimestamp())
	header := fmt.Sprintf("[%s] %s", stamp, Sanitize(el.Record.Name))
	if el.Record.IsPending() {
		header += " (sending...)"
	}

	var b strings.Builder
	b.WriteString(truncate(header, width))
	b.WriteByte('\n')
	for _, line := range strings.Split(el.Record.Comment, "\n") {
		b.WriteString(truncate("  "+Sanitize(line), width))
		b.WriteByte('\n')
	}
	return b.String()
}

// Sanitize makes control characters visible so feed text cannot drive the
// terminal. C0 controls and DEL use caret notation (ESC becomes "^["), C1
// controls are written as \u escapes. Tabs are kept.
func Sanitize(s string) string {
	clean := true
	for _, r := range s {
		if isControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case !isControl(r):
			b.WriteRune(r)
		case r == 0x7f:
			b.WriteString("^?")
		case r < 0x20:
			b.WriteByte('^')
			b.WriteRune(r + '@')
		default:
			fmt.Fprintf(&b, "\\u%04x", r)
		}
	}
	return b.String()
}

func isControl(r rune) bool {
	if r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f)
}

func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
