// Package picker holds the filterable name list shared by the browser panes and
// the region overlay.
package picker

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// List is a list of names with a cursor. While a query is active the cursor
// indexes the filtered view, so callers pass the same query to every method.
type List struct {
	items  []string
	cursor int
}

// SetItems replaces the items and puts the cursor on current when it is listed.
func (l *List) SetItems(items []string, current string) {
	l.items = items
	l.cursor = 0
	l.Select(current, "")
}

// Select moves the cursor onto item within the view for query. It is a no-op
// when item is not in that view.
func (l *List) Select(item, query string) {
	if item == "" {
		return
	}
	for i, v := range l.Filtered(query) {
		if v == item {
			l.cursor = i
			return
		}
	}
}

func (l List) Items() []string {
	return l.items
}

func (l List) Len() int {
	return len(l.items)
}

func (l List) Cursor() int {
	return l.cursor
}

// Filtered returns the items containing query, case-insensitively.
func (l List) Filtered(query string) []string {
	if query == "" {
		return l.items
	}
	q := strings.ToLower(query)
	out := make([]string, 0, len(l.items))
	for _, item := range l.items {
		if strings.Contains(strings.ToLower(item), q) {
			out = append(out, item)
		}
	}
	return out
}

func (l *List) Move(delta int, query string) {
	n := len(l.Filtered(query))
	l.cursor += delta
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Clamp keeps the cursor inside the view after the query changed.
func (l *List) Clamp(query string) {
	l.Move(0, query)
}

func (l List) Current(query string) string {
	items := l.Filtered(query)
	if len(items) == 0 || l.cursor >= len(items) {
		return ""
	}
	return items[l.cursor]
}

// Window returns at most rows items around the cursor, plus the index of the
// first one.
func (l List) Window(query string, rows int) ([]string, int) {
	items := l.Filtered(query)
	if rows <= 0 || len(items) <= rows {
		return items, 0
	}
	start := 0
	if l.cursor >= rows {
		start = l.cursor - rows + 1
	}
	return items[start : start+rows], start
}

// Truncate cuts s to width terminal cells.
func Truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
