// Package source supplies item data for index ranges requested by the
// windowing engine: a synchronous fixed collection and an asynchronous
// sqlite-backed store.
package source

import (
	"context"
	"fmt"
	"strings"
)

// Row is one renderable record of the demo collection. Body length varies
// per row, which is what makes its rendered height unknown until measured.
type Row struct {
	ID    int64
	Kind  string
	Title string
	Body  string
}

// SliceSource serves a fixed in-memory collection.
type SliceSource[T any] struct {
	items []T
}

// FromSlice wraps a fixed collection.
func FromSlice[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

// Count reports the collection size.
func (s *SliceSource[T]) Count(context.Context) (int, error) {
	return len(s.items), nil
}

// Slice returns the items in [start, start+count), clamped to the
// collection bounds.
func (s *SliceSource[T]) Slice(_ context.Context, start, count int) ([]T, error) {
	start = max(min(start, len(s.items)), 0)
	end := max(min(start+count, len(s.items)), start)
	return s.items[start:end], nil
}

var kinds = []string{"note", "event", "alert", "digest"}

// GenerateRows builds a deterministic collection of n rows with bodies of
// varying length, for the fixed-collection demo and for seeding the store.
func GenerateRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			ID:    int64(i + 1),
			Kind:  kinds[i%len(kinds)],
			Title: fmt.Sprintf("Record %d", i+1),
			Body:  generateBody(i),
		}
	}
	return rows
}

func generateBody(i int) string {
	sentences := i%7 + 1
	var b strings.Builder
	for s := range sentences {
		if s > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "Line %d of record %d carries %d words of payload text.", s+1, i+1, (i+s)%11+3)
	}
	return b.String()
}
