package store

import (
	"slices"

	"github.com/h0rv/dread/internal/domain"
	"github.com/h0rv/dread/internal/insight"
)

// NextOrder returns the order index for a row appended to projectID: the
// number of rows the project already has.
func NextOrder[T domain.OrderedRow[T]](t *Table[T], projectID string) int {
	return t.Count(projectID)
}

// Ordered returns the rows of projectID sorted by order index. Rows with equal
// indexes keep their storage order.
func Ordered[T domain.OrderedRow[T]](t *Table[T], projectID string) []T {
	return insight.SortByOrder(t.List(projectID))
}

// Move shifts the row with id by delta positions within its project's
// ordering and renumbers the whole project 0..n-1. A move past either end is
// a no-op. It reports whether the ordering changed.
func Move[T domain.OrderedRow[T]](t *Table[T], id string, delta int) bool {
	row, ok := t.Get(id)
	if !ok || delta == 0 {
		return false
	}

	rows := Ordered(t, row.Identity().ProjectID)
	from := slices.IndexFunc(rows, func(r T) bool { return r.Identity().ID == id })
	to := from + delta
	if to < 0 || to >= len(rows) {
		return false
	}

	moved := rows[from]
	rows = slices.Delete(rows, from, from+1)
	rows = slices.Insert(rows, to, moved)

	for i, r := range rows {
		t.apply(r.Identity().ID, func(v T) T { return v.WithOrder(i) })
	}
	t.repo.persist()
	return true
}
