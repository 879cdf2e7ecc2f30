package store

import "github.com/h0rv/dread/internal/domain"

// Collection is the part of a child table that does not depend on its row type.
// It lets callers and the cascade delete treat the seven tables uniformly.
type Collection interface {
	Kind() domain.Collection
	// Count returns how many rows belong to projectID.
	Count(projectID string) int
	// Delete removes the row with id, reporting whether it existed.
	Delete(id string) bool

	// purge removes every row of projectID without persisting.
	purge(projectID string) int
}

// Table is a typed handle over one child collection of the repository document.
type Table[T domain.Row[T]] struct {
	repo *Repository
	kind domain.Collection
	rows func(*Document) *[]T
}

var _ Collection = (*Table[domain.Task])(nil)

func newTable[T domain.Row[T]](repo *Repository, kind domain.Collection, rows func(*Document) *[]T) *Table[T] {
	return &Table[T]{repo: repo, kind: kind, rows: rows}
}

// Kind returns the collection this table stores.
func (t *Table[T]) Kind() domain.Collection {
	return t.kind
}

// List returns the rows of projectID in storage order. Callers that need a
// display order sort the result themselves.
func (t *Table[T]) List(projectID string) []T {
	out := []T{}
	for _, row := range *t.rows(&t.repo.doc) {
		if row.Identity().ProjectID == projectID {
			out = append(out, row)
		}
	}
	return out
}

// Get returns the row with id.
func (t *Table[T]) Get(id string) (T, bool) {
	for _, row := range *t.rows(&t.repo.doc) {
		if row.Identity().ID == id {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *Table[T]) Count(projectID string) int {
	n := 0
	for _, row := range *t.rows(&t.repo.doc) {
		if row.Identity().ProjectID == projectID {
			n++
		}
	}
	return n
}

// Add stamps row with a fresh id and creation time, appends it and persists.
// The caller supplies the ProjectID; it is not checked against the projects.
func (t *Table[T]) Add(row T) T {
	row = row.WithIdentity(domain.Identity{
		ID:        t.repo.newID(),
		ProjectID: row.Identity().ProjectID,
		CreatedAt: t.repo.timestamp(),
	})
	rows := t.rows(&t.repo.doc)
	*rows = append(*rows, row)
	t.repo.persist()
	return row
}

// Update merges p over the row with id and persists. It reports false and
// changes nothing when no such row exists. The id, project and creation time
// of the row survive any patch.
func (t *Table[T]) Update(id string, p domain.Patch[T]) bool {
	if !t.apply(id, p.Apply) {
		return false
	}
	t.repo.persist()
	return true
}

func (t *Table[T]) Delete(id string) bool {
	rows := t.rows(&t.repo.doc)
	for i, row := range *rows {
		if row.Identity().ID == id {
			*rows = append((*rows)[:i:i], (*rows)[i+1:]...)
			t.repo.persist()
			return true
		}
	}
	return false
}

// apply rewrites the row with id in place without persisting.
func (t *Table[T]) apply(id string, fn func(T) T) bool {
	rows := *t.rows(&t.repo.doc)
	for i, row := range rows {
		if row.Identity().ID == id {
			rows[i] = fn(row).WithIdentity(row.Identity())
			return true
		}
	}
	return false
}

func (t *Table[T]) purge(projectID string) int {
	rows := t.rows(&t.repo.doc)
	kept := make([]T, 0, len(*rows))
	for _, row := range *rows {
		if row.Identity().ProjectID != projectID {
			kept = append(kept, row)
		}
	}
	removed := len(*rows) - len(kept)
	*rows = kept
	return removed
}
