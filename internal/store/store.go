// Package store is the project repository: one in-memory document holding the
// projects, their seven child collections and the current-project pointer,
// persisted wholesale to a storage slot after every mutation.
//
// A Repository is not safe for concurrent use. It assumes a single writer.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/h0rv/dread/internal/domain"
	"github.com/h0rv/dread/internal/slot"
)

// Repository owns the project document and every operation on it.
type Repository struct {
	slot   slot.Slot
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	doc Document

	StoryElements       *Table[domain.StoryElement]
	GameSystems         *Table[domain.GameSystem]
	Tasks               *Table[domain.Task]
	Assets              *Table[domain.Asset]
	HorrorElements      *Table[domain.HorrorElement]
	Levels              *Table[domain.Level]
	MarketingActivities *Table[domain.MarketingActivity]
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for swallowed failures.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) {
		r.newID = gen
	}
}

// New creates a repository over s and loads whatever s holds.
func New(s slot.Slot, opts ...Option) *Repository {
	r := &Repository{
		slot:   s,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		doc:    emptyDocument(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("store")

	r.StoryElements = newTable(r, domain.StoryElements, func(d *Document) *[]domain.StoryElement { return &d.StoryElements })
	r.GameSystems = newTable(r, domain.GameSystems, func(d *Document) *[]domain.GameSystem { return &d.GameSystems })
	r.Tasks = newTable(r, domain.Tasks, func(d *Document) *[]domain.Task { return &d.Tasks })
	r.Assets = newTable(r, domain.Assets, func(d *Document) *[]domain.Asset { return &d.Assets })
	r.HorrorElements = newTable(r, domain.HorrorElements, func(d *Document) *[]domain.HorrorElement { return &d.HorrorElements })
	r.Levels = newTable(r, domain.Levels, func(d *Document) *[]domain.Level { return &d.Levels })
	r.MarketingActivities = newTable(r, domain.MarketingActivities, func(d *Document) *[]domain.MarketingActivity { return &d.MarketingActivities })

	r.Load()
	return r
}

// Load replaces the in-memory document with the slot contents. An empty,
// unreadable or malformed slot loads as an empty document.
func (r *Repository) Load() {
	r.doc = emptyDocument()

	data, err := r.slot.Read()
	if err != nil {
		if !errors.Is(err, slot.ErrNotFound) {
			r.logger.Warn("failed to read stored data, starting empty", zap.Error(err))
		}
		return
	}

	doc, err := decodeDocument(data)
	if err != nil {
		r.logger.Warn("stored data is corrupt, starting empty", zap.Error(err))
		return
	}
	r.doc = doc
}

// Save writes the whole document to the slot.
func (r *Repository) Save() error {
	data, err := json.Marshal(r.doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := r.slot.Write(data); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// persist saves after a mutation. Write failures are logged and swallowed:
// the in-memory state stays authoritative for the session.
func (r *Repository) persist() {
	if err := r.Save(); err != nil {
		r.logger.Warn("failed to persist data", zap.Error(err))
	}
}

// Close releases the underlying slot.
func (r *Repository) Close() error {
	return r.slot.Close()
}

// Now returns the repository clock, truncated to the millisecond precision
// the exported format carries. Patches that stamp times should use it.
func (r *Repository) Now() time.Time {
	return r.timestamp()
}

func (r *Repository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// Collections returns the seven child tables in document order.
func (r *Repository) Collections() []Collection {
	return []Collection{
		r.StoryElements,
		r.GameSystems,
		r.Tasks,
		r.Assets,
		r.HorrorElements,
		r.Levels,
		r.MarketingActivities,
	}
}

// Collection returns the table stored under kind.
func (r *Repository) Collection(kind domain.Collection) (Collection, error) {
	for _, c := range r.Collections() {
		if c.Kind() == kind {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown collection %q", kind)
}

// Document returns a deep copy of the current state.
func (r *Repository) Document() Document {
	return r.doc.clone()
}

// Projects returns every project in storage order.
func (r *Repository) Projects() []domain.Project {
	return append([]domain.Project{}, r.doc.Projects...)
}

// Project returns the project with id.
func (r *Repository) Project(id string) (domain.Project, bool) {
	for _, p := range r.doc.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

// CurrentProjectID returns the current-project pointer, or "" when unset.
// The id may be stale.
func (r *Repository) CurrentProjectID() string {
	if r.doc.CurrentProjectID == nil {
		return ""
	}
	return *r.doc.CurrentProjectID
}

// CurrentProject returns the project the pointer refers to. It reports false
// when the pointer is unset or no longer matches a project.
func (r *Repository) CurrentProject() (domain.Project, bool) {
	id := r.CurrentProjectID()
	if id == "" {
		return domain.Project{}, false
	}
	return r.Project(id)
}

// SetCurrentProject overwrites the pointer without checking that id exists.
// An empty id clears it.
func (r *Repository) SetCurrentProject(id string) {
	r.setCurrent(id)
	r.persist()
}

func (r *Repository) setCurrent(id string) {
	if id == "" {
		r.doc.CurrentProjectID = nil
		return
	}
	r.doc.CurrentProjectID = &id
}

// AddProject stores p under a fresh id, makes it the current project and
// returns the stored row.
func (r *Repository) AddProject(p domain.Project) domain.Project {
	now := r.timestamp()
	p.ID = r.newID()
	p.CreatedAt = now
	p.UpdatedAt = now

	r.doc.Projects = append(r.doc.Projects, p)
	r.setCurrent(p.ID)
	r.persist()
	return p
}

// UpdateProject merges patch over the project with id and refreshes its
// UpdatedAt, even when the patch changes nothing. It reports false and
// changes nothing when no such project exists.
func (r *Repository) UpdateProject(id string, patch domain.ProjectPatch) bool {
	for i, p := range r.doc.Projects {
		if p.ID != id {
			continue
		}
		next := patch.Apply(p)
		next.ID = p.ID
		next.CreatedAt = p.CreatedAt
		next.UpdatedAt = r.timestamp()
		r.doc.Projects[i] = next
		r.persist()
		return true
	}
	return false
}

// DeleteProject removes the project with id together with every child row
// that belongs to it, then persists once. If the project was current, the
// pointer falls back to the first remaining project, or is cleared. It
// reports whether anything was removed.
func (r *Repository) DeleteProject(id string) bool {
	removed := 0

	kept := make([]domain.Project, 0, len(r.doc.Projects))
	for _, p := range r.doc.Projects {
		if p.ID == id {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	r.doc.Projects = kept

	for _, c := range r.Collections() {
		n := c.purge(id)
		if n > 0 {
			r.logger.Debug("cascade delete", zap.String("collection", string(c.Kind())), zap.Int("rows", n))
		}
		removed += n
	}

	if r.CurrentProjectID() == id && id != "" {
		if len(r.doc.Projects) > 0 {
			r.setCurrent(r.doc.Projects[0].ID)
		} else {
			r.setCurrent("")
		}
		removed++
	}

	if removed == 0 {
		return false
	}
	r.persist()
	return true
}

// Export renders the whole document as indented JSON, suitable for Import.
func (r *Repository) Export() string {
	data, err := json.MarshalIndent(r.doc, "", "  ")
	if err != nil {
		r.logger.Error("failed to export data", zap.Error(err))
		return ""
	}
	return string(data)
}

// Import replaces the whole document with text and persists it. Text that
// does not have the exact document shape is rejected: Import then returns
// false and the current state is left untouched.
func (r *Repository) Import(text string) bool {
	doc, err := decodeDocument([]byte(text))
	if err != nil {
		r.logger.Warn("failed to import data", zap.Error(err))
		return false
	}
	r.doc = doc
	r.persist()
	return true
}

// ExportFileName returns the file name offered for an export taken at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("horror-game-dev-%d.json", t.UnixMilli())
}
