package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyName indicates a record was submitted without a name or title.
var ErrEmptyName = errors.New("name must not be empty")

// Collection names one of the seven project-scoped record sets.
// The value is the key the collection is stored under in the document.
type Collection string

const (
	StoryElements       Collection = "storyElements"
	GameSystems         Collection = "gameSystems"
	Tasks               Collection = "tasks"
	Assets              Collection = "assets"
	HorrorElements      Collection = "horrorElements"
	Levels              Collection = "levels"
	MarketingActivities Collection = "marketingActivities"
)

// Collections lists every child collection in document order.
var Collections = []Collection{StoryElements, GameSystems, Tasks, Assets, HorrorElements, Levels, MarketingActivities}

// Identity holds the fields of a record that a partial update may never change.
type Identity struct {
	ID        string
	ProjectID string
	CreatedAt time.Time
}

// Row is implemented by every project-scoped record type.
type Row[T any] interface {
	Identity() Identity
	WithIdentity(Identity) T
	Validate() error
}

// OrderedRow is a Row that is kept in a user-defined order within its project.
type OrderedRow[T any] interface {
	Row[T]
	Order() int
	WithOrder(int) T
}

func requireName(kind, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: %w", kind, ErrEmptyName)
	}
	return nil
}

// Validate checks that the project has a name.
func (p Project) Validate() error { return requireName("project", p.Name) }

func (s StoryElement) Identity() Identity {
	return Identity{ID: s.ID, ProjectID: s.ProjectID, CreatedAt: s.CreatedAt}
}

func (s StoryElement) WithIdentity(id Identity) StoryElement {
	s.ID, s.ProjectID, s.CreatedAt = id.ID, id.ProjectID, id.CreatedAt
	return s
}

func (s StoryElement) Validate() error { return requireName("story element", s.Title) }

func (s StoryElement) Order() int { return s.OrderIndex }

func (s StoryElement) WithOrder(i int) StoryElement {
	s.OrderIndex = i
	return s
}

func (g GameSystem) Identity() Identity {
	return Identity{ID: g.ID, ProjectID: g.ProjectID, CreatedAt: g.CreatedAt}
}

func (g GameSystem) WithIdentity(id Identity) GameSystem {
	g.ID, g.ProjectID, g.CreatedAt = id.ID, id.ProjectID, id.CreatedAt
	return g
}

func (g GameSystem) Validate() error { return requireName("game system", g.Name) }

func (t Task) Identity() Identity {
	return Identity{ID: t.ID, ProjectID: t.ProjectID, CreatedAt: t.CreatedAt}
}

func (t Task) WithIdentity(id Identity) Task {
	t.ID, t.ProjectID, t.CreatedAt = id.ID, id.ProjectID, id.CreatedAt
	return t
}

func (t Task) Validate() error { return requireName("task", t.Title) }

func (a Asset) Identity() Identity {
	return Identity{ID: a.ID, ProjectID: a.ProjectID, CreatedAt: a.CreatedAt}
}

func (a Asset) WithIdentity(id Identity) Asset {
	a.ID, a.ProjectID, a.CreatedAt = id.ID, id.ProjectID, id.CreatedAt
	return a
}

func (a Asset) Validate() error { return requireName("asset", a.Name) }

func (h HorrorElement) Identity() Identity {
	return Identity{ID: h.ID, ProjectID: h.ProjectID, CreatedAt: h.CreatedAt}
}

func (h HorrorElement) WithIdentity(id Identity) HorrorElement {
	h.ID, h.ProjectID, h.CreatedAt = id.ID, id.ProjectID, id.CreatedAt
	return h
}

func (h HorrorElement) Validate() error { return requireName("horror element", h.Name) }

func (l Level) Identity() Identity {
	return Identity{ID: l.ID, ProjectID: l.ProjectID, CreatedAt: l.CreatedAt}
}

func (l Level) WithIdentity(id Identity) Level {
	l.ID, l.ProjectID, l.CreatedAt = id.ID, id.ProjectID, id.CreatedAt
	return l
}

func (l Level) Validate() error { return requireName("level", l.Name) }

func (l Level) Order() int { return l.OrderIndex }

func (l Level) WithOrder(i int) Level {
	l.OrderIndex = i
	return l
}

func (m MarketingActivity) Identity() Identity {
	return Identity{ID: m.ID, ProjectID: m.ProjectID, CreatedAt: m.CreatedAt}
}

func (m MarketingActivity) WithIdentity(id Identity) MarketingActivity {
	m.ID, m.ProjectID, m.CreatedAt = id.ID, id.ProjectID, id.CreatedAt
	return m
}

func (m MarketingActivity) Validate() error { return requireName("marketing activity", m.Title) }
