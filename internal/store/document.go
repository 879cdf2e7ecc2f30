package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/h0rv/dread/internal/domain"
)

// ErrInvalidDocument indicates serialized data does not have the document shape.
var ErrInvalidDocument = errors.New("invalid document")

const keyCurrentProject = "currentProjectId"

// Document is the complete persisted state: the projects, the seven child
// collections and the current-project pointer.
type Document struct {
	Projects            []domain.Project           `json:"projects"`
	StoryElements       []domain.StoryElement      `json:"storyElements"`
	GameSystems         []domain.GameSystem        `json:"gameSystems"`
	Tasks               []domain.Task              `json:"tasks"`
	Assets              []domain.Asset             `json:"assets"`
	HorrorElements      []domain.HorrorElement     `json:"horrorElements"`
	Levels              []domain.Level             `json:"levels"`
	MarketingActivities []domain.MarketingActivity `json:"marketingActivities"`
	CurrentProjectID    *string                    `json:"currentProjectId"`
}

// emptyDocument returns a document with every collection present and empty,
// so that it serializes as [] rather than null.
func emptyDocument() Document {
	return Document{
		Projects:            []domain.Project{},
		StoryElements:       []domain.StoryElement{},
		GameSystems:         []domain.GameSystem{},
		Tasks:               []domain.Task{},
		Assets:              []domain.Asset{},
		HorrorElements:      []domain.HorrorElement{},
		Levels:              []domain.Level{},
		MarketingActivities: []domain.MarketingActivity{},
	}
}

// clone returns a copy that shares no slices or pointers with d.
func (d Document) clone() Document {
	c := Document{
		Projects:            append([]domain.Project{}, d.Projects...),
		StoryElements:       append([]domain.StoryElement{}, d.StoryElements...),
		GameSystems:         append([]domain.GameSystem{}, d.GameSystems...),
		Tasks:               make([]domain.Task, len(d.Tasks)),
		Assets:              append([]domain.Asset{}, d.Assets...),
		HorrorElements:      append([]domain.HorrorElement{}, d.HorrorElements...),
		Levels:              append([]domain.Level{}, d.Levels...),
		MarketingActivities: append([]domain.MarketingActivity{}, d.MarketingActivities...),
	}
	for i, t := range d.Tasks {
		if t.CompletedAt != nil {
			at := *t.CompletedAt
			t.CompletedAt = &at
		}
		c.Tasks[i] = t
	}
	if d.CurrentProjectID != nil {
		id := *d.CurrentProjectID
		c.CurrentProjectID = &id
	}
	return c
}

func documentKeys() []string {
	keys := []string{"projects"}
	for _, c := range domain.Collections {
		keys = append(keys, string(c))
	}
	return append(keys, keyCurrentProject)
}

// decodeDocument parses data and checks it has exactly the document shape:
// every collection key present and holding an array, no unknown keys or
// fields, and non-empty unique row ids.
func decodeDocument(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if raw == nil {
		return Document{}, fmt.Errorf("%w: not an object", ErrInvalidDocument)
	}

	keys := documentKeys()
	for _, key := range keys {
		value, ok := raw[key]
		if !ok {
			return Document{}, fmt.Errorf("%w: missing %q", ErrInvalidDocument, key)
		}
		if key != keyCurrentProject && !bytes.HasPrefix(bytes.TrimSpace(value), []byte("[")) {
			return Document{}, fmt.Errorf("%w: %q must be an array", ErrInvalidDocument, key)
		}
	}
	if len(raw) != len(keys) {
		return Document{}, fmt.Errorf("%w: unexpected top-level keys", ErrInvalidDocument)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if err := doc.validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (d Document) validate() error {
	if d.CurrentProjectID != nil && *d.CurrentProjectID == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidDocument, keyCurrentProject)
	}

	projectIDs := make([]string, len(d.Projects))
	for i, p := range d.Projects {
		projectIDs[i] = p.ID
	}
	if err := checkIDs("projects", projectIDs); err != nil {
		return err
	}

	checks := []struct {
		name string
		ids  []string
	}{
		{string(domain.StoryElements), rowIDs(d.StoryElements)},
		{string(domain.GameSystems), rowIDs(d.GameSystems)},
		{string(domain.Tasks), rowIDs(d.Tasks)},
		{string(domain.Assets), rowIDs(d.Assets)},
		{string(domain.HorrorElements), rowIDs(d.HorrorElements)},
		{string(domain.Levels), rowIDs(d.Levels)},
		{string(domain.MarketingActivities), rowIDs(d.MarketingActivities)},
	}
	for _, c := range checks {
		if err := checkIDs(c.name, c.ids); err != nil {
			return err
		}
	}
	return nil
}

func rowIDs[T domain.Row[T]](rows []T) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Identity().ID
	}
	return ids
}

func checkIDs(collection string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: %s[%d] has no id", ErrInvalidDocument, collection, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s has duplicate id %q", ErrInvalidDocument, collection, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
