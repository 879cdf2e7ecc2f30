package store

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h0rv/dread/internal/domain"
	"github.com/h0rv/dread/internal/slot"
)

// Test fixtures
func newTestRepo(t *testing.T) (*Repository, *slot.Memory) {
	t.Helper()
	mem := slot.NewMemory()
	n := 0
	clock := time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC)
	repo := New(mem,
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id_%d", n)
		}),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
	return repo, mem
}

func createTestProject(name string) domain.Project {
	return domain.Project{
		Name:    name,
		Concept: "A lighthouse keeper hears the tide speak",
		Status:  domain.ProjectConcept,
	}
}

// failingSlot accepts reads but rejects every write.
type failingSlot struct {
	slot.Memory
}

func (f *failingSlot) Write([]byte) error { return errors.New("disk full") }

// TestRepository_StartsEmpty
func TestRepository_StartsEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)

	assert.Empty(t, repo.Projects())
	_, ok := repo.CurrentProject()
	assert.False(t, ok)
	assert.Equal(t, "", repo.CurrentProjectID())
	for _, c := range repo.Collections() {
		assert.Equal(t, 0, c.Count("anything"))
	}
}

// TestRepository_AddProjectSetsCurrent
func TestRepository_AddProjectSetsCurrent(t *testing.T) {
	repo, _ := newTestRepo(t)

	p := repo.AddProject(createTestProject("Silent Halls"))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	current, ok := repo.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, p, current)

	second := repo.AddProject(createTestProject("Hollow Pines"))
	assert.Equal(t, second.ID, repo.CurrentProjectID())
	assert.Len(t, repo.Projects(), 2)
}

// TestRepository_IDsAreUnique
func TestRepository_IDsAreUnique(t *testing.T) {
	repo := New(slot.NewMemory())

	seen := map[string]bool{}
	p := repo.AddProject(createTestProject("Silent Halls"))
	seen[p.ID] = true
	for i := 0; i < 50; i++ {
		task := repo.Tasks.Add(domain.Task{ProjectID: p.ID, Title: fmt.Sprintf("task %d", i)})
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
}

// TestRepository_UpdateProject
func TestRepository_UpdateProject(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))

	engine := "Godot"
	require.True(t, repo.UpdateProject(p.ID, domain.ProjectPatch{Engine: &engine}))

	got, ok := repo.Project(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Godot", got.Engine)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt))

	// An empty patch still refreshes UpdatedAt
	require.True(t, repo.UpdateProject(p.ID, domain.ProjectPatch{}))
	again, _ := repo.Project(p.ID)
	assert.True(t, again.UpdatedAt.After(got.UpdatedAt))

	assert.False(t, repo.UpdateProject("missing", domain.ProjectPatch{Engine: &engine}))
}

// TestRepository_SetCurrentProjectAcceptsUnknownID
func TestRepository_SetCurrentProjectAcceptsUnknownID(t *testing.T) {
	repo, _ := newTestRepo(t)
	repo.AddProject(createTestProject("Silent Halls"))

	repo.SetCurrentProject("ghost")
	assert.Equal(t, "ghost", repo.CurrentProjectID())
	_, ok := repo.CurrentProject()
	assert.False(t, ok)

	repo.SetCurrentProject("")
	assert.Equal(t, "", repo.CurrentProjectID())
	assert.Contains(t, repo.Export(), `"currentProjectId": null`)
}

// TestTable_ScopedQueries
func TestTable_ScopedQueries(t *testing.T) {
	repo, _ := newTestRepo(t)
	a := repo.AddProject(createTestProject("Silent Halls"))
	b := repo.AddProject(createTestProject("Hollow Pines"))

	repo.Tasks.Add(domain.Task{ProjectID: a.ID, Title: "Write intro"})
	repo.Tasks.Add(domain.Task{ProjectID: b.ID, Title: "Model the cabin"})
	repo.Tasks.Add(domain.Task{ProjectID: a.ID, Title: "Record whispers"})

	tasks := repo.Tasks.List(a.ID)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Write intro", tasks[0].Title)
	assert.Equal(t, "Record whispers", tasks[1].Title)
	assert.Equal(t, 1, repo.Tasks.Count(b.ID))

	assert.NotNil(t, repo.Assets.List(a.ID))
	assert.Empty(t, repo.Assets.List(a.ID))
}

// TestTable_UpdatePreservesIdentity
func TestTable_UpdatePreservesIdentity(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))
	asset := repo.Assets.Add(domain.Asset{ProjectID: p.ID, Name: "Lantern", Type: domain.Asset3DModel, Status: domain.AssetNeeded})

	hijack := domain.PatchFunc[domain.Asset](func(a domain.Asset) domain.Asset {
		a.ID = "other"
		a.ProjectID = "other"
		a.CreatedAt = time.Time{}
		a.Status = domain.AssetInProgress
		return a
	})
	require.True(t, repo.Assets.Update(asset.ID, hijack))

	got, ok := repo.Assets.Get(asset.ID)
	require.True(t, ok)
	assert.Equal(t, asset.ID, got.ID)
	assert.Equal(t, p.ID, got.ProjectID)
	assert.Equal(t, asset.CreatedAt, got.CreatedAt)
	assert.Equal(t, domain.AssetInProgress, got.Status)
}

// TestTable_MissingIDIsNoOp
func TestTable_MissingIDIsNoOp(t *testing.T) {
	repo, mem := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))
	repo.Levels.Add(domain.Level{ProjectID: p.ID, Name: "Basement"})

	before, err := mem.Read()
	require.NoError(t, err)

	name := "Attic"
	assert.False(t, repo.Levels.Update("missing", domain.LevelPatch{Name: &name}))
	assert.False(t, repo.Levels.Delete("missing"))
	assert.False(t, repo.DeleteProject("missing"))

	after, err := mem.Read()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// TestRepository_DeleteProjectCascades
func TestRepository_DeleteProjectCascades(t *testing.T) {
	repo, _ := newTestRepo(t)
	a := repo.AddProject(createTestProject("Silent Halls"))
	b := repo.AddProject(createTestProject("Hollow Pines"))

	repo.StoryElements.Add(domain.StoryElement{ProjectID: a.ID, Title: "Prologue"})
	repo.GameSystems.Add(domain.GameSystem{ProjectID: a.ID, Name: "Sanity"})
	repo.Tasks.Add(domain.Task{ProjectID: a.ID, Title: "Write intro"})
	repo.Assets.Add(domain.Asset{ProjectID: a.ID, Name: "Lantern"})
	repo.HorrorElements.Add(domain.HorrorElement{ProjectID: a.ID, Name: "Mirror"})
	repo.Levels.Add(domain.Level{ProjectID: a.ID, Name: "Basement"})
	repo.MarketingActivities.Add(domain.MarketingActivity{ProjectID: a.ID, Title: "Teaser"})
	keep := repo.Tasks.Add(domain.Task{ProjectID: b.ID, Title: "Model the cabin"})

	require.True(t, repo.DeleteProject(a.ID))

	_, ok := repo.Project(a.ID)
	assert.False(t, ok)
	for _, c := range repo.Collections() {
		assert.Equal(t, 0, c.Count(a.ID), "collection %s", c.Kind())
	}
	assert.Equal(t, []domain.Task{keep}, repo.Tasks.List(b.ID))
}

// TestRepository_DeleteProjectFallsBack
func TestRepository_DeleteProjectFallsBack(t *testing.T) {
	repo, _ := newTestRepo(t)
	a := repo.AddProject(createTestProject("Silent Halls"))
	b := repo.AddProject(createTestProject("Hollow Pines"))
	c := repo.AddProject(createTestProject("Drowned Chapel"))

	// Deleting a non-current project leaves the pointer alone
	repo.SetCurrentProject(b.ID)
	require.True(t, repo.DeleteProject(c.ID))
	assert.Equal(t, b.ID, repo.CurrentProjectID())

	// Deleting the current project falls back to the first remaining one
	require.True(t, repo.DeleteProject(b.ID))
	assert.Equal(t, a.ID, repo.CurrentProjectID())

	// Deleting the last project clears the pointer
	require.True(t, repo.DeleteProject(a.ID))
	assert.Equal(t, "", repo.CurrentProjectID())
	assert.Empty(t, repo.Projects())
}

// TestRepository_DeleteProjectPurgesOrphans
func TestRepository_DeleteProjectPurgesOrphans(t *testing.T) {
	repo, _ := newTestRepo(t)
	repo.Tasks.Add(domain.Task{ProjectID: "gone", Title: "Orphan"})

	assert.True(t, repo.DeleteProject("gone"))
	assert.Equal(t, 0, repo.Tasks.Count("gone"))
}

// TestRepository_PersistsEveryMutation
func TestRepository_PersistsEveryMutation(t *testing.T) {
	mem := slot.NewMemory()
	repo := New(mem)
	p := repo.AddProject(createTestProject("Silent Halls"))
	task := repo.Tasks.Add(domain.Task{ProjectID: p.ID, Title: "Write intro", Status: domain.TaskTodo})
	require.True(t, repo.Tasks.Update(task.ID, domain.TaskStatusPatch(domain.TaskCompleted, repo.Now())))

	reloaded := New(mem)
	assert.Equal(t, repo.Document(), reloaded.Document())

	got, ok := reloaded.Tasks.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, domain.TaskCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
}

// TestRepository_WriteFailureIsSwallowed
func TestRepository_WriteFailureIsSwallowed(t *testing.T) {
	repo := New(&failingSlot{})

	var p domain.Project
	require.NotPanics(t, func() {
		p = repo.AddProject(createTestProject("Silent Halls"))
	})
	got, ok := repo.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, p, got)
	assert.Error(t, repo.Save())
}

// TestRepository_CorruptSlotLoadsEmpty
func TestRepository_CorruptSlotLoadsEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":        "{{{",
		"wrong shape":     `{"projects":{}}`,
		"missing keys":    `{"projects":[]}`,
		"json null":       `null`,
		"array top level": `[]`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			mem := slot.NewMemory()
			require.NoError(t, mem.Write([]byte(data)))

			repo := New(mem)
			assert.Empty(t, repo.Projects())
			assert.Equal(t, emptyDocument(), repo.Document())
		})
	}
}

// TestRepository_ExportImportRoundTrip
func TestRepository_ExportImportRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))
	repo.StoryElements.Add(domain.StoryElement{ProjectID: p.ID, Type: domain.StoryLore, Title: "The tide", OrderIndex: 0})
	task := repo.Tasks.Add(domain.Task{ProjectID: p.ID, Title: "Write intro", DueDate: "2026-11-01"})
	repo.Tasks.Update(task.ID, domain.TaskStatusPatch(domain.TaskCompleted, repo.Now()))
	repo.MarketingActivities.Add(domain.MarketingActivity{ProjectID: p.ID, Title: "Teaser", ScheduledDate: "2026-12-24"})

	exported := repo.Export()
	assert.True(t, strings.HasPrefix(exported, "{\n  \"projects\""))

	other := New(slot.NewMemory())
	require.True(t, other.Import(exported))
	assert.Equal(t, repo.Document(), other.Document())
	assert.Equal(t, exported, other.Export())
}

// TestRepository_ImportRejectsMalformed
func TestRepository_ImportRejectsMalformed(t *testing.T) {
	valid := New(slot.NewMemory()).Export()

	cases := map[string]string{
		"not json":          "oops",
		"empty":             "",
		"null collection":   strings.Replace(valid, `"tasks": []`, `"tasks": null`, 1),
		"object collection": strings.Replace(valid, `"levels": []`, `"levels": {}`, 1),
		"missing key":       strings.Replace(valid, `"assets": [],`, ``, 1),
		"extra key":         strings.Replace(valid, `"projects": [],`, `"projects": [], "extra": 1,`, 1),
		"row without id":    strings.Replace(valid, `"tasks": []`, `"tasks": [{"projectId":"p","title":"x"}]`, 1),
		"duplicate ids":     strings.Replace(valid, `"tasks": []`, `"tasks": [{"id":"t"},{"id":"t"}]`, 1),
		"unknown field":     strings.Replace(valid, `"tasks": []`, `"tasks": [{"id":"t","mood":"grim"}]`, 1),
		"empty current":     strings.Replace(valid, `"currentProjectId": null`, `"currentProjectId": ""`, 1),
	}

	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			mem := slot.NewMemory()
			repo := New(mem)
			p := repo.AddProject(createTestProject("Silent Halls"))
			before := repo.Document()

			assert.False(t, repo.Import(text))
			assert.Equal(t, before, repo.Document())
			assert.Equal(t, p.ID, repo.CurrentProjectID())
		})
	}
}

// TestRepository_ImportKeepsStalePointer
func TestRepository_ImportKeepsStalePointer(t *testing.T) {
	valid := New(slot.NewMemory()).Export()
	text := strings.Replace(valid, `"currentProjectId": null`, `"currentProjectId": "ghost"`, 1)

	repo := New(slot.NewMemory())
	require.True(t, repo.Import(text))
	assert.Equal(t, "ghost", repo.CurrentProjectID())
	_, ok := repo.CurrentProject()
	assert.False(t, ok)
}

// TestRepository_ImportKeepsRowsWithoutProject
func TestRepository_ImportKeepsRowsWithoutProject(t *testing.T) {
	valid := New(slot.NewMemory()).Export()
	text := strings.Replace(valid, `"tasks": []`, `"tasks": [{"id":"t","title":"Stray"}]`, 1)

	repo := New(slot.NewMemory())
	require.True(t, repo.Import(text))
	task, ok := repo.Tasks.Get("t")
	require.True(t, ok)
	assert.Empty(t, task.ProjectID)
	assert.Empty(t, repo.Tasks.List("some-project"))
}

// TestRepository_Collection
func TestRepository_Collection(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))
	h := repo.HorrorElements.Add(domain.HorrorElement{ProjectID: p.ID, Name: "Mirror"})

	c, err := repo.Collection(domain.HorrorElements)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Count(p.ID))
	assert.True(t, c.Delete(h.ID))
	assert.Equal(t, 0, c.Count(p.ID))

	_, err = repo.Collection("ghosts")
	assert.Error(t, err)
}

// TestRepository_DocumentIsACopy
func TestRepository_DocumentIsACopy(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))
	task := repo.Tasks.Add(domain.Task{ProjectID: p.ID, Title: "Write intro"})
	repo.Tasks.Update(task.ID, domain.TaskStatusPatch(domain.TaskCompleted, repo.Now()))

	doc := repo.Document()
	doc.Projects[0].Name = "changed"
	*doc.Tasks[0].CompletedAt = time.Time{}

	got, _ := repo.Project(p.ID)
	assert.Equal(t, "Silent Halls", got.Name)
	stored, _ := repo.Tasks.Get(task.ID)
	assert.False(t, stored.CompletedAt.IsZero())
}

// TestRepository_SilentHallsScenario walks through a typical session.
func TestRepository_SilentHallsScenario(t *testing.T) {
	mem := slot.NewMemory()
	repo := New(mem)

	halls := repo.AddProject(domain.Project{Name: "Silent Halls", Status: domain.ProjectConcept})
	pines := repo.AddProject(domain.Project{Name: "Hollow Pines", Status: domain.ProjectConcept})
	repo.SetCurrentProject(halls.ID)

	for _, name := range []string{"Entrance", "Library", "Crypt"} {
		repo.Levels.Add(domain.Level{
			ProjectID:  halls.ID,
			Name:       name,
			OrderIndex: NextOrder(repo.Levels, halls.ID),
			Status:     domain.LevelConcept,
		})
	}
	repo.Levels.Add(domain.Level{ProjectID: pines.ID, Name: "Cabin"})

	levels := Ordered(repo.Levels, halls.ID)
	require.Len(t, levels, 3)
	require.True(t, Move(repo.Levels, levels[2].ID, -1))

	var names []string
	for _, l := range Ordered(repo.Levels, halls.ID) {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Entrance", "Crypt", "Library"}, names)

	require.True(t, repo.DeleteProject(halls.ID))
	assert.Equal(t, pines.ID, repo.CurrentProjectID())
	assert.Equal(t, 0, repo.Levels.Count(halls.ID))
	assert.Equal(t, 1, repo.Levels.Count(pines.ID))

	reloaded := New(mem)
	assert.Equal(t, repo.Document(), reloaded.Document())
}

func TestExportFileName(t *testing.T) {
	at := time.UnixMilli(1760648400123)
	assert.Equal(t, "horror-game-dev-1760648400123.json", ExportFileName(at))
}
