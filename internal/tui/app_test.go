package tui

import (
	"os"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/h0rv/dread/internal/domain"
	"github.com/h0rv/dread/internal/slot"
	"github.com/h0rv/dread/internal/store"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	app, ok := model.(AppModel)
	require.True(t, ok)
	return app, cmd
}

func TestAppModel_StartsOnPickerWithoutProject(t *testing.T) {
	repo := store.New(slot.NewMemory())
	app := NewAppModel(repo, zap.NewNop())

	assert.Equal(t, ScreenProjectPicker, app.Screen())
	assert.NotPanics(t, func() { _ = app.View() })
}

func TestAppModel_StartsOnDashboardOfCurrentProject(t *testing.T) {
	repo, p := createTestRepo(t)
	app := NewAppModel(repo, nil)

	require.Equal(t, ScreenDashboard, app.Screen())
	assert.Equal(t, p.ID, app.dashboard.projectID)
}

func TestAppModel_CreateProjectFlow(t *testing.T) {
	repo := store.New(slot.NewMemory())
	app := NewAppModel(repo, zap.NewNop())

	app, _ = update(t, app, openNewProjectMsg{})
	require.Equal(t, ScreenNewProject, app.Screen())

	app, _ = update(t, app, cancelFormMsg{})
	require.Equal(t, ScreenProjectPicker, app.Screen())

	app, _ = update(t, app, openNewProjectMsg{})
	app, _ = update(t, app, ProjectCreatedMsg{Name: "Silent Halls", Concept: "Asylum"})

	require.Equal(t, ScreenDashboard, app.Screen())
	current, ok := repo.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, "Silent Halls", current.Name)
	assert.Equal(t, domain.ProjectConcept, current.Status)
	assert.Equal(t, current.ID, app.dashboard.projectID)
}

func TestAppModel_SelectProjectSetsCurrent(t *testing.T) {
	repo, first := createTestRepo(t)
	second := repo.AddProject(domain.Project{Name: "Deep Water", Status: domain.ProjectConcept})
	app := NewAppModel(repo, nil)
	require.Equal(t, second.ID, app.dashboard.projectID)

	app, _ = update(t, app, runes("p"))
	app, _ = update(t, app, openPickerMsg{})
	require.Equal(t, ScreenProjectPicker, app.Screen())

	app, _ = update(t, app, ProjectSelectedMsg{ID: first.ID})

	assert.Equal(t, ScreenDashboard, app.Screen())
	assert.Equal(t, first.ID, repo.CurrentProjectID())
	assert.Equal(t, first.ID, app.dashboard.projectID)
}

func TestAppModel_DashboardStateSurvivesDetail(t *testing.T) {
	repo, _ := createTestRepo(t)
	app := NewAppModel(repo, nil)

	// Move to the Tasks tab and the second row
	for range tabIndex(domain.Tasks) {
		app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	}
	app, _ = update(t, app, runes("j"))
	require.Equal(t, tabIndex(domain.Tasks), app.dashboard.activeTab)

	e, ok := app.dashboard.selectedEntry()
	require.True(t, ok)
	app, _ = update(t, app, openDetailMsg{entry: e})
	require.Equal(t, ScreenDetail, app.Screen())

	app, _ = update(t, app, closeDetailMsg{})
	require.Equal(t, ScreenDashboard, app.Screen())
	assert.Equal(t, tabIndex(domain.Tasks), app.dashboard.activeTab)
	assert.Equal(t, 1, app.dashboard.selected[app.dashboard.activeTab])
}

func TestAppModel_StatusSelection(t *testing.T) {
	repo, p := createTestRepo(t)
	app := NewAppModel(repo, nil)
	task := repo.Tasks.List(p.ID)[0]

	picker := NewStatusPickerModel("Status", domain.Tasks, task.ID, statusOptions(domain.Tasks), string(task.Status))
	app, _ = update(t, app, openStatusPickerMsg{picker: picker})
	require.Equal(t, ScreenStatusPicker, app.Screen())

	app, _ = update(t, app, statusSelectedMsg{kind: domain.Tasks, id: task.ID, value: string(domain.TaskCompleted)})
	assert.Equal(t, ScreenDashboard, app.Screen())

	got, _ := repo.Tasks.Get(task.ID)
	assert.Equal(t, domain.TaskCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)

	// Project status from the Concept tab
	app, _ = update(t, app, statusSelectedMsg{kind: "", id: p.ID, value: string(domain.ProjectPolish)})
	updated, _ := repo.Project(p.ID)
	assert.Equal(t, domain.ProjectPolish, updated.Status)
}

func TestAppModel_QuitMsg(t *testing.T) {
	repo, _ := createTestRepo(t)
	app := NewAppModel(repo, nil)

	_, cmd := update(t, app, QuitMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStatusPickerModel(t *testing.T) {
	m := NewStatusPickerModel("Status", domain.Levels, "lvl", statusOptions(domain.Levels), string(domain.LevelDetailed))
	assert.Equal(t, 2, m.list.Index(), "Cursor starts on the current status")

	model, _ := m.Update(runes("j"))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, statusSelectedMsg{kind: domain.Levels, id: "lvl", value: string(domain.LevelPolished)}, cmd())

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, cancelFormMsg{}, cmd())
}

func TestProjectPickerModel_Keys(t *testing.T) {
	repo, p := createTestRepo(t)
	m := NewProjectPickerModel(repo, t.TempDir())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ProjectSelectedMsg{ID: p.ID}, cmd())

	_, cmd = m.Update(runes("n"))
	require.NotNil(t, cmd)
	assert.Equal(t, openNewProjectMsg{}, cmd())

	_, cmd = m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, QuitMsg{}, cmd())
}

func TestProjectPickerModel_DeleteAsksFirst(t *testing.T) {
	repo, p := createTestRepo(t)
	m := NewProjectPickerModel(repo, t.TempDir())

	model, _ := m.Update(runes("d"))
	m = model.(ProjectPickerModel)
	require.True(t, m.confirmDelete)
	assert.Contains(t, m.View(), "Delete \"Silent Halls\"")

	model, _ = m.Update(runes("n"))
	m = model.(ProjectPickerModel)
	_, ok := repo.Project(p.ID)
	assert.True(t, ok)

	model, _ = m.Update(runes("d"))
	model, _ = model.Update(runes("y"))
	m = model.(ProjectPickerModel)

	_, ok = repo.Project(p.ID)
	assert.False(t, ok)
	assert.Zero(t, repo.Tasks.Count(p.ID), "Children go with the project")
	assert.Empty(t, m.list.Items())
}

func TestProjectPickerModel_Export(t *testing.T) {
	repo, _ := createTestRepo(t)
	dir := t.TempDir()
	m := NewProjectPickerModel(repo, dir)

	model, _ := m.Update(runes("x"))
	m = model.(ProjectPickerModel)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Regexp(t, `^horror-game-dev-\d+\.json$`, files[0].Name())
	assert.Contains(t, m.status, files[0].Name())
}

func TestProjectPickerModel_FilteringSwallowsShortcuts(t *testing.T) {
	repo, _ := createTestRepo(t)
	m := NewProjectPickerModel(repo, t.TempDir())

	model, _ := m.Update(runes("/"))
	m = model.(ProjectPickerModel)
	require.Equal(t, list.Filtering, m.list.FilterState())

	model, _ = m.Update(runes("d"))
	m = model.(ProjectPickerModel)
	assert.False(t, m.confirmDelete)
}

func TestNewProjectModel_RequiresName(t *testing.T) {
	m := NewNewProjectModel()

	// Enter walks through the fields, then submits
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(NewProjectModel)

	assert.ErrorIs(t, m.err, domain.ErrEmptyName)
	assert.Equal(t, inputName, m.focus, "Focus returns to the name")

	for _, r := range "Silent Halls" {
		model, _ = model.Update(runes(string(r)))
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, ProjectCreatedMsg{Name: "Silent Halls"}, cmd())
}

func TestDetailModel_EditSaves(t *testing.T) {
	repo, p := createTestRepo(t)
	e := loadEntries(repo, domain.Tasks, p.ID)[0]
	m := NewDetailModel(repo, e)

	model, _ := m.Update(runes("e"))
	m = model.(DetailModel)
	require.True(t, m.editMode)

	m.editor.SetValue("Open on the night shift.")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = model.(DetailModel)

	assert.False(t, m.editMode)
	assert.Equal(t, "Saved", m.successMsg)
	task, _ := repo.Tasks.Get(e.id)
	assert.Equal(t, "Open on the night shift.", task.Description)
	assert.Contains(t, m.View(), "Open on the night shift.")
}

func TestDetailModel_UnsavedChangesAskFirst(t *testing.T) {
	repo, p := createTestRepo(t)
	e := loadEntries(repo, domain.StoryElements, p.ID)[0]
	m := NewDetailModel(repo, e)

	model, _ := m.Update(runes("e"))
	m = model.(DetailModel)
	m.editor.SetValue("draft")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(DetailModel)
	require.True(t, m.confirmExit)
	assert.Contains(t, m.View(), "Unsaved changes")

	model, _ = m.Update(runes("y"))
	m = model.(DetailModel)
	assert.False(t, m.editMode)
	s, _ := repo.StoryElements.Get(e.id)
	assert.Empty(t, s.Content, "Discarded edits are not written")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, closeDetailMsg{}, cmd())
}

func TestDetailModel_View(t *testing.T) {
	repo, p := createTestRepo(t)
	e := loadEntries(repo, domain.Tasks, p.ID)[0]
	m := NewDetailModel(repo, e)

	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = model.(DetailModel)

	var view string
	require.NotPanics(t, func() { view = m.View() })
	assert.Contains(t, view, "Write intro")
	assert.Contains(t, view, "Priority")
	assert.Contains(t, view, "high")
}
