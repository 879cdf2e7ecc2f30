package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func createTestTask() Task {
	return Task{
		ID:        "task-1",
		ProjectID: "proj-1",
		Title:     "Block out level 1",
		Category:  TaskDesign,
		Status:    TaskTodo,
		Priority:  PriorityHigh,
		CreatedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestProjectPatch_OnlySetFieldsChange(t *testing.T) {
	p := Project{ID: "p1", Name: "Silent Halls", Engine: "Godot", Status: ProjectConcept}

	got := ProjectPatch{Engine: ptr("Unreal"), Status: ptr(ProjectProduction)}.Apply(p)

	assert.Equal(t, "Silent Halls", got.Name)
	assert.Equal(t, "Unreal", got.Engine)
	assert.Equal(t, ProjectProduction, got.Status)
	assert.Equal(t, "Godot", p.Engine, "the input patch target is left alone")
}

func TestTaskPatch_ClearDueDate(t *testing.T) {
	task := createTestTask()
	task.DueDate = "2026-11-01"

	got := TaskPatch{DueDate: ptr("")}.Apply(task)
	assert.Empty(t, got.DueDate)

	got = TaskPatch{Title: ptr("Light the corridor")}.Apply(task)
	assert.Equal(t, "2026-11-01", got.DueDate)
	assert.Equal(t, "Light the corridor", got.Title)
}

func TestTaskStatusPatch_StampsAndClearsCompletedAt(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	task := createTestTask()

	done := TaskStatusPatch(TaskCompleted, now).Apply(task)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now, *done.CompletedAt)
	assert.Equal(t, TaskCompleted, done.Status)

	reopened := TaskStatusPatch(TaskInProgress, now).Apply(done)
	assert.Nil(t, reopened.CompletedAt)
	assert.Equal(t, TaskInProgress, reopened.Status)
}

func TestToggleTask(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	task := createTestTask()

	task = ToggleTask(task, now).Apply(task)
	assert.Equal(t, TaskCompleted, task.Status)
	assert.NotNil(t, task.CompletedAt)

	task = ToggleTask(task, now).Apply(task)
	assert.Equal(t, TaskTodo, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestToggleCheckboxes(t *testing.T) {
	h := HorrorElement{Name: "Mirror scare"}
	h = ToggleHorrorImplemented(h).Apply(h)
	assert.True(t, h.Implemented)
	h = ToggleHorrorImplemented(h).Apply(h)
	assert.False(t, h.Implemented)

	m := MarketingActivity{Title: "Announce trailer"}
	m = ToggleMarketingCompleted(m).Apply(m)
	assert.True(t, m.Completed)
}

func TestWithIdentity_OverridesIdentityOnly(t *testing.T) {
	task := createTestTask()
	id := Identity{ID: "task-2", ProjectID: "proj-2", CreatedAt: time.Unix(0, 0).UTC()}

	got := task.WithIdentity(id)

	assert.Equal(t, id, got.Identity())
	assert.Equal(t, task.Title, got.Title)
}

func TestValidate_EmptyName(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"project", Project{Name: "  "}.Validate()},
		{"story", StoryElement{}.Validate()},
		{"system", GameSystem{}.Validate()},
		{"task", Task{Title: "\t"}.Validate()},
		{"asset", Asset{}.Validate()},
		{"horror", HorrorElement{}.Validate()},
		{"level", Level{}.Validate()},
		{"marketing", MarketingActivity{}.Validate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, ErrEmptyName))
		})
	}

	assert.NoError(t, Level{Name: "Basement"}.Validate())
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2026-10-31")
	require.True(t, ok)
	assert.Equal(t, 31, d.Day())

	_, ok = ParseDate("2026-10-31T23:00:00Z")
	assert.True(t, ok)

	_, ok = ParseDate("next friday")
	assert.False(t, ok)

	_, ok = ParseDate("")
	assert.False(t, ok)
}
