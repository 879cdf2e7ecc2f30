package insight

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/h0rv/dread/internal/domain"
)

func TestSortByOrder(t *testing.T) {
	rows := []domain.Level{
		{Name: "c", OrderIndex: 2},
		{Name: "a", OrderIndex: 0},
		{Name: "b1", OrderIndex: 1},
		{Name: "b2", OrderIndex: 1},
	}

	sorted := SortByOrder(rows)

	var names []string
	for _, l := range sorted {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, names)
	assert.Equal(t, "c", rows[0].Name, "input must not be reordered")

	far := SortByOrder([]domain.Level{
		{Name: "high", OrderIndex: math.MaxInt - 1},
		{Name: "low", OrderIndex: math.MinInt + 1},
		{Name: "zero", OrderIndex: 0},
	})
	assert.Equal(t, "low", far[0].Name)
	assert.Equal(t, "zero", far[1].Name)
	assert.Equal(t, "high", far[2].Name)
}

func TestSortBySchedule(t *testing.T) {
	rows := []domain.MarketingActivity{
		{Title: "undated 1"},
		{Title: "december", ScheduledDate: "2026-12-01"},
		{Title: "undated 2"},
		{Title: "november", ScheduledDate: "2026-11-01"},
	}

	var titles []string
	for _, m := range SortBySchedule(rows) {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"november", "december", "undated 1", "undated 2"}, titles)
}

func TestFilterAndGroupBy(t *testing.T) {
	tasks := []domain.Task{
		{Title: "Rig monster", Category: domain.TaskArt, Status: domain.TaskTodo},
		{Title: "Footsteps", Category: domain.TaskAudio, Status: domain.TaskCompleted},
		{Title: "Paint walls", Category: domain.TaskArt, Status: domain.TaskCompleted},
	}

	done := Filter(tasks, func(t domain.Task) bool { return t.Status == domain.TaskCompleted })
	assert.Len(t, done, 2)
	assert.Empty(t, Filter(tasks, func(domain.Task) bool { return false }))

	groups := GroupBy(tasks, func(t domain.Task) domain.TaskCategory { return t.Category })
	if assert.Len(t, groups, 2) {
		assert.Equal(t, domain.TaskArt, groups[0].Key)
		assert.Len(t, groups[0].Rows, 2)
		assert.Equal(t, domain.TaskAudio, groups[1].Key)
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("", "anything"))
	assert.True(t, Contains("MIRROR", "The mirror cracks"))
	assert.True(t, Contains("hall", "nope", "Silent Halls"))
	assert.False(t, Contains("attic", "Basement", "Crypt"))
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, TaskStats{Total: 3, Todo: 1, InProgress: 1, Completed: 1}, Tasks([]domain.Task{
		{Status: domain.TaskTodo}, {Status: domain.TaskInProgress}, {Status: domain.TaskCompleted},
	}))

	assert.Equal(t, AssetStats{Total: 2, Needed: 1, Completed: 1}, Assets([]domain.Asset{
		{Status: domain.AssetNeeded}, {Status: domain.AssetCompleted},
	}))

	assert.Equal(t, HorrorStats{Total: 2, Implemented: 1}, Horror([]domain.HorrorElement{
		{Implemented: true}, {},
	}))

	assert.Equal(t, MarketingStats{Total: 4, Completed: 1, Upcoming: 1}, Marketing([]domain.MarketingActivity{
		{Completed: true, ScheduledDate: "2026-12-01"},
		{ScheduledDate: "2026-12-01"},
		{ScheduledDate: "2026-01-01"},
		{},
	}, now))

	assert.Equal(t, SystemStats{Total: 2, Planned: 1, InProgress: 1}, Systems([]domain.GameSystem{
		{Status: domain.WorkPlanned}, {Status: domain.WorkInProgress},
	}))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(3, 0))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 33, Percent(1, 3))
}
