package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h0rv/dread/internal/domain"
)

func storyTitles(rows []domain.StoryElement) []string {
	titles := make([]string, len(rows))
	for i, r := range rows {
		titles[i] = r.Title
	}
	return titles
}

func TestNextOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))

	assert.Equal(t, 0, NextOrder(repo.StoryElements, p.ID))
	repo.StoryElements.Add(domain.StoryElement{ProjectID: p.ID, Title: "Prologue"})
	assert.Equal(t, 1, NextOrder(repo.StoryElements, p.ID))
	assert.Equal(t, 0, NextOrder(repo.StoryElements, "other"))
}

func TestOrdered_StableOnTies(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))
	repo.StoryElements.Add(domain.StoryElement{ProjectID: p.ID, Title: "b", OrderIndex: 1})
	repo.StoryElements.Add(domain.StoryElement{ProjectID: p.ID, Title: "a", OrderIndex: 0})
	repo.StoryElements.Add(domain.StoryElement{ProjectID: p.ID, Title: "c", OrderIndex: 1})

	assert.Equal(t, []string{"a", "b", "c"}, storyTitles(Ordered(repo.StoryElements, p.ID)))
}

func TestMove(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))
	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		row := repo.StoryElements.Add(domain.StoryElement{
			ProjectID:  p.ID,
			Title:      title,
			OrderIndex: NextOrder(repo.StoryElements, p.ID),
		})
		ids = append(ids, row.ID)
	}

	require.True(t, Move(repo.StoryElements, ids[0], 1))
	rows := Ordered(repo.StoryElements, p.ID)
	assert.Equal(t, []string{"two", "one", "three"}, storyTitles(rows))
	for i, r := range rows {
		assert.Equal(t, i, r.OrderIndex)
	}

	// Out of range moves change nothing
	assert.False(t, Move(repo.StoryElements, ids[1], -5))
	assert.False(t, Move(repo.StoryElements, ids[2], 1))
	assert.False(t, Move(repo.StoryElements, "missing", 1))
	assert.False(t, Move(repo.StoryElements, ids[0], 0))
	assert.Equal(t, []string{"two", "one", "three"}, storyTitles(Ordered(repo.StoryElements, p.ID)))
}

func TestMove_RenumbersGaps(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))
	a := repo.Levels.Add(domain.Level{ProjectID: p.ID, Name: "a", OrderIndex: 3})
	repo.Levels.Add(domain.Level{ProjectID: p.ID, Name: "b", OrderIndex: 7})
	repo.Levels.Add(domain.Level{ProjectID: p.ID, Name: "c", OrderIndex: 10})

	require.True(t, Move(repo.Levels, a.ID, 2))

	var got []int
	var names []string
	for _, l := range Ordered(repo.Levels, p.ID) {
		got = append(got, l.OrderIndex)
		names = append(names, l.Name)
	}
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, []string{"b", "c", "a"}, names)
}

func TestMove_ExtremeOrderIndexes(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := repo.AddProject(createTestProject("Silent Halls"))
	high := repo.StoryElements.Add(domain.StoryElement{ProjectID: p.ID, Title: "high", OrderIndex: math.MaxInt - 1})
	repo.StoryElements.Add(domain.StoryElement{ProjectID: p.ID, Title: "low", OrderIndex: math.MinInt + 1})

	assert.Equal(t, []string{"low", "high"}, storyTitles(Ordered(repo.StoryElements, p.ID)))

	require.True(t, Move(repo.StoryElements, high.ID, -1))
	rows := Ordered(repo.StoryElements, p.ID)
	assert.Equal(t, []string{"high", "low"}, storyTitles(rows))
	assert.Equal(t, 0, rows[0].OrderIndex)
	assert.Equal(t, 1, rows[1].OrderIndex)
}
