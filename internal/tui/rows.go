package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/h0rv/dread/internal/domain"
	"github.com/h0rv/dread/internal/insight"
	"github.com/h0rv/dread/internal/store"
)

// entry is one record of a collection, flattened for display.
type entry struct {
	kind   domain.Collection
	id     string
	title  string
	meta   string
	status string
	// done is nil for records without a checkbox.
	done   *bool
	fields []detailField
	body   string
}

type detailField struct {
	label string
	value string
}

// tab is one page of the dashboard. The Concept tab has no collection.
type tab struct {
	title string
	kind  domain.Collection
}

var tabs = []tab{
	{title: "Concept"},
	{title: "Story", kind: domain.StoryElements},
	{title: "Systems", kind: domain.GameSystems},
	{title: "Tasks", kind: domain.Tasks},
	{title: "Assets", kind: domain.Assets},
	{title: "Horror", kind: domain.HorrorElements},
	{title: "Levels", kind: domain.Levels},
	{title: "Marketing", kind: domain.MarketingActivities},
}

func ptr[T any](v T) *T { return &v }

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// loadEntries returns the rows of kind for projectID in display order.
func loadEntries(repo *store.Repository, kind domain.Collection, projectID string) []entry {
	var out []entry
	switch kind {
	case domain.StoryElements:
		for _, s := range insight.SortByOrder(repo.StoryElements.List(projectID)) {
			out = append(out, entry{
				kind: kind, id: s.ID, title: s.Title, meta: string(s.Type),
				fields: []detailField{{"Type", string(s.Type)}, {"Position", strconv.Itoa(s.OrderIndex + 1)}},
				body:   s.Content,
			})
		}
	case domain.GameSystems:
		for _, g := range repo.GameSystems.List(projectID) {
			out = append(out, entry{
				kind: kind, id: g.ID, title: g.Name, status: string(g.Status),
				meta: fmt.Sprintf("%s · %s · %s", g.Category, g.Status, g.Priority),
				fields: []detailField{
					{"Category", string(g.Category)}, {"Status", string(g.Status)}, {"Priority", string(g.Priority)},
				},
				body: g.Description,
			})
		}
	case domain.Tasks:
		for _, t := range repo.Tasks.List(projectID) {
			completed := "-"
			if t.CompletedAt != nil {
				completed = t.CompletedAt.Local().Format("2006-01-02 15:04")
			}
			meta := fmt.Sprintf("%s · %s", t.Category, t.Priority)
			if t.DueDate != "" {
				meta += " · due " + t.DueDate
			}
			out = append(out, entry{
				kind: kind, id: t.ID, title: t.Title, meta: meta, status: string(t.Status),
				done: ptr(t.Status == domain.TaskCompleted),
				fields: []detailField{
					{"Category", string(t.Category)}, {"Status", string(t.Status)}, {"Priority", string(t.Priority)},
					{"Due", orDash(t.DueDate)}, {"Completed", completed},
				},
				body: t.Description,
			})
		}
	case domain.Assets:
		for _, a := range repo.Assets.List(projectID) {
			out = append(out, entry{
				kind: kind, id: a.ID, title: a.Name, status: string(a.Status),
				meta: fmt.Sprintf("%s · %s", a.Type, a.Status),
				fields: []detailField{
					{"Type", string(a.Type)}, {"Status", string(a.Status)}, {"File", orDash(a.FilePath)},
				},
				body: a.Notes,
			})
		}
	case domain.HorrorElements:
		for _, h := range repo.HorrorElements.List(projectID) {
			out = append(out, entry{
				kind: kind, id: h.ID, title: h.Name, meta: string(h.Type),
				done: ptr(h.Implemented),
				fields: []detailField{
					{"Type", string(h.Type)}, {"Trigger", orDash(h.Trigger)}, {"Implemented", strconv.FormatBool(h.Implemented)},
				},
				body: h.Description,
			})
		}
	case domain.Levels:
		for _, l := range insight.SortByOrder(repo.Levels.List(projectID)) {
			out = append(out, entry{
				kind: kind, id: l.ID, title: l.Name, meta: string(l.Status), status: string(l.Status),
				fields: []detailField{
					{"Status", string(l.Status)}, {"Position", strconv.Itoa(l.OrderIndex + 1)}, {"Notes", orDash(l.Notes)},
				},
				body: l.Description,
			})
		}
	case domain.MarketingActivities:
		for _, a := range insight.SortBySchedule(repo.MarketingActivities.List(projectID)) {
			meta := string(a.ActivityType)
			if a.ScheduledDate != "" {
				meta += " · " + a.ScheduledDate
			}
			out = append(out, entry{
				kind: kind, id: a.ID, title: a.Title, meta: meta,
				done: ptr(a.Completed),
				fields: []detailField{
					{"Type", string(a.ActivityType)}, {"Scheduled", orDash(a.ScheduledDate)},
					{"Completed", strconv.FormatBool(a.Completed)},
				},
				body: a.Description,
			})
		}
	}
	return out
}

// toggleEntry flips the checkbox of a task, horror element or marketing
// activity. It reports false for other kinds or a missing id.
func toggleEntry(repo *store.Repository, kind domain.Collection, id string) bool {
	switch kind {
	case domain.Tasks:
		t, ok := repo.Tasks.Get(id)
		return ok && repo.Tasks.Update(id, domain.ToggleTask(t, repo.Now()))
	case domain.HorrorElements:
		h, ok := repo.HorrorElements.Get(id)
		return ok && repo.HorrorElements.Update(id, domain.ToggleHorrorImplemented(h))
	case domain.MarketingActivities:
		m, ok := repo.MarketingActivities.Get(id)
		return ok && repo.MarketingActivities.Update(id, domain.ToggleMarketingCompleted(m))
	}
	return false
}

// moveEntry shifts a story element or level by delta positions.
func moveEntry(repo *store.Repository, kind domain.Collection, id string, delta int) bool {
	switch kind {
	case domain.StoryElements:
		return store.Move(repo.StoryElements, id, delta)
	case domain.Levels:
		return store.Move(repo.Levels, id, delta)
	}
	return false
}

// addEntry creates a record of kind named title with default attributes.
func addEntry(repo *store.Repository, kind domain.Collection, projectID, title string) (string, error) {
	switch kind {
	case domain.StoryElements:
		row := domain.StoryElement{ProjectID: projectID, Title: title, Type: domain.StoryOutline,
			OrderIndex: store.NextOrder(repo.StoryElements, projectID)}
		if err := row.Validate(); err != nil {
			return "", err
		}
		return repo.StoryElements.Add(row).ID, nil
	case domain.GameSystems:
		row := domain.GameSystem{ProjectID: projectID, Name: title, Category: domain.SystemPlayer,
			Status: domain.WorkPlanned, Priority: domain.PriorityMedium}
		if err := row.Validate(); err != nil {
			return "", err
		}
		return repo.GameSystems.Add(row).ID, nil
	case domain.Tasks:
		row := domain.Task{ProjectID: projectID, Title: title, Category: domain.TaskDesign,
			Status: domain.TaskTodo, Priority: domain.PriorityMedium}
		if err := row.Validate(); err != nil {
			return "", err
		}
		return repo.Tasks.Add(row).ID, nil
	case domain.Assets:
		row := domain.Asset{ProjectID: projectID, Name: title, Type: domain.Asset3DModel, Status: domain.AssetNeeded}
		if err := row.Validate(); err != nil {
			return "", err
		}
		return repo.Assets.Add(row).ID, nil
	case domain.HorrorElements:
		row := domain.HorrorElement{ProjectID: projectID, Name: title, Type: domain.HorrorAtmosphere}
		if err := row.Validate(); err != nil {
			return "", err
		}
		return repo.HorrorElements.Add(row).ID, nil
	case domain.Levels:
		row := domain.Level{ProjectID: projectID, Name: title, Status: domain.LevelConcept,
			OrderIndex: store.NextOrder(repo.Levels, projectID)}
		if err := row.Validate(); err != nil {
			return "", err
		}
		return repo.Levels.Add(row).ID, nil
	case domain.MarketingActivities:
		row := domain.MarketingActivity{ProjectID: projectID, Title: title, ActivityType: domain.ActivitySocialPost}
		if err := row.Validate(); err != nil {
			return "", err
		}
		return repo.MarketingActivities.Add(row).ID, nil
	}
	return "", fmt.Errorf("cannot add to %s", kind)
}

func stringsOf[E ~string](values []E) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// statusOptions lists the statuses a record of kind can take. The empty
// collection stands for the project itself.
func statusOptions(kind domain.Collection) []string {
	switch kind {
	case "":
		return stringsOf(domain.ProjectStatuses)
	case domain.GameSystems:
		return stringsOf(domain.WorkStatuses)
	case domain.Tasks:
		return stringsOf(domain.TaskStatuses)
	case domain.Assets:
		return stringsOf(domain.AssetStatuses)
	case domain.Levels:
		return stringsOf(domain.LevelStatuses)
	}
	return nil
}

// applyStatus sets the status of the record with id. For the empty
// collection id names a project.
func applyStatus(repo *store.Repository, kind domain.Collection, id, value string) bool {
	switch kind {
	case "":
		return repo.UpdateProject(id, domain.ProjectPatch{Status: ptr(domain.ProjectStatus(value))})
	case domain.GameSystems:
		return repo.GameSystems.Update(id, domain.GameSystemPatch{Status: ptr(domain.WorkStatus(value))})
	case domain.Tasks:
		return repo.Tasks.Update(id, domain.TaskStatusPatch(domain.TaskStatus(value), repo.Now()))
	case domain.Assets:
		return repo.Assets.Update(id, domain.AssetPatch{Status: ptr(domain.AssetStatus(value))})
	case domain.Levels:
		return repo.Levels.Update(id, domain.LevelPatch{Status: ptr(domain.LevelStatus(value))})
	}
	return false
}

// conceptFields lists the project attributes shown on the Concept tab.
func conceptFields(p domain.Project) []detailField {
	return []detailField{
		{"Status", string(p.Status)},
		{"Setting", orDash(p.Setting)},
		{"Theme", orDash(p.Theme)},
		{"Perspective", orDash(p.Perspective)},
		{"Gameplay focus", orDash(p.GameplayFocus)},
		{"Unique hook", orDash(p.UniqueHook)},
		{"Engine", orDash(p.Engine)},
		{"Platform", orDash(p.TargetPlatform)},
	}
}

// progressLines summarizes the project's collections for the Concept tab.
func progressLines(repo *store.Repository, projectID string, now time.Time) []string {
	tasks := insight.Tasks(repo.Tasks.List(projectID))
	systems := insight.Systems(repo.GameSystems.List(projectID))
	assets := insight.Assets(repo.Assets.List(projectID))
	horror := insight.Horror(repo.HorrorElements.List(projectID))
	marketing := insight.Marketing(repo.MarketingActivities.List(projectID), now)

	return []string{
		fmt.Sprintf("Tasks      %d/%d done (%d%%), %d in progress",
			tasks.Completed, tasks.Total, insight.Percent(tasks.Completed, tasks.Total), tasks.InProgress),
		fmt.Sprintf("Systems    %d/%d completed, %d in progress",
			systems.Completed, systems.Total, systems.InProgress),
		fmt.Sprintf("Assets     %d/%d completed, %d needed",
			assets.Completed, assets.Total, assets.Needed),
		fmt.Sprintf("Horror     %d/%d implemented (%d%%)",
			horror.Implemented, horror.Total, insight.Percent(horror.Implemented, horror.Total)),
		fmt.Sprintf("Marketing  %d/%d done, %d upcoming",
			marketing.Completed, marketing.Total, marketing.Upcoming),
		fmt.Sprintf("Story      %d elements · Levels %d",
			repo.StoryElements.Count(projectID), repo.Levels.Count(projectID)),
	}
}

// bodyLabel names the free-text field edited from the detail view.
func bodyLabel(kind domain.Collection) string {
	switch kind {
	case domain.StoryElements:
		return "Content"
	case domain.Assets:
		return "Notes"
	}
	return "Description"
}

// applyBody replaces the free-text field of the record with id.
func applyBody(repo *store.Repository, kind domain.Collection, id, text string) bool {
	switch kind {
	case domain.StoryElements:
		return repo.StoryElements.Update(id, domain.StoryElementPatch{Content: &text})
	case domain.GameSystems:
		return repo.GameSystems.Update(id, domain.GameSystemPatch{Description: &text})
	case domain.Tasks:
		return repo.Tasks.Update(id, domain.TaskPatch{Description: &text})
	case domain.Assets:
		return repo.Assets.Update(id, domain.AssetPatch{Notes: &text})
	case domain.HorrorElements:
		return repo.HorrorElements.Update(id, domain.HorrorElementPatch{Description: &text})
	case domain.Levels:
		return repo.Levels.Update(id, domain.LevelPatch{Description: &text})
	case domain.MarketingActivities:
		return repo.MarketingActivities.Update(id, domain.MarketingActivityPatch{Description: &text})
	}
	return false
}
