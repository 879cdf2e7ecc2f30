package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/h0rv/dread/internal/domain"
	"github.com/h0rv/dread/internal/insight"
	"github.com/h0rv/dread/internal/store"
)

type column[T any] struct {
	header string
	value  func(T) string
}

// kind describes how one child collection is driven from the command line.
type kind[T domain.Row[T], P domain.Patch[T]] struct {
	use     string
	aliases []string
	noun    string
	table   func(*store.Repository) *store.Table[T]
	fields  []field[P]
	primary string // field that may also be given as the first argument of add
	label   func(T) string
	columns []column[T]

	// Optional hooks.
	patch   func(r *store.Repository, p P) domain.Patch[T]
	prepare func(t *store.Table[T], row T) T
	sort    func([]T) []T
	extra   func(a *app) []*cobra.Command
}

func newCollectionCmds(a *app) []*cobra.Command {
	return []*cobra.Command{
		storyKind.command(a),
		systemKind.command(a),
		taskKind.command(a),
		assetKind.command(a),
		horrorKind.command(a),
		levelKind.command(a),
		marketingKind.command(a),
	}
}

func (k kind[T, P]) command(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     k.use,
		Aliases: k.aliases,
		Short:   fmt.Sprintf("Manage the %ss of the current project", k.noun),
	}
	cmd.AddCommand(k.addCmd(a), k.listCmd(a), k.updateCmd(a), k.deleteCmd(a))
	if k.extra != nil {
		cmd.AddCommand(k.extra(a)...)
	}
	return cmd
}

func (k kind[T, P]) makePatch(r *store.Repository, p P) domain.Patch[T] {
	if k.patch != nil {
		return k.patch(r, p)
	}
	return p
}

func (k kind[T, P]) addCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("add [%s]", k.primary),
		Short: fmt.Sprintf("Add a %s to the current project", k.noun),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := a.currentProject()
			if err != nil {
				return err
			}

			var p P
			if err := applyFields(cmd, k.fields, &p, true); err != nil {
				return err
			}
			if len(args) == 1 {
				if err := k.setPrimary(&p, args[0]); err != nil {
					return err
				}
			}

			var zero T
			row := k.makePatch(a.repo, p).Apply(zero.WithIdentity(domain.Identity{ProjectID: projectID}))
			if err := row.Validate(); err != nil {
				return err
			}
			t := k.table(a.repo)
			if k.prepare != nil {
				row = k.prepare(t, row)
			}
			row = t.Add(row)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (%s)\n", k.noun, k.label(row), row.Identity().ID)
			return nil
		},
	}
	addFieldFlags(cmd, k.fields)
	return cmd
}

func (k kind[T, P]) setPrimary(p *P, v string) error {
	for _, f := range k.fields {
		if f.name == k.primary {
			return f.set(p, v)
		}
	}
	return fmt.Errorf("%s has no field %q", k.noun, k.primary)
}

func (k kind[T, P]) listCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List the %ss of the current project", k.noun),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := a.currentProject()
			if err != nil {
				return err
			}

			rows := k.table(a.repo).List(projectID)
			if k.sort != nil {
				rows = k.sort(rows)
			}
			rows = insight.Filter(rows, func(row T) bool {
				return insight.Contains(filter, k.cells(row)...)
			})
			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %ss.\n", k.noun)
				return nil
			}

			headers := []string{"ID"}
			for _, c := range k.columns {
				headers = append(headers, c.header)
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers(headers...)
			for _, row := range rows {
				t.Row(append([]string{row.Identity().ID}, k.cells(row)...)...)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "Only show rows containing this text")
	return cmd
}

func (k kind[T, P]) cells(row T) []string {
	out := make([]string, len(k.columns))
	for i, c := range k.columns {
		out[i] = c.value(row)
	}
	return out
}

func (k kind[T, P]) updateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Change %s fields", k.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := k.table(a.repo)
			current, ok := t.Get(args[0])
			if !ok {
				return fmt.Errorf("%s %s not found", k.noun, args[0])
			}

			var p P
			if err := applyFields(cmd, k.fields, &p, false); err != nil {
				return err
			}
			patch := k.makePatch(a.repo, p)
			if err := patch.Apply(current).Validate(); err != nil {
				return err
			}
			t.Update(args[0], patch)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", k.noun, args[0])
			return nil
		},
	}
	addFieldFlags(cmd, k.fields)
	return cmd
}

func (k kind[T, P]) deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a %s", k.noun),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !k.table(a.repo).Delete(args[0]) {
				return fmt.Errorf("%s %s not found", k.noun, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", k.noun, args[0])
			return nil
		},
	}
}

// moveCmd reorders rows of an ordered collection.
func moveCmd[T domain.OrderedRow[T]](a *app, noun string, tbl func(*store.Repository) *store.Table[T]) *cobra.Command {
	return &cobra.Command{
		Use:       "move <id> up|down",
		Short:     fmt.Sprintf("Move a %s one place up or down", noun),
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			delta := 0
			switch strings.ToLower(args[1]) {
			case "up":
				delta = -1
			case "down":
				delta = 1
			default:
				return fmt.Errorf("direction must be up or down, got %q", args[1])
			}
			t := tbl(a.repo)
			if _, ok := t.Get(args[0]); !ok {
				return fmt.Errorf("%s %s not found", noun, args[0])
			}
			if !store.Move(t, args[0], delta) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is already at the %s\n", noun, args[0], map[int]string{-1: "top", 1: "bottom"}[delta])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s %s %s\n", noun, args[0], args[1])
			return nil
		},
	}
}

// toggleCmd flips the checkbox of a checklist row.
func toggleCmd[T domain.Row[T]](a *app, use, noun string, tbl func(*store.Repository) *store.Table[T], toggle func(r *store.Repository, row T) domain.Patch[T], state func(T) string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: fmt.Sprintf("Toggle a %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := tbl(a.repo)
			row, ok := t.Get(args[0])
			if !ok {
				return fmt.Errorf("%s %s not found", noun, args[0])
			}
			t.Update(args[0], toggle(a.repo, row))
			row, _ = t.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", noun, args[0], state(row))
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func storyTable(r *store.Repository) *store.Table[domain.StoryElement] { return r.StoryElements }
func systemTable(r *store.Repository) *store.Table[domain.GameSystem]  { return r.GameSystems }
func taskTable(r *store.Repository) *store.Table[domain.Task]          { return r.Tasks }
func assetTable(r *store.Repository) *store.Table[domain.Asset]        { return r.Assets }
func horrorTable(r *store.Repository) *store.Table[domain.HorrorElement] {
	return r.HorrorElements
}
func levelTable(r *store.Repository) *store.Table[domain.Level] { return r.Levels }
func marketingTable(r *store.Repository) *store.Table[domain.MarketingActivity] {
	return r.MarketingActivities
}

var storyKind = kind[domain.StoryElement, domain.StoryElementPatch]{
	use:     "story",
	aliases: []string{"storyElements"},
	noun:    "story element",
	table:   storyTable,
	primary: "title",
	fields: []field[domain.StoryElementPatch]{
		enumField("type", "Kind of story element", domain.StoryTypes, domain.StoryOutline,
			func(p *domain.StoryElementPatch, v domain.StoryType) { p.Type = &v }),
		textField("title", "Title", func(p *domain.StoryElementPatch, v string) { p.Title = &v }),
		textField("content", "Body text (markdown)", func(p *domain.StoryElementPatch, v string) { p.Content = &v }),
	},
	label: func(s domain.StoryElement) string { return s.Title },
	columns: []column[domain.StoryElement]{
		{"#", func(s domain.StoryElement) string { return fmt.Sprint(s.OrderIndex) }},
		{"TYPE", func(s domain.StoryElement) string { return string(s.Type) }},
		{"TITLE", func(s domain.StoryElement) string { return s.Title }},
	},
	prepare: func(t *store.Table[domain.StoryElement], row domain.StoryElement) domain.StoryElement {
		return row.WithOrder(store.NextOrder(t, row.ProjectID))
	},
	sort: insight.SortByOrder[domain.StoryElement],
	extra: func(a *app) []*cobra.Command {
		return []*cobra.Command{moveCmd(a, "story element", storyTable)}
	},
}

var systemKind = kind[domain.GameSystem, domain.GameSystemPatch]{
	use:     "systems",
	aliases: []string{"system", "gameSystems"},
	noun:    "game system",
	table:   systemTable,
	primary: "name",
	fields: []field[domain.GameSystemPatch]{
		enumField("category", "System category", domain.SystemCategories, domain.SystemPlayer,
			func(p *domain.GameSystemPatch, v domain.SystemCategory) { p.Category = &v }),
		textField("name", "Name", func(p *domain.GameSystemPatch, v string) { p.Name = &v }),
		textField("description", "Description", func(p *domain.GameSystemPatch, v string) { p.Description = &v }),
		enumField("status", "Progress", domain.WorkStatuses, domain.WorkPlanned,
			func(p *domain.GameSystemPatch, v domain.WorkStatus) { p.Status = &v }),
		enumField("priority", "Priority", domain.Priorities, domain.PriorityMedium,
			func(p *domain.GameSystemPatch, v domain.Priority) { p.Priority = &v }),
	},
	label: func(g domain.GameSystem) string { return g.Name },
	columns: []column[domain.GameSystem]{
		{"NAME", func(g domain.GameSystem) string { return g.Name }},
		{"CATEGORY", func(g domain.GameSystem) string { return string(g.Category) }},
		{"STATUS", func(g domain.GameSystem) string { return string(g.Status) }},
		{"PRIORITY", func(g domain.GameSystem) string { return string(g.Priority) }},
	},
}

var taskKind = kind[domain.Task, domain.TaskPatch]{
	use:     "tasks",
	aliases: []string{"task"},
	noun:    "task",
	table:   taskTable,
	primary: "title",
	fields: []field[domain.TaskPatch]{
		textField("title", "Title", func(p *domain.TaskPatch, v string) { p.Title = &v }),
		textField("description", "Description", func(p *domain.TaskPatch, v string) { p.Description = &v }),
		enumField("category", "Discipline", domain.TaskCategories, domain.TaskDesign,
			func(p *domain.TaskPatch, v domain.TaskCategory) { p.Category = &v }),
		enumField("status", "Progress", domain.TaskStatuses, domain.TaskTodo,
			func(p *domain.TaskPatch, v domain.TaskStatus) { p.Status = &v }),
		enumField("priority", "Priority", domain.Priorities, domain.PriorityMedium,
			func(p *domain.TaskPatch, v domain.Priority) { p.Priority = &v }),
		dateField("due", "Due date", func(p *domain.TaskPatch, v string) { p.DueDate = &v }),
	},
	label: func(t domain.Task) string { return t.Title },
	columns: []column[domain.Task]{
		{"TITLE", func(t domain.Task) string { return t.Title }},
		{"CATEGORY", func(t domain.Task) string { return string(t.Category) }},
		{"STATUS", func(t domain.Task) string { return string(t.Status) }},
		{"PRIORITY", func(t domain.Task) string { return string(t.Priority) }},
		{"DUE", func(t domain.Task) string { return t.DueDate }},
	},
	// A status change also stamps or clears the completion time.
	patch: func(r *store.Repository, p domain.TaskPatch) domain.Patch[domain.Task] {
		if p.Status == nil {
			return p
		}
		status := domain.TaskStatusPatch(*p.Status, r.Now())
		return domain.PatchFunc[domain.Task](func(t domain.Task) domain.Task {
			return status.Apply(p.Apply(t))
		})
	},
	extra: func(a *app) []*cobra.Command {
		state := func(t domain.Task) string { return string(t.Status) }
		return []*cobra.Command{
			toggleCmd(a, "done", "task", taskTable,
				func(r *store.Repository, _ domain.Task) domain.Patch[domain.Task] {
					return domain.TaskStatusPatch(domain.TaskCompleted, r.Now())
				}, state),
			toggleCmd(a, "toggle", "task", taskTable,
				func(r *store.Repository, t domain.Task) domain.Patch[domain.Task] {
					return domain.ToggleTask(t, r.Now())
				}, state),
		}
	},
}

var assetKind = kind[domain.Asset, domain.AssetPatch]{
	use:     "assets",
	aliases: []string{"asset"},
	noun:    "asset",
	table:   assetTable,
	primary: "name",
	fields: []field[domain.AssetPatch]{
		textField("name", "Name", func(p *domain.AssetPatch, v string) { p.Name = &v }),
		enumField("type", "Asset type", domain.AssetTypes, domain.Asset3DModel,
			func(p *domain.AssetPatch, v domain.AssetType) { p.Type = &v }),
		enumField("status", "Production state", domain.AssetStatuses, domain.AssetNeeded,
			func(p *domain.AssetPatch, v domain.AssetStatus) { p.Status = &v }),
		textField("file", "Path of the asset file", func(p *domain.AssetPatch, v string) { p.FilePath = &v }),
		textField("notes", "Notes", func(p *domain.AssetPatch, v string) { p.Notes = &v }),
	},
	label: func(a domain.Asset) string { return a.Name },
	columns: []column[domain.Asset]{
		{"NAME", func(a domain.Asset) string { return a.Name }},
		{"TYPE", func(a domain.Asset) string { return string(a.Type) }},
		{"STATUS", func(a domain.Asset) string { return string(a.Status) }},
		{"FILE", func(a domain.Asset) string { return a.FilePath }},
	},
}

var horrorKind = kind[domain.HorrorElement, domain.HorrorElementPatch]{
	use:     "horror",
	aliases: []string{"horrorElements", "scares"},
	noun:    "horror element",
	table:   horrorTable,
	primary: "name",
	fields: []field[domain.HorrorElementPatch]{
		enumField("type", "Kind of scare", domain.HorrorTypes, domain.HorrorAtmosphere,
			func(p *domain.HorrorElementPatch, v domain.HorrorType) { p.Type = &v }),
		textField("name", "Name", func(p *domain.HorrorElementPatch, v string) { p.Name = &v }),
		textField("description", "Description", func(p *domain.HorrorElementPatch, v string) { p.Description = &v }),
		textField("trigger", "What sets it off", func(p *domain.HorrorElementPatch, v string) { p.Trigger = &v }),
		boolField("implemented", "Already in the game", func(p *domain.HorrorElementPatch, v bool) { p.Implemented = &v }),
	},
	label: func(h domain.HorrorElement) string { return h.Name },
	columns: []column[domain.HorrorElement]{
		{"NAME", func(h domain.HorrorElement) string { return h.Name }},
		{"TYPE", func(h domain.HorrorElement) string { return string(h.Type) }},
		{"TRIGGER", func(h domain.HorrorElement) string { return h.Trigger }},
		{"DONE", func(h domain.HorrorElement) string { return yesNo(h.Implemented) }},
	},
	extra: func(a *app) []*cobra.Command {
		return []*cobra.Command{
			toggleCmd(a, "toggle", "horror element", horrorTable,
				func(_ *store.Repository, h domain.HorrorElement) domain.Patch[domain.HorrorElement] {
					return domain.ToggleHorrorImplemented(h)
				},
				func(h domain.HorrorElement) string {
					if h.Implemented {
						return "implemented"
					}
					return "not implemented"
				}),
		}
	},
}

var levelKind = kind[domain.Level, domain.LevelPatch]{
	use:     "levels",
	aliases: []string{"level"},
	noun:    "level",
	table:   levelTable,
	primary: "name",
	fields: []field[domain.LevelPatch]{
		textField("name", "Name", func(p *domain.LevelPatch, v string) { p.Name = &v }),
		textField("description", "Description", func(p *domain.LevelPatch, v string) { p.Description = &v }),
		enumField("status", "Build state", domain.LevelStatuses, domain.LevelConcept,
			func(p *domain.LevelPatch, v domain.LevelStatus) { p.Status = &v }),
		textField("notes", "Notes", func(p *domain.LevelPatch, v string) { p.Notes = &v }),
	},
	label: func(l domain.Level) string { return l.Name },
	columns: []column[domain.Level]{
		{"#", func(l domain.Level) string { return fmt.Sprint(l.OrderIndex) }},
		{"NAME", func(l domain.Level) string { return l.Name }},
		{"STATUS", func(l domain.Level) string { return string(l.Status) }},
	},
	prepare: func(t *store.Table[domain.Level], row domain.Level) domain.Level {
		return row.WithOrder(store.NextOrder(t, row.ProjectID))
	},
	sort: insight.SortByOrder[domain.Level],
	extra: func(a *app) []*cobra.Command {
		return []*cobra.Command{moveCmd(a, "level", levelTable)}
	},
}

var marketingKind = kind[domain.MarketingActivity, domain.MarketingActivityPatch]{
	use:     "marketing",
	aliases: []string{"marketingActivities"},
	noun:    "marketing activity",
	table:   marketingTable,
	primary: "title",
	fields: []field[domain.MarketingActivityPatch]{
		enumField("type", "Kind of activity", domain.ActivityTypes, domain.ActivitySocialPost,
			func(p *domain.MarketingActivityPatch, v domain.ActivityType) { p.ActivityType = &v }),
		textField("title", "Title", func(p *domain.MarketingActivityPatch, v string) { p.Title = &v }),
		textField("description", "Description", func(p *domain.MarketingActivityPatch, v string) { p.Description = &v }),
		dateField("date", "Scheduled date", func(p *domain.MarketingActivityPatch, v string) { p.ScheduledDate = &v }),
		boolField("completed", "Already done", func(p *domain.MarketingActivityPatch, v bool) { p.Completed = &v }),
	},
	label: func(m domain.MarketingActivity) string { return m.Title },
	columns: []column[domain.MarketingActivity]{
		{"DATE", func(m domain.MarketingActivity) string { return m.ScheduledDate }},
		{"TITLE", func(m domain.MarketingActivity) string { return m.Title }},
		{"TYPE", func(m domain.MarketingActivity) string { return string(m.ActivityType) }},
		{"DONE", func(m domain.MarketingActivity) string { return yesNo(m.Completed) }},
	},
	sort: insight.SortBySchedule,
	extra: func(a *app) []*cobra.Command {
		return []*cobra.Command{
			toggleCmd(a, "toggle", "marketing activity", marketingTable,
				func(_ *store.Repository, m domain.MarketingActivity) domain.Patch[domain.MarketingActivity] {
					return domain.ToggleMarketingCompleted(m)
				},
				func(m domain.MarketingActivity) string {
					if m.Completed {
						return "completed"
					}
					return "open"
				}),
		}
	},
}
