package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/h0rv/dread/internal/domain"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects", "p"},
		Short:   "Create, select and remove projects",
	}
	cmd.AddCommand(
		newProjectNewCmd(a),
		newProjectListCmd(a),
		newProjectSelectCmd(a),
		newProjectUpdateCmd(a),
		newProjectDeleteCmd(a),
		newProjectCurrentCmd(a),
	)
	return cmd
}

// projectFields are the editable project attributes, shared by new and update.
var projectFields = []field[domain.ProjectPatch]{
	textField("name", "Project name", func(p *domain.ProjectPatch, v string) { p.Name = &v }),
	textField("concept", "One-paragraph pitch", func(p *domain.ProjectPatch, v string) { p.Concept = &v }),
	textField("setting", "Where and when the game takes place", func(p *domain.ProjectPatch, v string) { p.Setting = &v }),
	textField("theme", "Core theme or fear", func(p *domain.ProjectPatch, v string) { p.Theme = &v }),
	textField("perspective", "Camera perspective", func(p *domain.ProjectPatch, v string) { p.Perspective = &v }),
	textField("gameplay-focus", "Main gameplay focus", func(p *domain.ProjectPatch, v string) { p.GameplayFocus = &v }),
	textField("hook", "What makes it unique", func(p *domain.ProjectPatch, v string) { p.UniqueHook = &v }),
	textField("engine", "Game engine", func(p *domain.ProjectPatch, v string) { p.Engine = &v }),
	textField("platform", "Target platform", func(p *domain.ProjectPatch, v string) { p.TargetPlatform = &v }),
	enumField("status", "Production phase", domain.ProjectStatuses, domain.ProjectConcept,
		func(p *domain.ProjectPatch, v domain.ProjectStatus) { p.Status = &v }),
}

func newProjectNewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a project and make it current",
		Long: `Create a project and make it current.

Without a name, an interactive form is shown when the terminal allows it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.ProjectPatch
			if err := applyFields(cmd, projectFields, &patch, true); err != nil {
				return err
			}
			if len(args) == 1 {
				patch.Name = &args[0]
			}

			if patch.Name == nil || strings.TrimSpace(*patch.Name) == "" {
				if f, ok := cmd.InOrStdin().(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
					return fmt.Errorf("project: %w", domain.ErrEmptyName)
				}
				if err := promptProject(&patch); err != nil {
					return err
				}
			}

			p := patch.Apply(domain.Project{})
			if err := p.Validate(); err != nil {
				return err
			}
			p = a.repo.AddProject(p)
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %q (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	addFieldFlags(cmd, projectFields)
	return cmd
}

// promptProject asks for the fields a new project usually starts with.
func promptProject(patch *domain.ProjectPatch) error {
	var name, concept, setting string
	status := domain.ProjectConcept

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&name).
				Validate(func(s string) error { return domain.Project{Name: s}.Validate() }),
			huh.NewText().
				Title("Concept").
				Description("The one-paragraph pitch").
				Value(&concept),
			huh.NewInput().
				Title("Setting").
				Value(&setting),
			huh.NewSelect[domain.ProjectStatus]().
				Title("Status").
				Options(huh.NewOptions(domain.ProjectStatuses...)...).
				Value(&status),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("cancelled")
		}
		return err
	}

	patch.Name = &name
	patch.Concept = &concept
	patch.Setting = &setting
	patch.Status = &status
	return nil
}

func newProjectListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects; the current one is marked with *",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := a.repo.Projects()
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects yet.")
				return nil
			}

			current := a.repo.CurrentProjectID()
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("", "ID", "NAME", "STATUS", "ENGINE", "UPDATED")
			for _, p := range projects {
				mark := ""
				if p.ID == current {
					mark = "*"
				}
				t.Row(mark, p.ID, p.Name, string(p.Status), p.Engine, p.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}

func newProjectSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id|name>",
		Short: "Make a project current, by id or by fuzzy name match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := findProject(a.repo.Projects(), args[0])
			if err != nil {
				return err
			}
			a.repo.SetCurrentProject(p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Current project: %s\n", p.Name)
			return nil
		},
	}
}

// findProject matches query against project ids exactly, then against names
// fuzzily, returning the best-scoring match.
func findProject(projects []domain.Project, query string) (domain.Project, error) {
	for _, p := range projects {
		if p.ID == query {
			return p, nil
		}
	}

	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return domain.Project{}, fmt.Errorf("no project matches %q", query)
	}
	return projects[matches[0].Index], nil
}

func newProjectUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.ProjectPatch
			if err := applyFields(cmd, projectFields, &patch, false); err != nil {
				return err
			}
			if patch.Name != nil {
				if err := (domain.Project{Name: *patch.Name}).Validate(); err != nil {
					return err
				}
			}
			if !a.repo.UpdateProject(args[0], patch) {
				return fmt.Errorf("project %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", args[0])
			return nil
		},
	}
	addFieldFlags(cmd, projectFields)
	return cmd
}

func newProjectDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project and everything that belongs to it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.repo.DeleteProject(args[0]) {
				return fmt.Errorf("project %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}
}

func newProjectCurrentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.repo.CurrentProject()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No project selected.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.ID, p.Name)
			return nil
		},
	}
}
