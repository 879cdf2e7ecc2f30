package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/h0rv/dread/internal/domain"
	"github.com/h0rv/dread/internal/insight"
	"github.com/h0rv/dread/internal/store"
)

func newShowCmd(a *app) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Summarize the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.repo.CurrentProject()
			if !ok {
				return errNoProject
			}
			md := projectMarkdown(a.repo, p, time.Now())
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			return renderMarkdown(cmd.OutOrStdout(), md)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without rendering it")
	return cmd
}

// projectMarkdown renders the project overview: concept, progress counters,
// the ordered story and level lists and systems by category.
func projectMarkdown(r *store.Repository, p domain.Project, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	fmt.Fprintf(&b, "*Status: %s*\n\n", p.Status)
	if p.Concept != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Concept)
	}

	details := []struct{ label, value string }{
		{"Setting", p.Setting},
		{"Theme", p.Theme},
		{"Perspective", p.Perspective},
		{"Gameplay focus", p.GameplayFocus},
		{"Unique hook", p.UniqueHook},
		{"Engine", p.Engine},
		{"Target platform", p.TargetPlatform},
	}
	for _, d := range details {
		if d.value != "" {
			fmt.Fprintf(&b, "- **%s:** %s\n", d.label, d.value)
		}
	}
	b.WriteString("\n## Progress\n\n")

	tasks := insight.Tasks(r.Tasks.List(p.ID))
	assets := insight.Assets(r.Assets.List(p.ID))
	horror := insight.Horror(r.HorrorElements.List(p.ID))
	marketing := insight.Marketing(r.MarketingActivities.List(p.ID), now)
	systems := insight.Systems(r.GameSystems.List(p.ID))

	b.WriteString("| Area | Done | Total | Notes |\n|---|---|---|---|\n")
	fmt.Fprintf(&b, "| Tasks | %d | %d | %d todo, %d in progress |\n", tasks.Completed, tasks.Total, tasks.Todo, tasks.InProgress)
	fmt.Fprintf(&b, "| Systems | %d | %d | %d planned, %d in progress |\n", systems.Completed, systems.Total, systems.Planned, systems.InProgress)
	fmt.Fprintf(&b, "| Assets | %d | %d | %d needed, %d in progress |\n", assets.Completed, assets.Total, assets.Needed, assets.InProgress)
	fmt.Fprintf(&b, "| Scares | %d | %d | %d%% implemented |\n", horror.Implemented, horror.Total, insight.Percent(horror.Implemented, horror.Total))
	fmt.Fprintf(&b, "| Marketing | %d | %d | %d upcoming |\n", marketing.Completed, marketing.Total, marketing.Upcoming)

	if story := store.Ordered(r.StoryElements, p.ID); len(story) > 0 {
		b.WriteString("\n## Story\n\n")
		for _, s := range story {
			fmt.Fprintf(&b, "### %s (%s)\n\n", s.Title, s.Type)
			if s.Content != "" {
				fmt.Fprintf(&b, "%s\n\n", s.Content)
			}
		}
	}

	if rows := r.GameSystems.List(p.ID); len(rows) > 0 {
		b.WriteString("\n## Systems\n\n")
		byCategory := insight.GroupBy(rows, func(s domain.GameSystem) domain.SystemCategory { return s.Category })
		for _, g := range byCategory {
			fmt.Fprintf(&b, "### %s\n\n", g.Key)
			for _, s := range g.Rows {
				fmt.Fprintf(&b, "- **%s** (%s, %s priority)\n", s.Name, s.Status, s.Priority)
			}
			b.WriteString("\n")
		}
	}

	if levels := store.Ordered(r.Levels, p.ID); len(levels) > 0 {
		b.WriteString("\n## Levels\n\n")
		for i, l := range levels {
			fmt.Fprintf(&b, "%d. **%s** (%s)", i+1, l.Name, l.Status)
			if l.Description != "" {
				fmt.Fprintf(&b, ": %s", l.Description)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderMarkdown styles md for the terminal w writes to, falling back to
// plain output when w is not a terminal.
func renderMarkdown(w io.Writer, md string) error {
	width := 80
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("notty")}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = cols
		}
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle()}
	}
	opts = append(opts, glamour.WithWordWrap(width))

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	fmt.Fprint(w, out)
	return nil
}
