package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/h0rv/dread/internal/domain"
	"github.com/h0rv/dread/internal/store"
)

// projectItem wraps a domain.Project for use in bubbles/list.
type projectItem struct {
	project domain.Project
	current bool
}

func (i projectItem) FilterValue() string {
	return i.project.Name
}

func (i projectItem) Title() string {
	if i.current {
		return i.project.Name + " *"
	}
	return i.project.Name
}

func (i projectItem) Description() string {
	desc := string(i.project.Status)
	if i.project.Engine != "" {
		desc += " · " + i.project.Engine
	}
	return desc + " · updated " + i.project.UpdatedAt.Local().Format("2006-01-02 15:04")
}

// projectDelegate is a custom item delegate for project items.
type projectDelegate struct{}

func (d projectDelegate) Height() int                             { return 2 }
func (d projectDelegate) Spacing() int                            { return 1 }
func (d projectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(projectItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())
	desc := i.Description()

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+str))
		fmt.Fprint(w, "\n  "+NormalItemStyle.Render(desc))
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+str))
		fmt.Fprint(w, "\n  "+dimStyle.Render(desc))
	}
}

func projectItems(repo *store.Repository) []list.Item {
	current := repo.CurrentProjectID()
	projects := repo.Projects()
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = projectItem{project: p, current: p.ID == current}
	}
	return items
}

// ProjectPickerModel lists the projects and lets the user open, create,
// delete or back them up.
type ProjectPickerModel struct {
	repo      *store.Repository
	list      list.Model
	exportDir string

	confirmDelete bool
	status        string
	err           error
}

// NewProjectPickerModel creates a new ProjectPickerModel.
func NewProjectPickerModel(repo *store.Repository, exportDir string) ProjectPickerModel {
	l := list.New(projectItems(repo), projectDelegate{}, 80, 20)
	l.Title = "Horror projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("project", "projects")
	l.Styles.Title = TitleStyle
	l.KeyMap.Quit.SetEnabled(false)

	return ProjectPickerModel{
		repo:      repo,
		list:      l,
		exportDir: exportDir,
	}
}

// Init initializes the model.
func (m ProjectPickerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages and updates the model state.
func (m ProjectPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width - 2)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering ||
			(msg.String() == "esc" && m.list.FilterState() == list.FilterApplied) {
			break
		}
		if m.confirmDelete {
			return m.handleConfirm(msg)
		}

		m.status, m.err = "", nil
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, func() tea.Msg {
				return QuitMsg{}
			}
		case "enter":
			if item, ok := m.list.SelectedItem().(projectItem); ok {
				return m, func() tea.Msg {
					return ProjectSelectedMsg{ID: item.project.ID}
				}
			}
			return m, nil
		case "n":
			return m, func() tea.Msg {
				return openNewProjectMsg{}
			}
		case "d":
			if _, ok := m.list.SelectedItem().(projectItem); ok {
				m.confirmDelete = true
			}
			return m, nil
		case "x":
			path, err := exportBackup(m.repo, m.exportDir)
			if err != nil {
				m.err = err
			} else {
				m.status = "Exported to " + path
			}
			return m, nil
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleConfirm resolves a pending delete: y removes the project and
// everything it owns, any other key cancels.
func (m ProjectPickerModel) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmDelete = false
	item, ok := m.list.SelectedItem().(projectItem)
	if !ok || msg.String() != "y" {
		return m, nil
	}

	m.repo.DeleteProject(item.project.ID)
	m.status = fmt.Sprintf("Deleted %q", item.project.Name)
	cmd := m.list.SetItems(projectItems(m.repo))
	return m, cmd
}

// View renders the model.
func (m ProjectPickerModel) View() string {
	view := m.list.View()

	switch {
	case m.confirmDelete:
		item, _ := m.list.SelectedItem().(projectItem)
		view += "\n" + confirmStyle.Render(fmt.Sprintf("Delete %q and all its records? (y/n)", item.project.Name))
	case m.err != nil:
		view += "\n" + ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		view += "\n" + successStyle.Render(m.status)
	}

	view += "\n" + HelpStyle.Render("enter: open • n: new • d: delete • x: export • /: filter • q: quit")
	return view
}
