package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/h0rv/dread/internal/domain"
	"github.com/h0rv/dread/internal/insight"
	"github.com/h0rv/dread/internal/store"
)

// Lines taken by the header, tab bar, panel borders and footer.
const dashboardChrome = 6

// DashboardModel shows one project: a Concept page plus one tab per
// collection.
type DashboardModel struct {
	// Dependencies
	repo      *store.Repository
	projectID string
	exportDir string

	// UI components
	keymap      KeyMap
	help        HelpModel
	filterInput textinput.Model
	addInput    textinput.Model

	// Tab state
	activeTab    int
	entries      []entry     // Filtered rows of the active tab
	selected     map[int]int // Tab -> selected row
	scrollOffset map[int]int // Tab -> first visible row

	// View state
	width         int
	height        int
	showHelp      bool
	filterMode    bool
	filterText    string
	addMode       bool
	confirmDelete bool
	lastExport    string
	toast         string
	errorToast    string
}

// NewDashboardModel creates a dashboard for the project with projectID.
func NewDashboardModel(repo *store.Repository, projectID, exportDir string) DashboardModel {
	fi := textinput.New()
	fi.Placeholder = "Filter..."
	fi.Prompt = "/ "

	ai := textinput.New()
	ai.Placeholder = "Title..."
	ai.Prompt = "+ "
	ai.CharLimit = 200

	m := DashboardModel{
		repo:         repo,
		projectID:    projectID,
		exportDir:    exportDir,
		keymap:       DefaultKeyMap(),
		help:         NewHelpModel(DefaultKeyMap()),
		filterInput:  fi,
		addInput:     ai,
		selected:     make(map[int]int),
		scrollOffset: make(map[int]int),
	}
	m.refresh()
	return m
}

// Init initializes the dashboard.
func (m DashboardModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustScroll()
		return m, nil

	case ErrorMsg:
		m.errorToast = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m DashboardModel) kind() domain.Collection {
	return tabs[m.activeTab].kind
}

// refresh reloads the active tab from the repository and clamps the
// selection to the rows that survive the filter.
func (m *DashboardModel) refresh() {
	if m.kind() == "" {
		m.entries = nil
		return
	}

	rows := loadEntries(m.repo, m.kind(), m.projectID)
	if m.filterText != "" {
		rows = insight.Filter(rows, func(e entry) bool {
			return insight.Contains(m.filterText, e.title, e.meta, e.body)
		})
	}
	m.entries = rows

	if sel := m.selected[m.activeTab]; sel >= len(rows) {
		m.selected[m.activeTab] = max(len(rows)-1, 0)
	}
	m.adjustScroll()
}

// selectID moves the cursor to the row with id, if it is visible.
func (m *DashboardModel) selectID(id string) {
	for i, e := range m.entries {
		if e.id == id {
			m.selected[m.activeTab] = i
			m.adjustScroll()
			return
		}
	}
}

func (m DashboardModel) selectedEntry() (entry, bool) {
	if len(m.entries) == 0 {
		return entry{}, false
	}
	return m.entries[m.selected[m.activeTab]], true
}

// handleKeyPress processes keyboard input.
func (m DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		if msg.String() == "?" || msg.String() == "q" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	if m.filterMode {
		switch msg.String() {
		case "enter":
			m.filterMode = false
			m.filterText = strings.TrimSpace(m.filterInput.Value())
			m.filterInput.Blur()
			m.refresh()
			return m, nil
		case "esc":
			m.filterMode = false
			m.filterInput.SetValue(m.filterText)
			m.filterInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
	}

	if m.addMode {
		return m.handleAddMode(msg)
	}

	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "y" {
			m.deleteSelected()
		}
		return m, nil
	}

	m.toast, m.errorToast = "", ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(1)
	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keymap.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keymap.Top):
		m.jumpTo(0)
	case key.Matches(msg, m.keymap.Bottom):
		m.jumpTo(-1)
	case key.Matches(msg, m.keymap.Projects):
		return m, func() tea.Msg { return openPickerMsg{} }
	case key.Matches(msg, m.keymap.Export):
		path, err := exportBackup(m.repo, m.exportDir)
		if err != nil {
			m.errorToast = err.Error()
			return m, nil
		}
		m.lastExport = path
		m.toast = "Exported to " + path
	case key.Matches(msg, m.keymap.OpenFile):
		if m.lastExport != "" {
			return m, openFile(m.lastExport)
		}
		m.errorToast = "nothing exported yet"
	case key.Matches(msg, m.keymap.Status):
		return m, m.openStatusPicker()
	}

	// Everything below acts on the rows of a collection tab.
	if m.kind() == "" {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Filter):
		m.filterMode = true
		m.filterInput.SetValue(m.filterText)
		cmd := m.filterInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keymap.Add):
		m.addMode = true
		m.addInput.Reset()
		cmd := m.addInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keymap.Toggle):
		if e, ok := m.selectedEntry(); ok && e.done != nil {
			toggleEntry(m.repo, e.kind, e.id)
			m.refresh()
			m.selectID(e.id)
		}
	case key.Matches(msg, m.keymap.MoveUp):
		m.moveSelected(-1)
	case key.Matches(msg, m.keymap.MoveDown):
		m.moveSelected(1)
	case key.Matches(msg, m.keymap.Delete):
		if _, ok := m.selectedEntry(); ok {
			m.confirmDelete = true
		}
	case key.Matches(msg, m.keymap.Open):
		if e, ok := m.selectedEntry(); ok {
			return m, func() tea.Msg { return openDetailMsg{entry: e} }
		}
	}

	return m, nil
}

// handleAddMode reads the title of a new row.
func (m DashboardModel) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.addMode = false
		m.addInput.Blur()
		return m, nil
	case "enter":
		id, err := addEntry(m.repo, m.kind(), m.projectID, strings.TrimSpace(m.addInput.Value()))
		if err != nil {
			m.errorToast = err.Error()
			return m, nil
		}
		m.addMode = false
		m.addInput.Blur()
		m.refresh()
		m.selectID(id)
		return m, nil
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m *DashboardModel) switchTab(delta int) {
	n := len(tabs)
	m.activeTab = ((m.activeTab+delta)%n + n) % n
	m.refresh()
}

// moveSelection moves the cursor by delta rows, clamped to the list.
func (m *DashboardModel) moveSelection(delta int) {
	if len(m.entries) == 0 {
		return
	}
	idx := m.selected[m.activeTab] + delta
	idx = max(0, min(idx, len(m.entries)-1))
	m.selected[m.activeTab] = idx
	m.adjustScroll()
}

// jumpTo selects row idx. Use -1 to jump to the last row.
func (m *DashboardModel) jumpTo(idx int) {
	if len(m.entries) == 0 {
		return
	}
	if idx < 0 || idx >= len(m.entries) {
		idx = len(m.entries) - 1
	}
	m.selected[m.activeTab] = idx
	m.adjustScroll()
}

// moveSelected reorders the selected story element or level.
func (m *DashboardModel) moveSelected(delta int) {
	e, ok := m.selectedEntry()
	if !ok {
		return
	}
	if m.kind() != domain.StoryElements && m.kind() != domain.Levels {
		m.errorToast = "only story and levels can be reordered"
		return
	}
	if m.filterText != "" {
		m.errorToast = "clear the filter to reorder"
		return
	}
	if moveEntry(m.repo, e.kind, e.id, delta) {
		m.refresh()
		m.selectID(e.id)
	}
}

func (m *DashboardModel) deleteSelected() {
	e, ok := m.selectedEntry()
	if !ok {
		return
	}
	c, err := m.repo.Collection(e.kind)
	if err != nil {
		m.errorToast = err.Error()
		return
	}
	if c.Delete(e.id) {
		m.toast = fmt.Sprintf("Deleted %q", e.title)
	}
	m.refresh()
}

// openStatusPicker asks for a new status of the project (Concept tab) or
// of the selected row.
func (m DashboardModel) openStatusPicker() tea.Cmd {
	if m.kind() == "" {
		p, ok := m.repo.Project(m.projectID)
		if !ok {
			return nil
		}
		picker := NewStatusPickerModel("Project status", "", p.ID, statusOptions(""), string(p.Status))
		return func() tea.Msg { return openStatusPickerMsg{picker: picker} }
	}

	e, ok := m.selectedEntry()
	options := statusOptions(e.kind)
	if !ok || len(options) == 0 {
		return nil
	}
	picker := NewStatusPickerModel("Status of "+e.title, e.kind, e.id, options, e.status)
	return func() tea.Msg { return openStatusPickerMsg{picker: picker} }
}

// visibleRows is how many rows fit in the list panel.
func (m DashboardModel) visibleRows() int {
	rows := m.height - dashboardChrome
	if m.filterMode || m.addMode {
		rows--
	}
	return max(rows, 3)
}

// adjustScroll ensures the selected row is visible.
func (m *DashboardModel) adjustScroll() {
	sel := m.selected[m.activeTab]
	offset := m.scrollOffset[m.activeTab]
	visible := m.visibleRows()

	if sel < offset {
		offset = sel
	}
	if sel >= offset+visible {
		offset = sel - visible + 1
	}
	m.scrollOffset[m.activeTab] = offset
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	project, ok := m.repo.Project(m.projectID)
	if !ok {
		return ErrorStyle.Render("This project no longer exists.") + "\n\n" +
			dimStyle.Render("[p]projects [q]quit")
	}

	if m.showHelp {
		return m.renderHeader(project, width) + "\n" + m.help.View(width)
	}

	var sections []string
	sections = append(sections, m.renderHeader(project, width))
	sections = append(sections, m.renderTabs())

	panelHeight := height - dashboardChrome + borderSize
	if m.filterMode || m.addMode {
		panelHeight--
	}
	var body string
	if m.kind() == "" {
		body = m.renderConcept(project, width-4)
	} else {
		body = m.renderRows(width - 4)
	}
	sections = append(sections, panelStyle.
		Width(width-2).
		Height(max(panelHeight-borderSize, 3)).
		Render(body))

	switch {
	case m.filterMode:
		sections = append(sections, m.filterInput.View())
	case m.addMode:
		sections = append(sections, m.addInput.View())
	}
	sections = append(sections, m.renderFooter(width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the project name with row counts on the right.
func (m DashboardModel) renderHeader(p domain.Project, width int) string {
	title := fmt.Sprintf("%s (%s)", p.Name, p.Status)

	var statusParts []string
	if m.kind() != "" {
		statusParts = append(statusParts, fmt.Sprintf("%d rows", len(m.entries)))
	}
	if m.filterText != "" {
		statusParts = append(statusParts, "/"+m.filterText)
	}
	statusParts = append(statusParts, "[p]projects [?]help")
	status := strings.Join(statusParts, " | ")

	padding := width - lipgloss.Width(title) - lipgloss.Width(status) - 2
	if padding < 1 {
		padding = 1
	}
	return headerStyle.Render(title) + strings.Repeat(" ", padding) + dimStyle.Render(status)
}

func (m DashboardModel) renderTabs() string {
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := t.title
		if t.kind != "" {
			if c, err := m.repo.Collection(t.kind); err == nil {
				label = fmt.Sprintf("%s %d", t.title, c.Count(m.projectID))
			}
		}
		if i == m.activeTab {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = inactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderConcept renders the project pitch, attributes and progress.
func (m DashboardModel) renderConcept(p domain.Project, width int) string {
	var b strings.Builder

	concept := p.Concept
	if concept == "" {
		concept = dimStyle.Render("No concept yet. Set one with: dread project update " + p.ID + " --concept ...")
	}
	b.WriteString(wordwrap.String(concept, width))
	b.WriteString("\n\n")

	for _, f := range conceptFields(p) {
		b.WriteString(detailLabelStyle.Render(fmt.Sprintf("%-15s", f.label)))
		b.WriteString(detailValueStyle.Render(f.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Progress"))
	b.WriteString("\n")
	for _, line := range progressLines(m.repo, p.ID, m.repo.Now()) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderRows renders the visible window of the active tab.
func (m DashboardModel) renderRows(width int) string {
	if len(m.entries) == 0 {
		if m.filterText != "" {
			return dimStyle.Render("No rows match the filter.")
		}
		return dimStyle.Render("Nothing here yet. Press a to add one.")
	}

	ordered := m.kind() == domain.StoryElements || m.kind() == domain.Levels
	offset := m.scrollOffset[m.activeTab]
	end := min(offset+m.visibleRows(), len(m.entries))

	var lines []string
	if offset > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↑ %d more", offset)))
	}
	for i := offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, ordered, width))
	}
	if end < len(m.entries) {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↓ %d more", len(m.entries)-end)))
	}
	return strings.Join(lines, "\n")
}

func (m DashboardModel) renderRow(i int, ordered bool, width int) string {
	e := m.entries[i]

	var prefix string
	if e.done != nil {
		if *e.done {
			prefix = "[x] "
		} else {
			prefix = "[ ] "
		}
	}
	if ordered {
		prefix += fmt.Sprintf("%d. ", i+1)
	}

	meta := dimStyle.Render(e.meta)
	titleWidth := width - 2 - len(prefix) - lipgloss.Width(meta) - 2
	title := truncate.StringWithTail(e.title, uint(max(titleWidth, 8)), "…")
	padding := max(width-2-len(prefix)-lipgloss.Width(title)-lipgloss.Width(meta), 1)

	if i == m.selected[m.activeTab] {
		return SelectedItemStyle.Render("> "+prefix+title) + strings.Repeat(" ", padding) + meta
	}
	return NormalItemStyle.Render("  "+prefix+title) + strings.Repeat(" ", padding) + meta
}

// renderFooter shows the pending confirmation, a toast or the key hints.
func (m DashboardModel) renderFooter(width int) string {
	switch {
	case m.confirmDelete:
		e, _ := m.selectedEntry()
		return confirmStyle.Render(fmt.Sprintf("Delete %q? (y/n)", e.title))
	case m.errorToast != "":
		return ErrorStyle.Render("✗ " + m.errorToast)
	case m.toast != "":
		return successStyle.Render("✓ " + m.toast)
	}
	return m.help.Short(width)
}

// openStatusPickerMsg asks the app to show a status picker.
type openStatusPickerMsg struct {
	picker StatusPickerModel
}
