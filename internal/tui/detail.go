package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/h0rv/dread/internal/store"
)

// Layout constants
const (
	leftPanelRatio = 0.35 // Left panel takes 35% of width
	minLeftWidth   = 30
	maxLeftWidth   = 50
	headerHeight   = 1
	footerHeight   = 1
	borderSize     = 2 // Top + bottom border
	editorHeight   = 8
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("203"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	focusedPanelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("160"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)
)

// DetailModel shows one record: attributes on the left, its free text on
// the right. The free text can be edited in place.
type DetailModel struct {
	repo  *store.Repository
	entry entry

	editor   textarea.Model
	viewport viewport.Model

	editMode    bool
	confirmExit bool // Show "unsaved changes" prompt
	errorMsg    string
	successMsg  string

	width  int
	height int
}

// NewDetailModel creates a new detail view model.
func NewDetailModel(repo *store.Repository, e entry) DetailModel {
	ta := textarea.New()
	ta.Placeholder = "Write " + strings.ToLower(bodyLabel(e.kind)) + "..."
	ta.CharLimit = 65535
	ta.SetHeight(editorHeight - borderSize)
	ta.SetWidth(40) // Will be resized
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("228"))
	ta.BlurredStyle.Base = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	vp := viewport.New(40, 10) // Will be resized in WindowSizeMsg
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := DetailModel{
		repo:     repo,
		entry:    e,
		editor:   ta,
		viewport: vp,
	}
	m.updateViewportContent()
	return m
}

// Init initializes the detail model.
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if !m.editMode {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	if m.editMode {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *DetailModel) panelWidths(width int) (left, right int) {
	left = int(float64(width) * leftPanelRatio)
	if left < minLeftWidth {
		left = minLeftWidth
	}
	if left > maxLeftWidth {
		left = maxLeftWidth
	}
	right = width - left - 1 // 1 char gap
	if right < 30 {
		right = 30
	}
	return left, right
}

// resizeComponents calculates and sets component dimensions.
func (m *DetailModel) resizeComponents() {
	_, rightWidth := m.panelWidths(m.width)

	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 10 {
		contentHeight = 10
	}

	m.viewport.Width = rightWidth - borderSize - 2
	m.viewport.Height = contentHeight - borderSize - 2 // Title line and gap
	if m.editMode {
		m.viewport.Height -= editorHeight
	}
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.editor.SetWidth(rightWidth - borderSize - 2)

	m.updateViewportContent()
}

func (m *DetailModel) updateViewportContent() {
	body := m.entry.body
	if strings.TrimSpace(body) == "" {
		m.viewport.SetContent(dimStyle.Render("Nothing written yet. Press e to write."))
		return
	}
	m.viewport.SetContent(wordwrap.String(body, m.viewport.Width))
}

// handleKeyPress processes keyboard input.
func (m DetailModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirmExit {
		switch msg.String() {
		case "y", "Y":
			// Discard edits
			m.confirmExit = false
			m.stopEditing()
			return m, nil
		case "n", "N", "esc":
			m.confirmExit = false
			return m, nil
		case "s", "S":
			m.confirmExit = false
			m.save()
			return m, nil
		}
		return m, nil
	}

	// The editor gets every key except save and cancel.
	if m.editMode {
		switch msg.String() {
		case "esc":
			if m.editor.Value() != m.entry.body {
				m.confirmExit = true
				return m, nil
			}
			m.stopEditing()
			return m, nil
		case "ctrl+s":
			m.save()
			return m, nil
		default:
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "esc":
		return m, func() tea.Msg { return closeDetailMsg{} }
	case "e":
		m.editMode = true
		m.errorMsg, m.successMsg = "", ""
		m.editor.SetValue(m.entry.body)
		m.resizeComponents()
		m.editor.Focus()
		return m, textarea.Blink
	case "j", "down":
		m.viewport.LineDown(1)
	case "k", "up":
		m.viewport.LineUp(1)
	case "ctrl+d":
		m.viewport.HalfViewDown()
	case "ctrl+u":
		m.viewport.HalfViewUp()
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	}

	return m, nil
}

// save writes the editor contents back to the record.
func (m *DetailModel) save() {
	text := m.editor.Value()
	if !applyBody(m.repo, m.entry.kind, m.entry.id, text) {
		m.errorMsg = "record no longer exists"
		return
	}
	m.entry.body = text
	m.successMsg = "Saved"
	m.stopEditing()
}

func (m *DetailModel) stopEditing() {
	m.editMode = false
	m.editor.Reset()
	m.editor.Blur()
	m.resizeComponents()
}

// View renders the split-screen detail view.
func (m DetailModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	leftWidth, rightWidth := m.panelWidths(width)
	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 10 {
		contentHeight = 10
	}

	header := m.renderHeader()

	leftPanel := panelBorderStyle.
		Width(leftWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(m.renderLeftPanel(leftWidth - borderSize))

	rightBorder := focusedPanelBorderStyle
	if m.editMode {
		rightBorder = panelBorderStyle // Unfocus when typing
	}
	rightPanel := rightBorder.
		Width(rightWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(m.renderRightPanel())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, " ", rightPanel)
	footer := m.renderFooter(width)

	return lipgloss.JoinVertical(lipgloss.Left, header, panels, footer)
}

// renderHeader renders the top help bar.
func (m DetailModel) renderHeader() string {
	if m.confirmExit {
		return warningStyle.Render("Unsaved changes! [Y]discard [N]cancel [S]save")
	}
	if m.editMode {
		return dimStyle.Render("[Ctrl+S]save [ESC]cancel") + "  " +
			warningStyle.Render("Editing "+strings.ToLower(bodyLabel(m.entry.kind))+"...")
	}
	return dimStyle.Render("[q]back [e]edit [j/k]scroll [g/G]top/bottom")
}

// renderFooter renders the bottom status bar.
func (m DetailModel) renderFooter(width int) string {
	var left, right string

	switch {
	case m.successMsg != "":
		left = successStyle.Render("✓ " + m.successMsg)
	case m.errorMsg != "":
		left = ErrorStyle.Render("✗ " + m.errorMsg)
	case m.editMode:
		left = dimStyle.Render(fmt.Sprintf("%d chars", len(m.editor.Value())))
	}

	if !m.editMode && m.viewport.TotalLineCount() > m.viewport.Height {
		switch {
		case m.viewport.AtTop():
			right = "TOP"
		case m.viewport.AtBottom():
			right = "END"
		default:
			right = fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
		}
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + dimStyle.Render(right)
}

// renderLeftPanel renders the record's attributes.
func (m DetailModel) renderLeftPanel(width int) string {
	var b strings.Builder

	b.WriteString(detailLabelStyle.Render(string(m.entry.kind)))
	b.WriteString("\n\n")
	b.WriteString(detailTitleStyle.Render(wordwrap.String(m.entry.title, width-2)))
	b.WriteString("\n\n")

	for _, f := range m.entry.fields {
		b.WriteString(detailLabelStyle.Render(f.label + ": "))
		b.WriteString(detailValueStyle.Render(wordwrap.String(f.value, width-len(f.label)-4)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRightPanel renders the free text, or the editor while editing.
func (m DetailModel) renderRightPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(bodyLabel(m.entry.kind)))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	if m.editMode {
		b.WriteString("\n")
		b.WriteString(m.editor.View())
	}
	return b.String()
}
