package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/h0rv/dread/internal/domain"
)

// statusItem is one selectable status value.
type statusItem struct {
	value   string
	current bool
}

func (i statusItem) FilterValue() string { return i.value }

// statusItemDelegate renders one status per line.
type statusItemDelegate struct{}

func (d statusItemDelegate) Height() int                             { return 1 }
func (d statusItemDelegate) Spacing() int                            { return 0 }
func (d statusItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d statusItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(statusItem)
	if !ok {
		return
	}

	str := i.value
	if i.current {
		str += " (current)"
	}

	fn := NormalItemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return SelectedItemStyle.Render("> " + s[0])
		}
	}

	fmt.Fprint(w, fn(str))
}

// statusSelectedMsg carries the status chosen for a record.
type statusSelectedMsg struct {
	kind  domain.Collection
	id    string
	value string
}

// StatusPickerModel lets the user set the status of one record.
type StatusPickerModel struct {
	list list.Model
	kind domain.Collection
	id   string
}

// NewStatusPickerModel lists options for the record id of kind, with the
// cursor on current.
func NewStatusPickerModel(title string, kind domain.Collection, id string, options []string, current string) StatusPickerModel {
	items := make([]list.Item, len(options))
	selected := 0
	for i, o := range options {
		items[i] = statusItem{value: o, current: o == current}
		if o == current {
			selected = i
		}
	}

	l := list.New(items, statusItemDelegate{}, 60, len(options)+6)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle
	l.Styles.PaginationStyle = dimStyle
	l.Styles.HelpStyle = HelpStyle
	l.KeyMap.Quit.SetEnabled(false)
	l.Select(selected)

	return StatusPickerModel{list: l, kind: kind, id: id}
}

// Init initializes the model.
func (m StatusPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m StatusPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(statusItem); ok {
				kind, id := m.kind, m.id
				return m, func() tea.Msg {
					return statusSelectedMsg{kind: kind, id: id, value: item.value}
				}
			}
			return m, nil
		case "q", "esc":
			return m, func() tea.Msg {
				return cancelFormMsg{}
			}
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width - 2)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m StatusPickerModel) View() string {
	return m.list.View()
}
