package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/h0rv/dread/internal/domain"
)

const (
	inputName = iota
	inputConcept
	inputSetting
)

// NewProjectModel is the form for starting a project.
type NewProjectModel struct {
	inputs []textinput.Model
	focus  int
	err    error
}

func NewNewProjectModel() NewProjectModel {
	labels := []string{"Name", "Concept", "Setting"}
	placeholders := []string{"Silent Halls", "The one-paragraph pitch", "Where and when it takes place"}

	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = labels[i] + ": "
		ti.Placeholder = placeholders[i]
		ti.PromptStyle = PromptStyle.UnsetMarginBottom()
		ti.CharLimit = 500
		ti.Width = 60
		inputs[i] = ti
	}
	inputs[inputName].Focus()

	return NewProjectModel{inputs: inputs}
}

func (m NewProjectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m NewProjectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return cancelFormMsg{} }
		case "tab", "down":
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.setFocus(m.focus - 1)
			return m, cmd
		case "enter":
			if m.focus < len(m.inputs)-1 {
				cmd := m.setFocus(m.focus + 1)
				return m, cmd
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *NewProjectModel) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	m.focus = (i%n + n) % n
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m.inputs[m.focus].Focus()
}

func (m NewProjectModel) submit() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[inputName].Value())
	if err := (domain.Project{Name: name}).Validate(); err != nil {
		m.err = err
		cmd := m.setFocus(inputName)
		return m, cmd
	}

	created := ProjectCreatedMsg{
		Name:    name,
		Concept: strings.TrimSpace(m.inputs[inputConcept].Value()),
		Setting: strings.TrimSpace(m.inputs[inputSetting].Value()),
	}
	return m, func() tea.Msg { return created }
}

func (m NewProjectModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("New horror project"))
	b.WriteString("\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n" + ErrorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString(HelpStyle.Render("tab: next field • enter: next/create • esc: cancel"))
	return b.String()
}
