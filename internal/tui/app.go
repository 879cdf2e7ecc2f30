package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/h0rv/dread/internal/domain"
	"github.com/h0rv/dread/internal/store"
)

// AppScreen represents the different screens in the application flow.
type AppScreen int

const (
	ScreenProjectPicker AppScreen = iota
	ScreenNewProject
	ScreenDashboard
	ScreenStatusPicker
	ScreenDetail
)

// AppModel is the root Bubble Tea model that manages screen transitions
// between the project picker, the dashboard and its detail views.
type AppModel struct {
	// Dependencies
	repo   *store.Repository
	logger *zap.Logger

	exportDir string

	// Current state
	currentScreen AppScreen
	currentModel  tea.Model
	err           error

	// Cached to preserve tab and cursor state across screen transitions
	dashboard *DashboardModel
}

// NewAppModel creates the root model. It opens on the dashboard of the
// current project when there is one, on the project picker otherwise.
func NewAppModel(repo *store.Repository, logger *zap.Logger) AppModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := AppModel{
		repo:      repo,
		logger:    logger.Named("tui"),
		exportDir: ".",
	}

	if p, ok := repo.CurrentProject(); ok {
		m.showDashboard(p.ID)
	} else {
		m.showPicker()
	}
	return m
}

// Screen reports which screen is showing.
func (m AppModel) Screen() AppScreen {
	return m.currentScreen
}

func (m *AppModel) showPicker() {
	m.currentScreen = ScreenProjectPicker
	m.currentModel = NewProjectPickerModel(m.repo, m.exportDir)
}

func (m *AppModel) showDashboard(projectID string) {
	if m.dashboard == nil || m.dashboard.projectID != projectID {
		d := NewDashboardModel(m.repo, projectID, m.exportDir)
		m.dashboard = &d
	} else {
		m.dashboard.refresh()
	}
	m.currentScreen = ScreenDashboard
	m.currentModel = *m.dashboard
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return m.currentModel.Init()
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case ErrorMsg:
		m.logger.Warn("ui error", zap.Error(msg.Err))
		if m.currentScreen == ScreenDashboard || m.currentScreen == ScreenProjectPicker {
			break // shown as a toast
		}
		m.err = msg.Err
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case openPickerMsg:
		m.showPicker()
		return m, m.currentModel.Init()

	case openNewProjectMsg:
		m.currentScreen = ScreenNewProject
		form := NewNewProjectModel()
		m.currentModel = form
		return m, form.Init()

	case cancelFormMsg:
		if m.currentScreen == ScreenStatusPicker && m.dashboard != nil {
			m.showDashboard(m.dashboard.projectID)
		} else {
			m.showPicker()
		}
		return m, tea.WindowSize()

	case ProjectCreatedMsg:
		p := m.repo.AddProject(domain.Project{
			Name:    msg.Name,
			Concept: msg.Concept,
			Setting: msg.Setting,
			Status:  domain.ProjectConcept,
		})
		m.logger.Info("project created", zap.String("id", p.ID), zap.String("name", p.Name))
		m.showDashboard(p.ID)
		return m, m.currentModel.Init()

	case ProjectSelectedMsg:
		m.repo.SetCurrentProject(msg.ID)
		m.showDashboard(msg.ID)
		return m, m.currentModel.Init()

	case openStatusPickerMsg:
		m.currentScreen = ScreenStatusPicker
		m.currentModel = msg.picker
		return m, tea.Batch(msg.picker.Init(), tea.WindowSize())

	case statusSelectedMsg:
		if !applyStatus(m.repo, msg.kind, msg.id, msg.value) {
			m.logger.Warn("status not applied", zap.String("collection", string(msg.kind)), zap.String("id", msg.id))
		}
		if m.dashboard != nil {
			m.showDashboard(m.dashboard.projectID)
		}
		return m, tea.WindowSize()

	case openDetailMsg:
		m.currentScreen = ScreenDetail
		detail := NewDetailModel(m.repo, msg.entry)
		m.currentModel = detail
		return m, detail.Init()

	case closeDetailMsg:
		if m.dashboard != nil {
			m.showDashboard(m.dashboard.projectID)
		}
		// Request window size to ensure proper rendering
		return m, tea.WindowSize()
	}

	// Delegate to current screen's model
	if m.currentModel != nil {
		var cmd tea.Cmd
		m.currentModel, cmd = m.currentModel.Update(msg)
		// Keep the cached dashboard in sync
		if m.currentScreen == ScreenDashboard {
			if d, ok := m.currentModel.(DashboardModel); ok {
				m.dashboard = &d
			}
		}
		return m, cmd
	}

	return m, nil
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Ctrl+C to quit", m.err))
	}
	if m.currentModel != nil {
		return m.currentModel.View()
	}
	return ""
}
