// Package tui provides Bubble Tea models for the interactive dashboard.
package tui

// ProjectSelectedMsg is emitted when the user picks a project.
type ProjectSelectedMsg struct {
	ID string
}

// ProjectCreatedMsg is emitted when the new-project form is submitted.
type ProjectCreatedMsg struct {
	Name    string
	Concept string
	Setting string
}

// ErrorMsg is emitted when an error occurs.
type ErrorMsg struct {
	Err error
}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}

// Screen transitions.
type (
	openPickerMsg     struct{}
	openNewProjectMsg struct{}
	cancelFormMsg     struct{}
	openDetailMsg     struct{ entry entry }
	closeDetailMsg    struct{}
)
