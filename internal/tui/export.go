package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"github.com/h0rv/dread/internal/store"
)

// exportBackup writes the whole document to a timestamped file in dir and
// returns its path.
func exportBackup(repo *store.Repository, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, store.ExportFileName(time.Now()))
	if err := os.WriteFile(path, []byte(repo.Export()), 0o644); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}

// openFile shows path in the system's default application.
func openFile(path string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.OpenFile(path); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to open %s: %w", path, err)}
		}
		return nil
	}
}
