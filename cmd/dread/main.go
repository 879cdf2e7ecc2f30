package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/h0rv/dread/internal/config"
	"github.com/h0rv/dread/internal/logging"
	"github.com/h0rv/dread/internal/store"
	"github.com/h0rv/dread/internal/tui"
)

var errNoProject = errors.New("no project selected (run 'dread project new' or 'dread project select')")

// app carries what every command needs once flags are parsed.
type app struct {
	// CLI flags
	backend string
	dir     string

	cfg    *config.Config
	logger *zap.Logger
	repo   *store.Repository

	// runUI starts the interactive program; replaced in tests.
	runUI func(m tea.Model) error
}

func main() {
	a := &app{runUI: runProgram}
	if err := execute(buildRootCmd(a), a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// execute runs cmd and closes the repository it opened. Cobra skips post-run
// hooks when RunE fails, so the close happens here.
func execute(cmd *cobra.Command, a *app) error {
	err := cmd.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func buildRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dread",
		Short: "Track the development of a horror game",
		Long: `dread keeps the design document, production checklist and launch plan
of one or more horror-game projects in a single local file.

Run without a command to open the interactive dashboard.

Storage:
  file    <dir>/horror_game_dev_data.json (default)
  sqlite  <dir>/dread.db
  memory  nothing is kept after exit`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.open() },
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUI(tui.NewAppModel(a.repo, a.logger))
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend: file, sqlite or memory. Overrides DREAD_STORAGE.")
	rootCmd.PersistentFlags().StringVar(&a.dir, "dir", "", "Data directory. Overrides DREAD_DIR.")

	rootCmd.AddCommand(
		newProjectCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newShowCmd(a),
	)
	rootCmd.AddCommand(newCollectionCmds(a)...)

	return rootCmd
}

// open loads the config, applies flag overrides and opens the repository.
func (a *app) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Storage.Backend = a.backend
	}
	if a.dir != "" {
		cfg.Storage.Dir = a.dir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger

	s, err := cfg.OpenSlot()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	a.repo = store.New(s, store.WithLogger(logger))

	logger.Debug("repository opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("dir", cfg.Storage.Dir),
		zap.Int("projects", len(a.repo.Projects())))
	return nil
}

func (a *app) close() error {
	if a.logger != nil {
		defer a.logger.Sync() //nolint:errcheck
	}
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// currentProject returns the selected project or errNoProject.
func (a *app) currentProject() (string, error) {
	p, ok := a.repo.CurrentProject()
	if !ok {
		return "", errNoProject
	}
	return p.ID, nil
}

func runProgram(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
