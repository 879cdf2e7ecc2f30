package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/h0rv/dread/internal/store"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		outDir string
		open   bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every project to a JSON backup file",
		Long: `Write every project to horror-game-dev-<timestamp>.json.

Use --out - to print the backup to stdout instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := a.repo.Export()
			if outDir == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), data)
				return nil
			}

			path := filepath.Join(outDir, store.ExportFileName(time.Now()))
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("create export dir: %w", err)
			}
			if err := os.WriteFile(path, []byte(data+"\n"), 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)

			if open {
				if err := browser.OpenFile(path); err != nil {
					return fmt.Errorf("open export: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to write the backup to, or - for stdout")
	cmd.Flags().BoolVar(&open, "open", false, "Open the written file with the system viewer")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a JSON backup",
		Long: `Replace all data with a JSON backup written by 'dread export'.

The file must have exactly the export format; otherwise nothing is changed.
Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}

			if !a.repo.Import(string(data)) {
				return errors.New("import failed: not a valid dread backup, nothing was changed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects\n", len(a.repo.Projects()))
			return nil
		},
	}
}
