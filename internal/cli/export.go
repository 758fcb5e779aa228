package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada-lists/internal/export"
	"github.com/Makepad-fr/tada-lists/internal/todo"
	"github.com/Makepad-fr/tada-lists/internal/ui"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <list-id> <file.pdf>",
		Short: "Write a list as PDF",
		Args:  exactArgs(2, "tada export <list-id> <file.pdf>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "export")
			if err != nil {
				return err
			}
			return app.withStore(func(s *todo.Store) (bool, error) {
				l, err := s.FindList(id)
				if err != nil {
					return false, err
				}
				f, err := os.Create(args[1])
				if err != nil {
					return false, fmt.Errorf("create file: %w", err)
				}
				if err := export.WritePDF(f, *l); err != nil {
					_ = f.Close()
					return false, err
				}
				if err := f.Close(); err != nil {
					return false, fmt.Errorf("close file: %w", err)
				}
				ui.OK(app.Out, "exported to "+args[1])
				return false, nil
			})
		},
	}
}
