package cli

import (
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada-lists/internal/todo"
	"github.com/Makepad-fr/tada-lists/internal/tui"
	"github.com/Makepad-fr/tada-lists/internal/ui"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the local session interactively",
		Args:  exactArgs(0, "tada tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

// runTUI starts the interactive browser. It saves on quit if changed.
func runTUI(app *App) error {
	return app.withStore(func(s *todo.Store) (bool, error) {
		changed, err := tui.Run(s)
		if err != nil {
			return false, err
		}
		if changed {
			ui.OK(app.Out, "saved")
		}
		return changed, nil
	})
}
