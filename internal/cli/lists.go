package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada-lists/internal/todo"
	"github.com/Makepad-fr/tada-lists/internal/ui"
)

func newListsCmd(app *App) *cobra.Command {
	var sorted bool
	cmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"ls"},
		Short:   "Show all lists",
		Args:    exactArgs(0, "tada lists [--sorted]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withStore(func(s *todo.Store) (bool, error) {
				lines := ui.ListsLines(s.Lists, sorted)
				lines = append(lines, "", ui.Current().Muted.Render("Tip: add with `tada lists new \"Groceries\"`"))
				fmt.Fprintln(app.Out, ui.Panel(lines))
				return false, nil
			})
		},
	}
	cmd.Flags().BoolVar(&sorted, "sorted", false, "show lists with every todo done last")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "new <name...>",
			Short: "Create a list",
			Args:  minArgs(1, "tada lists new <name...>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := trimJoin(args)
				return app.withStore(func(s *todo.Store) (bool, error) {
					l, err := s.CreateList(name)
					if err != nil {
						return false, err
					}
					app.logger.Debug("list created", "id", l.ID)
					ui.OK(app.Out, fmt.Sprintf("The list has been created. (id %d)", l.ID))
					return true, nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename <list-id> <name...>",
			Short: "Rename a list",
			Args:  minArgs(2, "tada lists rename <list-id> <name...>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "rename")
				if err != nil {
					return err
				}
				name := trimJoin(args[1:])
				return app.withStore(func(s *todo.Store) (bool, error) {
					if err := s.RenameList(id, name); err != nil {
						return false, err
					}
					ui.OK(app.Out, "The list has been updated.")
					return true, nil
				})
			},
		},
		&cobra.Command{
			Use:     "rm <list-id>",
			Aliases: []string{"delete"},
			Short:   "Delete a list and its todos",
			Args:    exactArgs(1, "tada lists rm <list-id>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "rm")
				if err != nil {
					return err
				}
				return app.withStore(func(s *todo.Store) (bool, error) {
					if _, err := s.DeleteList(id); err != nil {
						return false, err
					}
					ui.OK(app.Out, "The list has been deleted.")
					return true, nil
				})
			},
		},
	)
	return cmd
}
