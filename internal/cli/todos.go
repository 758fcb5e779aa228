package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada-lists/internal/model"
	"github.com/Makepad-fr/tada-lists/internal/todo"
	"github.com/Makepad-fr/tada-lists/internal/ui"
)

func trimJoin(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// listCmd builds a subcommand whose first argument is a list id.
func listCmd(app *App, use, short string, nargs int, run func(s *todo.Store, l *model.List, args []string) (bool, error)) *cobra.Command {
	usage := "tada todos " + use
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if nargs < 0 {
				return minArgs(-nargs, usage)(cmd, args)
			}
			return exactArgs(nargs, usage)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			return app.withStore(func(s *todo.Store) (bool, error) {
				l, err := s.FindList(id)
				if err != nil {
					return false, err
				}
				return run(s, l, args[1:])
			})
		},
	}
}

func setCompletedCmd(app *App, use, short string, completed bool) *cobra.Command {
	return listCmd(app, use+" <list-id> <todo-id>", short, 2, func(_ *todo.Store, l *model.List, args []string) (bool, error) {
		id, err := parseID(args[0], "todo id")
		if err != nil {
			return false, err
		}
		if err := todo.SetCompleted(l, id, completed); err != nil {
			return false, err
		}
		ui.OK(app.Out, "The todo has been updated.")
		return true, nil
	})
}

func newTodosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todos",
		Short: "Work with the todos of a list",
	}
	cmd.AddCommand(
		listCmd(app, "ls <list-id>", "Show a list, incomplete todos first", 1,
			func(_ *todo.Store, l *model.List, _ []string) (bool, error) {
				fmt.Fprintln(app.Out, ui.Panel(ui.ListLines(*l)))
				return false, nil
			}),
		listCmd(app, "add <list-id> <name...>", "Add a todo", -2,
			func(_ *todo.Store, l *model.List, args []string) (bool, error) {
				t, err := todo.AddTodo(l, trimJoin(args))
				if err != nil {
					return false, err
				}
				app.logger.Debug("todo added", "list", l.ID, "id", t.ID)
				ui.OK(app.Out, fmt.Sprintf("The todo was added. (id %d)", t.ID))
				return true, nil
			}),
		setCompletedCmd(app, "done", "Mark a todo completed", true),
		setCompletedCmd(app, "undo", "Mark a todo incomplete", false),
		listCmd(app, "rm <list-id> <todo-id>", "Delete a todo", 2,
			func(_ *todo.Store, l *model.List, args []string) (bool, error) {
				id, err := parseID(args[0], "todo id")
				if err != nil {
					return false, err
				}
				if !todo.RemoveTodo(l, id) {
					return false, todo.ErrTodoNotFound
				}
				ui.OK(app.Out, "The todo has been deleted.")
				return true, nil
			}),
		listCmd(app, "complete-all <list-id>", "Mark every todo of a list completed", 1,
			func(_ *todo.Store, l *model.List, _ []string) (bool, error) {
				todo.CompleteAll(l)
				ui.OK(app.Out, "All todos have been completed.")
				return true, nil
			}),
	)
	return cmd
}
