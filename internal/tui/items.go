package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada-lists/internal/model"
	"github.com/Makepad-fr/tada-lists/internal/todo"
	"github.com/Makepad-fr/tada-lists/internal/ui"
)

// listRow adapts a model.List to bubbles/list.Item.
type listRow struct {
	Index int
	List  model.List
}

func (r listRow) Title() string       { return r.List.Name }
func (r listRow) Description() string { return "" }
func (r listRow) FilterValue() string { return r.List.Name }

// todoRow adapts a model.Todo to bubbles/list.Item.
type todoRow struct {
	Index int
	Todo  model.Todo
}

func (r todoRow) Title() string       { return r.Todo.Name }
func (r todoRow) Description() string { return "" }
func (r todoRow) FilterValue() string { return r.Todo.Name }

func listRows(lists []model.List) []list.Item {
	out := make([]list.Item, 0, len(lists))
	for _, e := range todo.SortLists(lists) {
		out = append(out, listRow{Index: e.Index, List: e.Item})
	}
	return out
}

func todoRows(todos []model.Todo) []list.Item {
	out := make([]list.Item, 0, len(todos))
	for _, e := range todo.SortTodos(todos) {
		out = append(out, todoRow{Index: e.Index, Todo: e.Item})
	}
	return out
}

// rowDelegate renders both row kinds on a single line.
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	t := ui.Current()
	var line string
	switch it := item.(type) {
	case listRow:
		box, name := t.Muted.Render(t.BoxUnchecked), it.List.Name
		if todo.AllDone(it.List) {
			box, name = t.Success.Render(t.BoxChecked), t.Done.Render(name)
		}
		counts := t.Muted.Render(fmt.Sprintf("%d/%d", todo.UncheckedCount(it.List), todo.TodosCount(it.List)))
		line = fmt.Sprintf("%s %s %s", box, name, counts)
	case todoRow:
		box, name := t.Muted.Render(t.BoxUnchecked), it.Todo.Name
		if it.Todo.Completed {
			box, name = t.Success.Render(t.BoxChecked), t.Done.Render(name)
		}
		line = fmt.Sprintf("%s %s", box, name)
	default:
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}
