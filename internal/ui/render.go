package ui

import (
	"fmt"

	"github.com/Makepad-fr/tada-lists/internal/model"
	"github.com/Makepad-fr/tada-lists/internal/todo"
)

const maxTitle = 80

func clip(s string) string {
	r := []rune(s)
	if len(r) > maxTitle {
		return string(r[:maxTitle-3]) + "..."
	}
	return s
}

// ListsLines renders the overview of all lists. With sorted set, lists
// that are all done go last.
func ListsLines(lists []model.List, sorted bool) []string {
	t := current
	done := 0
	for _, l := range lists {
		if todo.AllDone(l) {
			done++
		}
	}
	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			t.Title.Render("Lists"),
			t.Success.Render(t.SymDone), done,
			t.Pending.Render(t.SymPending), len(lists)-done,
			t.Accent.Render("Total"), len(lists)),
		"",
	}
	if len(lists) == 0 {
		return append(lines, t.Muted.Render("no lists"))
	}

	entries := make([]todo.Indexed[model.List], 0, len(lists))
	if sorted {
		entries = todo.SortLists(lists)
	} else {
		for i, l := range lists {
			entries = append(entries, todo.Indexed[model.List]{Index: i, Item: l})
		}
	}
	for _, e := range entries {
		l := e.Item
		box, name := t.Muted.Render(t.BoxUnchecked), clip(l.Name)
		if todo.AllDone(l) {
			box, name = t.Success.Render(t.BoxChecked), t.Done.Render(name)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			t.Muted.Render(fmt.Sprintf("%3d.", l.ID)), box, name,
			t.Muted.Render(fmt.Sprintf("%d/%d", todo.UncheckedCount(l), todo.TodosCount(l)))))
	}
	return lines
}

// ListLines renders one list with its todos, incomplete first.
func ListLines(l model.List) []string {
	t := current
	total := todo.TodosCount(l)
	pending := todo.UncheckedCount(l)
	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			t.Title.Render(clip(l.Name)),
			t.Success.Render(t.SymDone), total-pending,
			t.Pending.Render(t.SymPending), pending,
			t.Accent.Render("Total"), total),
		t.Muted.Render(ProgressBar(total-pending, total, 28)),
		"",
	}
	if total == 0 {
		return append(lines, t.Muted.Render("no todos"))
	}
	for _, e := range todo.SortTodos(l.Todos) {
		box, name := t.Muted.Render(t.BoxUnchecked), clip(e.Item.Name)
		if e.Item.Completed {
			box, name = t.Success.Render(t.BoxChecked), t.Done.Render(name)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%3d.", e.Item.ID)), box, name))
	}
	return lines
}
