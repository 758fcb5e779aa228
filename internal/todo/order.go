package todo

import "github.com/Makepad-fr/tada-lists/internal/model"

// Indexed pairs an element with its position in the canonical slice it
// was taken from. Links back into the store are built from Index.
type Indexed[T any] struct {
	Index int
	Item  T
}

// AllDone reports whether l has todos and all of them are completed.
func AllDone(l model.List) bool {
	return TodosCount(l) > 0 && UncheckedCount(l) == 0
}

// TodosCount is the number of todos in l.
func TodosCount(l model.List) int { return len(l.Todos) }

// UncheckedCount is the number of incomplete todos in l.
func UncheckedCount(l model.List) int {
	n := 0
	for _, t := range l.Todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

// ListClass is the CSS class used for l in list views.
func ListClass(l model.List) string {
	if AllDone(l) {
		return "complete"
	}
	return ""
}

// SortLists puts lists that are not all done first, then the all-done
// ones, keeping relative order inside each group.
func SortLists(lists []model.List) []Indexed[model.List] {
	return partition(lists, AllDone)
}

// SortTodos puts incomplete todos first, then completed ones, keeping
// relative order inside each group.
func SortTodos(todos []model.Todo) []Indexed[model.Todo] {
	return partition(todos, func(t model.Todo) bool { return t.Completed })
}

func partition[T any](items []T, done func(T) bool) []Indexed[T] {
	out := make([]Indexed[T], 0, len(items))
	var tail []Indexed[T]
	for i, it := range items {
		if done(it) {
			tail = append(tail, Indexed[T]{Index: i, Item: it})
			continue
		}
		out = append(out, Indexed[T]{Index: i, Item: it})
	}
	return append(out, tail...)
}
