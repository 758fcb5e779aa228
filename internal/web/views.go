package web

import (
	"github.com/Makepad-fr/tada-lists/internal/model"
	"github.com/Makepad-fr/tada-lists/internal/session"
	"github.com/Makepad-fr/tada-lists/internal/todo"
)

type listView struct {
	Index     int
	ID        int
	Name      string
	Class     string
	Unchecked int
	Total     int
}

type todoView struct {
	Index     int
	ID        int
	Name      string
	Completed bool
}

type listsPage struct {
	Flash session.Flash
	Lists []listView
}

type listFormPage struct {
	Flash    session.Flash
	List     listView
	ListName string
}

type listPage struct {
	Flash    session.Flash
	List     listView
	Todos    []todoView
	TodoName string
}

func newListView(index int, l model.List) listView {
	return listView{
		Index:     index,
		ID:        l.ID,
		Name:      l.Name,
		Class:     todo.ListClass(l),
		Unchecked: todo.UncheckedCount(l),
		Total:     todo.TodosCount(l),
	}
}

func sortedListViews(lists []model.List) []listView {
	out := make([]listView, 0, len(lists))
	for _, e := range todo.SortLists(lists) {
		out = append(out, newListView(e.Index, e.Item))
	}
	return out
}

func sortedTodoViews(todos []model.Todo) []todoView {
	out := make([]todoView, 0, len(todos))
	for _, e := range todo.SortTodos(todos) {
		out = append(out, todoView{
			Index:     e.Index,
			ID:        e.Item.ID,
			Name:      e.Item.Name,
			Completed: e.Item.Completed,
		})
	}
	return out
}

// indexOf finds the storage position of a list, for its view.
func indexOf(lists []model.List, id int) int {
	for i, l := range lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}
