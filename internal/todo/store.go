package todo

import (
	"github.com/Makepad-fr/tada-lists/internal/model"
)

// Store is the set of lists owned by one session.
type Store struct {
	Lists []model.List `json:"lists"`
}

// New returns an empty store.
func New() *Store {
	return &Store{Lists: []model.List{}}
}

// NextID returns 1 when ids is empty and max(ids)+1 otherwise. It is
// always recomputed from the current members, so ids of deleted items are
// reused only once the collection no longer holds a larger one.
func NextID(ids ...int) int {
	hi := 0
	for _, id := range ids {
		if id > hi {
			hi = id
		}
	}
	return hi + 1
}

// NextListID is the id the next created list will get.
func (s *Store) NextListID() int {
	ids := make([]int, 0, len(s.Lists))
	for _, l := range s.Lists {
		ids = append(ids, l.ID)
	}
	return NextID(ids...)
}

// NextTodoID is the id the next todo added to l will get.
func NextTodoID(l *model.List) int {
	ids := make([]int, 0, len(l.Todos))
	for _, t := range l.Todos {
		ids = append(ids, t.ID)
	}
	return NextID(ids...)
}

// FindList returns the list with the given id. The pointer stays valid
// until the next list is created or deleted.
func (s *Store) FindList(id int) (*model.List, error) {
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			return &s.Lists[i], nil
		}
	}
	return nil, ErrListNotFound
}

// FindTodo returns the todo with the given id inside l.
func FindTodo(l *model.List, id int) (*model.Todo, error) {
	for i := range l.Todos {
		if l.Todos[i].ID == id {
			return &l.Todos[i], nil
		}
	}
	return nil, ErrTodoNotFound
}

// CreateList appends a new empty list. Nothing changes when name is invalid.
func (s *Store) CreateList(name string) (*model.List, error) {
	if err := ValidateListName(name, s.Lists); err != nil {
		return nil, err
	}
	s.Lists = append(s.Lists, model.List{
		ID:    s.NextListID(),
		Name:  name,
		Todos: []model.Todo{},
	})
	return &s.Lists[len(s.Lists)-1], nil
}

// RenameList replaces the name of list id. The new name is compared with
// every list, the renamed one included, so keeping the current name fails
// as a duplicate.
func (s *Store) RenameList(id int, name string) error {
	l, err := s.FindList(id)
	if err != nil {
		return err
	}
	if err := ValidateListName(name, s.Lists); err != nil {
		return err
	}
	l.Name = name
	return nil
}

// DeleteList removes list id and returns it.
func (s *Store) DeleteList(id int) (model.List, error) {
	for i, l := range s.Lists {
		if l.ID == id {
			s.Lists = append(s.Lists[:i], s.Lists[i+1:]...)
			return l, nil
		}
	}
	return model.List{}, ErrListNotFound
}

// AddTodo appends an incomplete todo to l.
func AddTodo(l *model.List, name string) (*model.Todo, error) {
	if err := ValidateTodoName(name); err != nil {
		return nil, err
	}
	l.Todos = append(l.Todos, model.Todo{ID: NextTodoID(l), Name: name})
	return &l.Todos[len(l.Todos)-1], nil
}

// RemoveTodo deletes todo id from l and reports whether it was there.
// A missing id leaves l untouched.
func RemoveTodo(l *model.List, id int) bool {
	for i, t := range l.Todos {
		if t.ID == id {
			l.Todos = append(l.Todos[:i], l.Todos[i+1:]...)
			return true
		}
	}
	return false
}

// SetCompleted sets the completion flag of todo id.
func SetCompleted(l *model.List, id int, completed bool) error {
	t, err := FindTodo(l, id)
	if err != nil {
		return err
	}
	t.Completed = completed
	return nil
}

// CompleteAll marks every todo in l as completed.
func CompleteAll(l *model.List) {
	for i := range l.Todos {
		l.Todos[i].Completed = true
	}
}
