package model

// Todo is a single item inside a List.
type Todo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// List is a named, ordered collection of todos.
// Todos keep insertion order; display order is computed by the todo package.
type List struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Todos []Todo `json:"todos"`
}
