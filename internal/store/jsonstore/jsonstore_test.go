package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada-lists/internal/todo"
)

func TestMarshalEmptyStore(t *testing.T) {
	b, err := Marshal(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lists":[]}`, string(b))
}

func TestMarshalLayout(t *testing.T) {
	s := todo.New()
	l, err := s.CreateList("Groceries")
	require.NoError(t, err)
	_, err = todo.AddTodo(l, "Milk")
	require.NoError(t, err)
	_, err = s.CreateList("Empty")
	require.NoError(t, err)

	b, err := Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lists":[
		{"id":1,"name":"Groceries","todos":[{"id":1,"name":"Milk","completed":false}]},
		{"id":2,"name":"Empty","todos":[]}
	]}`, string(b))

	got, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, s.Lists, got.Lists)
}

func TestUnmarshalRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing lists", `{}`},
		{"string id", `{"lists":[{"id":"1","name":"a","todos":[]}]}`},
		{"zero id", `{"lists":[{"id":0,"name":"a","todos":[]}]}`},
		{"blank name", `{"lists":[{"id":1,"name":"","todos":[]}]}`},
		{"string completed", `{"lists":[{"id":1,"name":"a","todos":[{"id":1,"name":"t","completed":"true"}]}]}`},
		{"unknown field", `{"lists":[],"extra":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.in))
			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.NotEmpty(t, se.Problems)
		})
	}
}

func TestUnmarshalMalformedJSON(t *testing.T) {
	_, err := Unmarshal([]byte(`{"lists":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json unmarshal")
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, s.Lists)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	s := todo.New()
	l, err := s.CreateList("Work")
	require.NoError(t, err)
	td, err := todo.AddTodo(l, "Report")
	require.NoError(t, err)
	require.NoError(t, todo.SetCompleted(l, td.ID, true))

	require.NoError(t, Save(path, s))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Lists, loaded.Lists)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"lists":[{"id":1}]}`), 0o644))
	_, err := Load(path)
	var se *SchemaError
	assert.ErrorAs(t, err, &se)
}
