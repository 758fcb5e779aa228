package jsonstore

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tada-lists/internal/model"
	"github.com/Makepad-fr/tada-lists/internal/todo"
)

// JSON codec for a todo.Store. Every decode is checked against the
// embedded schema so a corrupted session never reaches the engine.

// DefaultFile is the session file used by the local CLI and TUI.
const DefaultFile = "tada-session.json"

const schemaURL = "store.schema.json"

//go:embed store.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Marshal encodes s. A nil store encodes as an empty one.
func Marshal(s *todo.Store) ([]byte, error) {
	if s == nil {
		s = todo.New()
	}
	out := todo.Store{Lists: make([]model.List, len(s.Lists))}
	copy(out.Lists, s.Lists)
	for i := range out.Lists {
		if out.Lists[i].Todos == nil {
			out.Lists[i].Todos = []model.Todo{}
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Unmarshal validates b against the store schema and decodes it.
func Unmarshal(b []byte) (*todo.Store, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &SchemaError{Problems: schemaProblems(err)}
	}
	s := todo.New()
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return s, nil
}

// SchemaError lists where a payload deviates from the store schema.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "invalid store: " + strings.Join(e.Problems, "; ")
}

func schemaProblems(err error) []string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) == 0 {
			loc := v.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, loc+": "+v.Message)
			return
		}
		for _, c := range v.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}

// Load reads the session file at path. A missing file is an empty store.
func Load(path string) (*todo.Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return todo.New(), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	s, err := Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path as indented JSON.
func Save(path string, s *todo.Store) error {
	b, err := Marshal(s)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return fmt.Errorf("json indent: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
