package session

import (
	"encoding/json"
	"fmt"

	"github.com/Makepad-fr/tada-lists/internal/store/jsonstore"
	"github.com/Makepad-fr/tada-lists/internal/todo"
)

// Flash holds the one-shot notices shown on the next rendered page.
type Flash struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Data is everything kept for one session.
type Data struct {
	Store *todo.Store
	Flash Flash
}

func newData() *Data {
	return &Data{Store: todo.New()}
}

// TakeFlash returns the pending notices and clears them.
func (d *Data) TakeFlash() Flash {
	f := d.Flash
	d.Flash = Flash{}
	return f
}

type envelope struct {
	Store json.RawMessage `json:"store"`
	Flash Flash           `json:"flash"`
}

func encode(d *Data) ([]byte, error) {
	store, err := jsonstore.Marshal(d.Store)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(envelope{Store: store, Flash: d.Flash})
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

func decode(b []byte) (*Data, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if len(env.Store) == 0 {
		return &Data{Store: todo.New(), Flash: env.Flash}, nil
	}
	s, err := jsonstore.Unmarshal(env.Store)
	if err != nil {
		return nil, err
	}
	return &Data{Store: s, Flash: env.Flash}, nil
}
