package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	val []byte
	exp time.Time
}

// MemoryBackend keeps sessions in process memory. They are lost on restart.
type MemoryBackend struct {
	mu  sync.RWMutex
	m   map[string]entry
	now func() time.Time
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{m: make(map[string]entry), now: time.Now}
}

func (b *MemoryBackend) Load(_ context.Context, id string) ([]byte, bool, error) {
	b.mu.RLock()
	e, ok := b.m[id]
	b.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !b.now().Before(e.exp) {
		b.mu.Lock()
		if cur, still := b.m[id]; still && cur.exp.Equal(e.exp) {
			delete(b.m, id)
		}
		b.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), e.val...), true, nil
}

func (b *MemoryBackend) Save(_ context.Context, id string, data []byte, expires time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[id] = entry{val: append([]byte(nil), data...), exp: expires}
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.m, id)
	return nil
}

func (b *MemoryBackend) Purge(_ context.Context, now time.Time) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for id, e := range b.m {
		if !now.Before(e.exp) {
			delete(b.m, id)
			n++
		}
	}
	return n, nil
}

// Len is the number of stored sessions, expired ones included.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.m)
}

func (b *MemoryBackend) Close() error { return nil }
