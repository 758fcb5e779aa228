package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Manager hands out per-session Data and serializes access to it.
type Manager struct {
	backend Backend
	ttl     time.Duration
	logger  *log.Logger
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

// NewManager returns a manager storing sessions in b for ttl after their
// last write.
func NewManager(b Backend, ttl time.Duration, logger *log.Logger) *Manager {
	return &Manager{
		backend: b,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		locks:   make(map[string]*idLock),
	}
}

// TTL is how long a session lives after its last request.
func (m *Manager) TTL() time.Duration { return m.ttl }

// NewID returns a fresh random session id.
func (m *Manager) NewID() string { return uuid.NewString() }

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &idLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// Do loads session id (creating it empty on first access or after
// expiry), calls fn and saves the result with a renewed expiry. Calls for
// the same id run one at a time. When fn fails nothing is saved.
func (m *Manager) Do(ctx context.Context, id string, fn func(*Data) error) error {
	unlock := m.lock(id)
	defer unlock()

	d, err := m.load(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(d); err != nil {
		return err
	}
	b, err := encode(d)
	if err != nil {
		return err
	}
	return m.backend.Save(ctx, id, b, m.now().Add(m.ttl))
}

func (m *Manager) load(ctx context.Context, id string) (*Data, error) {
	b, ok, err := m.backend.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return newData(), nil
	}
	d, err := decode(b)
	if err != nil {
		// Session state is disposable; start over instead of failing every request.
		m.logger.Warn("discarding unreadable session", "session", id, "err", err)
		return newData(), nil
	}
	return d, nil
}

// Destroy drops session id.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()
	return m.backend.Delete(ctx, id)
}

// Sweep purges expired sessions from the backend.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	return m.backend.Purge(ctx, m.now())
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := m.Sweep(ctx)
			if err != nil {
				m.logger.Error("session sweep failed", "err", err)
				continue
			}
			if n > 0 {
				m.logger.Debug("expired sessions purged", "count", n)
			}
		}
	}
}

// Close releases the backend.
func (m *Manager) Close() error { return m.backend.Close() }
