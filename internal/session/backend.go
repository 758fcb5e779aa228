package session

import (
	"context"
	"time"
)

// Backend stores encoded session data until it expires. Implementations
// must be safe for concurrent use.
type Backend interface {
	// Load returns the data for id. ok is false when the session is
	// unknown or expired.
	Load(ctx context.Context, id string) (data []byte, ok bool, err error)
	// Save creates or replaces the data for id.
	Save(ctx context.Context, id string, data []byte, expires time.Time) error
	// Delete forgets id. Unknown ids are not an error.
	Delete(ctx context.Context, id string) error
	// Purge removes every session that expired before now and returns how
	// many were removed.
	Purge(ctx context.Context, now time.Time) (int, error)
	Close() error
}
