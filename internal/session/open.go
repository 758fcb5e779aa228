package session

import (
	"context"

	"github.com/Makepad-fr/tada-lists/internal/config"
)

// OpenBackend returns the backend selected by cfg.
func OpenBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	if cfg.SessionBackend == "sql" {
		return OpenSQL(ctx, cfg.SessionDriver, cfg.SessionDSN)
	}
	return NewMemory(), nil
}
