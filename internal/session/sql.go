package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// SQLBackend keeps sessions in a sessions table. It speaks to SQLite
// through modernc.org/sqlite and to MySQL through go-sql-driver/mysql.
type SQLBackend struct {
	db      *sql.DB
	dialect string
}

var sqlSchemas = map[string]string{
	"sqlite": `CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    expires_at INTEGER NOT NULL
)`,
	"mysql": `CREATE TABLE IF NOT EXISTS sessions (
    id VARCHAR(64) PRIMARY KEY,
    data MEDIUMBLOB NOT NULL,
    expires_at BIGINT NOT NULL,
    KEY idx_sessions_expires (expires_at)
)`,
}

var sqlUpserts = map[string]string{
	"sqlite": `INSERT INTO sessions (id, data, expires_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
	"mysql": `INSERT INTO sessions (id, data, expires_at) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE data = VALUES(data), expires_at = VALUES(expires_at)`,
}

// OpenSQL opens the database for driver ("sqlite" or "mysql") and creates
// the sessions table when missing.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLBackend, error) {
	ddl, ok := sqlSchemas[driver]
	if !ok {
		return nil, fmt.Errorf("session: unsupported sql driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// One writer at a time; avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sessions: %w", err)
	}
	if driver == "sqlite" {
		if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at)`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sessions: %w", err)
		}
	}
	return &SQLBackend{db: db, dialect: driver}, nil
}

func (b *SQLBackend) Load(ctx context.Context, id string) ([]byte, bool, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT data FROM sessions WHERE id = ? AND expires_at > ?`,
		id, time.Now().UnixNano(),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session: %w", err)
	}
	return data, true, nil
}

func (b *SQLBackend) Save(ctx context.Context, id string, data []byte, expires time.Time) error {
	if _, err := b.db.ExecContext(ctx, sqlUpserts[b.dialect], id, data, expires.UnixNano()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (b *SQLBackend) Delete(ctx context.Context, id string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (b *SQLBackend) Purge(ctx context.Context, now time.Time) (int, error) {
	res, err := b.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return int(n), nil
}

func (b *SQLBackend) Close() error { return b.db.Close() }
