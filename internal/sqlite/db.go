package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rpggio/personalos/internal/logging"
	"github.com/rpggio/personalos/internal/repository"

	_ "modernc.org/sqlite"
)

// DB is the process-wide handle to the embedded store. It is constructed
// without I/O and opened lazily: every operation awaits Open first, so a
// failed open surfaces on each operation until a later attempt succeeds.
type DB struct {
	path   string
	schema Schema
	logger *slog.Logger

	mu   sync.Mutex
	conn *sql.DB
}

// New creates a handle for the store at path. Use ":memory:" for a private
// in-memory store.
func New(path string, logger *slog.Logger) *DB {
	return &DB{path: path, schema: DefaultSchema(), logger: logging.OrDiscard(logger)}
}

// Open creates a handle for path and opens it.
func Open(ctx context.Context, path string, logger *slog.Logger) (*DB, error) {
	db := New(path, logger)
	if err := db.Open(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Open connects to the store and migrates it to the current schema. It is
// idempotent and safe for concurrent use; callers racing on the first open
// share its outcome.
func (db *DB) Open(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.conn != nil {
		return nil
	}

	conn, err := db.connect(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrStoreUnavailable, err)
	}
	db.conn = conn
	return nil
}

func (db *DB) connect(ctx context.Context) (*sql.DB, error) {
	if !isMemory(db.path) {
		if err := os.MkdirAll(filepath.Dir(db.path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", db.path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps an in-memory store alive for the handle's
	// lifetime and serializes writers.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if err := migrate(ctx, conn, db.schema, db.logger); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	db.logger.Info("store opened", "path", db.path, "schema_version", db.schema.Version)
	return conn, nil
}

// Ready reports whether the store has been opened.
func (db *DB) Ready() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn != nil
}

// Close releases the connection. A closed handle may be opened again.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.conn == nil {
		return nil
	}
	err := db.conn.Close()
	db.conn = nil
	return err
}

// SchemaVersion reports the version recorded in the store.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	conn, err := db.handle(ctx)
	if err != nil {
		return 0, err
	}
	return userVersion(ctx, conn)
}

// Schema returns the schema the store is migrated to.
func (db *DB) Schema() Schema {
	return db.schema
}

func (db *DB) handle(ctx context.Context) (*sql.DB, error) {
	if err := db.Open(ctx); err != nil {
		return nil, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.conn == nil {
		return nil, fmt.Errorf("%w: store closed", repository.ErrStoreUnavailable)
	}
	return db.conn, nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}
