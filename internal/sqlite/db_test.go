package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/repository"
)

// NewTestDB creates a new in-memory store for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db := New(":memory:", nil)
	require.NoError(t, db.Open(context.Background()), "failed to open test database")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that every collection and index is declared
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	conn, err := db.handle(ctx)
	require.NoError(t, err)

	for _, table := range []string{"tasks", "habits", "notes", "time_sessions", "days"} {
		var count int
		err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	for _, index := range []string{"idx_tasks_scheduledDate", "idx_notes_updatedAt", "idx_time_sessions_startTime", "idx_days_date"} {
		var count int
		err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count, "index %s not found", index)
	}

	version, err := db.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, SchemaVersion, version)
}

func TestOpen_Idempotent(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	require.True(t, db.Ready())
	require.NoError(t, db.Open(ctx))
	require.NoError(t, db.Open(ctx))
	require.True(t, db.Ready())
}

func TestOpen_LazyOnFirstOperation(t *testing.T) {
	db := New(":memory:", nil)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	require.False(t, db.Ready())

	tasks, err := GetAll[task.Task](ctx, db, CollectionTasks)
	require.NoError(t, err)
	require.Empty(t, tasks)
	require.True(t, db.Ready())
}

func TestOpen_StoreUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	db := New(filepath.Join(blocker, "nested", "personalos.db"), nil)
	ctx := context.Background()

	err := db.Open(ctx)
	require.ErrorIs(t, err, repository.ErrStoreUnavailable)
	require.False(t, db.Ready())

	// every operation surfaces the failure until an open succeeds
	_, err = Get[task.Task](ctx, db, CollectionTasks, 1)
	require.ErrorIs(t, err, repository.ErrStoreUnavailable)
	_, err = Add(ctx, db, CollectionTasks, task.Task{Title: "x", ScheduledDate: "2024-06-01"})
	require.ErrorIs(t, err, repository.ErrStoreUnavailable)
}

func TestClose_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personalos.db")
	ctx := context.Background()

	db, err := Open(ctx, path, nil)
	require.NoError(t, err)

	id, err := Add(ctx, db, CollectionTasks, task.Task{Title: "persisted", ScheduledDate: "2024-06-01"})
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.False(t, db.Ready())

	got, err := Get[task.Task](ctx, db, CollectionTasks, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "persisted", got.Title)
	require.NoError(t, db.Close())
}

func TestMigrate_NewerStoredVersionIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personalos.db")
	ctx := context.Background()

	db, err := Open(ctx, path, nil)
	require.NoError(t, err)
	conn, err := db.handle(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, "PRAGMA user_version = 9")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	version, err := db.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 9, version)
}

func TestMigrate_AddsIndexAndBackfillsWithoutRewriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personalos.db")
	ctx := context.Background()

	legacy := DefaultSchema()
	legacy.Version = 4
	for i, c := range legacy.Collections {
		if c.Name == CollectionNotes {
			legacy.Collections[i].Indexes = nil
		}
	}

	old := New(path, nil)
	old.schema = legacy
	require.NoError(t, old.Open(ctx))

	base := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		n := note.Note{Title: title, Type: note.TypeGeneral, Tags: []string{}}
		n.UpdatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := Add(ctx, old, CollectionNotes, n)
		require.NoError(t, err)
	}

	conn, err := old.handle(ctx)
	require.NoError(t, err)
	before := readDocs(t, ctx, conn)
	require.NoError(t, old.Close())

	db, err := Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	version, err := db.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, SchemaVersion, version)

	conn, err = db.handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, readDocs(t, ctx, conn), "documents must not be rewritten")

	notes, err := GetByRange[note.Note](ctx, db, CollectionNotes, "updatedAt",
		Bound(base.Add(time.Hour), base.Add(2*time.Hour)))
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Title)
	assert.Equal(t, "third", notes[1].Title)

	// reopening at the current version changes nothing
	require.NoError(t, db.Close())
	require.NoError(t, db.Open(ctx))
	conn, err = db.handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, readDocs(t, ctx, conn))
}

func readDocs(t *testing.T, ctx context.Context, conn *sql.DB) []string {
	t.Helper()

	rows, err := conn.QueryContext(ctx, "SELECT doc FROM notes ORDER BY id")
	require.NoError(t, err)
	defer rows.Close()

	var docs []string
	for rows.Next() {
		var doc string
		require.NoError(t, rows.Scan(&doc))
		docs = append(docs, doc)
	}
	require.NoError(t, rows.Err())
	return docs
}
