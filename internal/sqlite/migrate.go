package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

func userVersion(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}) (int, error) {
	var version int
	if err := q.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return version, nil
}

// migrate brings the store up to schema.Version in a single transaction. It
// only ever adds tables, key columns and indexes; documents are never rewritten.
func migrate(ctx context.Context, conn *sql.DB, schema Schema, logger *slog.Logger) error {
	from, err := userVersion(ctx, conn)
	if err != nil {
		return err
	}

	if from >= schema.Version {
		if from > schema.Version {
			logger.Warn("store schema is newer than this build", "stored_version", from, "schema_version", schema.Version)
		}
		return nil
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, c := range schema.Collections {
		if err := migrateCollection(ctx, tx, c); err != nil {
			return fmt.Errorf("collection %s: %w", c.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schema.Version)); err != nil {
		return fmt.Errorf("write user_version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	logger.Info("store migrated", "from_version", from, "to_version", schema.Version)
	return nil
}

func migrateCollection(ctx context.Context, tx *sql.Tx, c Collection) error {
	create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id  INTEGER PRIMARY KEY AUTOINCREMENT,
		doc TEXT NOT NULL
	)`, c.Name)
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	existing, err := tableColumns(ctx, tx, c.Name)
	if err != nil {
		return err
	}

	var added []Index
	for _, idx := range c.Indexes {
		if existing[idx.column()] {
			continue
		}
		alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.Name, idx.column(), idx.Kind.columnType())
		if _, err := tx.ExecContext(ctx, alter); err != nil {
			return fmt.Errorf("add key column %s: %w", idx.column(), err)
		}
		added = append(added, idx)
	}

	if len(added) > 0 {
		if err := backfillKeys(ctx, tx, c.Name, added); err != nil {
			return err
		}
	}

	for _, idx := range c.Indexes {
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		stmt := fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS idx_%s_%s ON %s(%s)",
			unique, c.Name, idx.Name, c.Name, idx.column())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index %s: %w", idx.Name, err)
		}
	}

	return nil
}

func tableColumns(ctx context.Context, tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table info: %w", err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// backfillKeys fills newly added key columns from the stored documents.
func backfillKeys(ctx context.Context, tx *sql.Tx, table string, indexes []Index) error {
	type row struct {
		id  int64
		doc string
	}

	rows, err := tx.QueryContext(ctx, fmt.Sprintf("SELECT id, doc FROM %s", table))
	if err != nil {
		return fmt.Errorf("read documents: %w", err)
	}
	var pending []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.doc); err != nil {
			rows.Close()
			return fmt.Errorf("scan document: %w", err)
		}
		pending = append(pending, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("read documents: %w", err)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	sets := make([]string, len(indexes))
	for i, idx := range indexes {
		sets[i] = idx.column() + " = ?"
	}
	update := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))

	for _, r := range pending {
		doc, err := decodeDocument(r.doc)
		if err != nil {
			return fmt.Errorf("document %d: %w", r.id, err)
		}
		keys, err := extractKeys(indexes, doc)
		if err != nil {
			return fmt.Errorf("document %d: %w", r.id, err)
		}
		if _, err := tx.ExecContext(ctx, update, append(keys, r.id)...); err != nil {
			return fmt.Errorf("backfill document %d: %w", r.id, err)
		}
	}
	return nil
}
