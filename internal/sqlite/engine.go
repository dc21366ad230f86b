package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type txMode int

const (
	txRead txMode = iota
	txWrite
)

// runTx runs fn in its own transaction. Read transactions never commit;
// write transactions commit when fn succeeds. Failures are mapped onto the
// store error taxonomy.
func (db *DB) runTx(ctx context.Context, mode txMode, fn func(tx *sql.Tx) error) error {
	conn, err := db.handle(ctx)
	if err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("begin transaction: %w", err))
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return classify(err)
	}

	if mode == txRead {
		_ = tx.Rollback()
		return nil
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit: %w", err))
	}
	return nil
}

// KeyRange bounds an index lookup. A nil bound is unbounded. Bounds are
// inclusive unless marked open.
type KeyRange struct {
	Lower     any
	Upper     any
	LowerOpen bool
	UpperOpen bool
}

// Bound returns the inclusive range [lower, upper].
func Bound(lower, upper any) KeyRange {
	return KeyRange{Lower: lower, Upper: upper}
}

// docColumn projects the row identity into the stored document.
const docColumn = "json_set(doc, '$.id', id)"

// GetAll returns every document in collection ordered by identity.
func GetAll[T any](ctx context.Context, db *DB, collection string) ([]T, error) {
	c, err := db.schema.Collection(collection)
	if err != nil {
		return nil, err
	}

	var out []T
	err = db.runTx(ctx, txRead, func(tx *sql.Tx) error {
		query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", docColumn, c.Name)
		out, err = queryDocs[T](ctx, tx, query)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", collection, err)
	}
	return out, nil
}

// Get returns the document with identity id, or nil when there is none.
func Get[T any](ctx context.Context, db *DB, collection string, id int64) (*T, error) {
	c, err := db.schema.Collection(collection)
	if err != nil {
		return nil, err
	}

	var out *T
	err = db.runTx(ctx, txRead, func(tx *sql.Tx) error {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", docColumn, c.Name)
		var raw string
		err := tx.QueryRowContext(ctx, query, id).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		var item T
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return fmt.Errorf("decode document %d: %w", id, err)
		}
		out = &item
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", collection, id, err)
	}
	return out, nil
}

// Add stores item as a new document and returns its identity.
func Add[T any](ctx context.Context, db *DB, collection string, item T) (int64, error) {
	c, err := db.schema.Collection(collection)
	if err != nil {
		return 0, err
	}

	doc, fields, err := encode(item)
	if err != nil {
		return 0, err
	}
	keys, err := extractKeys(c.Indexes, fields)
	if err != nil {
		return 0, err
	}

	cols := []string{"doc"}
	for _, idx := range c.Indexes {
		cols = append(cols, idx.column())
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", c.Name, strings.Join(cols, ", "), placeholders)

	var id int64
	err = db.runTx(ctx, txWrite, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, stmt, append([]any{doc}, keys...)...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("add %s: %w", collection, err)
	}
	return id, nil
}

// Put replaces the document with identity id. The identity must exist.
func Put[T any](ctx context.Context, db *DB, collection string, id int64, item T) error {
	c, err := db.schema.Collection(collection)
	if err != nil {
		return err
	}

	doc, fields, err := encode(item)
	if err != nil {
		return err
	}
	keys, err := extractKeys(c.Indexes, fields)
	if err != nil {
		return err
	}

	sets := []string{"doc = ?"}
	for _, idx := range c.Indexes {
		sets = append(sets, idx.column()+" = ?")
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", c.Name, strings.Join(sets, ", "))
	args := append(append([]any{doc}, keys...), id)

	err = db.runTx(ctx, txWrite, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		return requireRow(res, id)
	})
	if err != nil {
		return fmt.Errorf("put %s %d: %w", collection, id, err)
	}
	return nil
}

// Delete removes the document with identity id. The identity must exist.
func Delete(ctx context.Context, db *DB, collection string, id int64) error {
	c, err := db.schema.Collection(collection)
	if err != nil {
		return err
	}

	err = db.runTx(ctx, txWrite, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", c.Name), id)
		if err != nil {
			return err
		}
		return requireRow(res, id)
	})
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", collection, id, err)
	}
	return nil
}

// GetByIndex returns the documents whose index key equals key, ordered by identity.
func GetByIndex[T any](ctx context.Context, db *DB, collection, index string, key any) ([]T, error) {
	c, err := db.schema.Collection(collection)
	if err != nil {
		return nil, err
	}
	idx, err := c.Index(index)
	if err != nil {
		return nil, err
	}
	arg, err := keyArg(idx, key)
	if err != nil {
		return nil, err
	}

	var out []T
	err = db.runTx(ctx, txRead, func(tx *sql.Tx) error {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? ORDER BY id", docColumn, c.Name, idx.column())
		out, err = queryDocs[T](ctx, tx, query, arg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get %s by %s: %w", collection, index, err)
	}
	return out, nil
}

// GetByRange returns the documents whose index key falls in r, ordered by
// key then identity.
func GetByRange[T any](ctx context.Context, db *DB, collection, index string, r KeyRange) ([]T, error) {
	c, err := db.schema.Collection(collection)
	if err != nil {
		return nil, err
	}
	idx, err := c.Index(index)
	if err != nil {
		return nil, err
	}

	col := idx.column()
	where := []string{col + " IS NOT NULL"}
	var args []any
	if r.Lower != nil {
		arg, err := keyArg(idx, r.Lower)
		if err != nil {
			return nil, err
		}
		op := ">="
		if r.LowerOpen {
			op = ">"
		}
		where = append(where, fmt.Sprintf("%s %s ?", col, op))
		args = append(args, arg)
	}
	if r.Upper != nil {
		arg, err := keyArg(idx, r.Upper)
		if err != nil {
			return nil, err
		}
		op := "<="
		if r.UpperOpen {
			op = "<"
		}
		where = append(where, fmt.Sprintf("%s %s ?", col, op))
		args = append(args, arg)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s, id",
		docColumn, c.Name, strings.Join(where, " AND "), col)

	var out []T
	err = db.runTx(ctx, txRead, func(tx *sql.Tx) error {
		out, err = queryDocs[T](ctx, tx, query, args...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get %s by %s range: %w", collection, index, err)
	}
	return out, nil
}

func queryDocs[T any](ctx context.Context, tx *sql.Tx, query string, args ...any) ([]T, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var item T
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no document with id %d", id)
	}
	return nil
}
