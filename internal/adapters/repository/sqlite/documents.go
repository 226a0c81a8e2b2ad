package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// documents は 1 テーブル分の JSON ドキュメントを扱います。id は INTEGER の連番を文字列にしたものです。
type documents[T any] struct {
	db       *sql.DB
	table    string
	withID   func(T, string) T
	notFound error
}

func newDocuments[T any](d *DB, table string, withID func(T, string) T, notFound error) documents[T] {
	return documents[T]{db: d.db, table: table, withID: withID, notFound: notFound}
}

func (d documents[T]) create(ctx context.Context, v T) (T, error) {
	var zero T
	payload, err := json.Marshal(d.withID(v, ""))
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", d.table, err)
	}

	res, err := d.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (payload) VALUES (?)`, d.table), payload)
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", d.table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", d.table, err)
	}
	return d.withID(v, strconv.FormatInt(id, 10)), nil
}

func (d documents[T]) update(ctx context.Context, id string, v T) (T, error) {
	var zero T
	rowID, ok := parseID(id)
	if !ok {
		return zero, d.notFound
	}
	payload, err := json.Marshal(d.withID(v, ""))
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", d.table, err)
	}

	res, err := d.db.ExecContext(ctx, fmt.Sprintf(`UPDATE %s SET payload = ? WHERE id = ?`, d.table), payload, rowID)
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", d.table, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return zero, fmt.Errorf("update %s: %w", d.table, err)
	} else if n == 0 {
		return zero, d.notFound
	}
	return d.withID(v, id), nil
}

func (d documents[T]) delete(ctx context.Context, id string) error {
	rowID, ok := parseID(id)
	if !ok {
		return d.notFound
	}
	res, err := d.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, d.table), rowID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", d.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", d.table, err)
	}
	if n == 0 {
		return d.notFound
	}
	return nil
}

func (d documents[T]) find(ctx context.Context, id string) (T, error) {
	var zero T
	rowID, ok := parseID(id)
	if !ok {
		return zero, d.notFound
	}

	var payload []byte
	err := d.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT payload FROM %s WHERE id = ?`, d.table), rowID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, d.notFound
	}
	if err != nil {
		return zero, fmt.Errorf("select %s: %w", d.table, err)
	}
	return d.decode(id, payload)
}

func (d documents[T]) list(ctx context.Context, match func(T) bool) ([]T, error) {
	rows, err := d.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, payload FROM %s ORDER BY id`, d.table))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", d.table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		var rowID int64
		var payload []byte
		if err := rows.Scan(&rowID, &payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", d.table, err)
		}
		v, err := d.decode(strconv.FormatInt(rowID, 10), payload)
		if err != nil {
			return nil, err
		}
		if match(v) {
			out = append(out, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", d.table, err)
	}
	return out, nil
}

func (d documents[T]) decode(id string, payload []byte) (T, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s %s: %w", d.table, id, err)
	}
	return d.withID(v, id), nil
}

func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	return n, err == nil && n > 0
}
