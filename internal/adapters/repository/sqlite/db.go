// Package sqlite はエンティティを JSON ドキュメントとして SQLite に保存するリポジトリです。
// ローカル実行とテスト用で、PostgreSQL と同じリポジトリインターフェースを満たします。
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// MemoryPath はプロセス内だけで有効なデータベースを指します。
const MemoryPath = ":memory:"

var collections = []string{"employees", "companies", "locations"}

// DB は SQLite 接続です。
type DB struct {
	db   *sql.DB
	path string
}

// Open は path のデータベースを開き、必要なテーブルを作成します。
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		path = MemoryPath
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// :memory: は接続ごとに別のデータベースになるため、接続を 1 本に固定する
	db.SetMaxOpenConns(1)

	for _, name := range collections {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			payload BLOB NOT NULL
		)`, name)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create %s table: %w", name, err)
		}
	}

	return &DB{db: db, path: path}, nil
}

// Close は接続を閉じます。
func (d *DB) Close() error {
	return d.db.Close()
}

// Path は開いているデータベースのパスを返します。
func (d *DB) Path() string { return d.path }
