package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const sqliteTimeLayout = time.RFC3339Nano

// Driver names registered by the two sqlite packages.
const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)

type SQLiteRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type kvRow struct {
	Key       string `db:"key"`
	Value     string `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

func NewSQLiteRepository(db *sqlx.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// OpenSQLite opens the database at path with the named driver and applies
// migrations.
func OpenSQLite(driver, path string) (*SQLiteRepository, error) {
	if driver == "" {
		driver = DriverCGO
	}
	db, err := sqlx.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context) (State, error) {
	rows := make([]kvRow, 0, len(Keys))
	if err := r.db.SelectContext(ctx, &rows, `SELECT key, value, updated_at FROM kv`); err != nil {
		return DefaultState(), fmt.Errorf("storage: load: %w", err)
	}
	raw := make(map[string][]byte, len(rows))
	for _, row := range rows {
		raw[row.Key] = []byte(row.Value)
	}
	return decodeState(raw)
}

func (r *SQLiteRepository) Save(ctx context.Context, st State) error {
	values, err := encodeState(st)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stamp := r.now().UTC().Format(sqliteTimeLayout)
	for _, key := range Keys {
		value := values[key]
		if value == nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
				return fmt.Errorf("storage: remove %s: %w", key, err)
			}
			continue
		}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO kv (key, value, updated_at) VALUES (:key, :value, :updated_at)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			kvRow{Key: key, Value: string(value), UpdatedAt: stamp},
		); err != nil {
			return fmt.Errorf("storage: save %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit save: %w", err)
	}
	return nil
}

// Value returns the raw JSON stored under key.
func (r *SQLiteRepository) Value(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Entry is one raw key with its last write time.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

func (r *SQLiteRepository) Entries(ctx context.Context) ([]Entry, error) {
	rows := make([]kvRow, 0, len(Keys))
	if err := r.db.SelectContext(ctx, &rows, `SELECT key, value, updated_at FROM kv ORDER BY key`); err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		updated, err := time.Parse(sqliteTimeLayout, row.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("storage: parse updated_at for %s: %w", row.Key, err)
		}
		out = append(out, Entry{Key: row.Key, Value: row.Value, UpdatedAt: updated})
	}
	return out, nil
}

// Delete removes one raw key. It returns ErrNotFound when the key is absent.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Backup copies every kv row into kv_backup under one backup stamp, which
// it returns.
func (r *SQLiteRepository) Backup(ctx context.Context) (string, error) {
	stamp := r.now().UTC().Format(sqliteTimeLayout)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO kv_backup (backup_at, key, value, updated_at) SELECT ?, key, value, updated_at FROM kv`, stamp)
	if err != nil {
		return "", fmt.Errorf("storage: backup: %w", err)
	}
	if err := checkRowsAffected(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("storage: backup: %w", err)
	}
	return "kv_backup@" + stamp, nil
}

// BackupEntries returns the rows saved by the backup with the given stamp.
func (r *SQLiteRepository) BackupEntries(ctx context.Context, stamp string) ([]Entry, error) {
	rows := make([]kvRow, 0, len(Keys))
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT key, value, updated_at FROM kv_backup WHERE backup_at = ? ORDER BY key`, stamp); err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		updated, err := time.Parse(sqliteTimeLayout, row.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("storage: parse updated_at for %s: %w", row.Key, err)
		}
		out = append(out, Entry{Key: row.Key, Value: row.Value, UpdatedAt: updated})
	}
	return out, nil
}
