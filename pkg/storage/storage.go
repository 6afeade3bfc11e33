package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/foodscope/foodscope/pkg/openfoodfacts"
)

// ErrCacheMiss is returned when a product is not cached or its cache entry
// is older than the caller's max age.
var ErrCacheMiss = errors.New("storage: cache miss")

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS products (
  code       TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  data       TEXT NOT NULL,
  fetched_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS history (
  id         INTEGER PRIMARY KEY,
  code       TEXT NOT NULL,
  name       TEXT NOT NULL,
  grade      TEXT,
  scanned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_history_time ON history(scanned_at);
CREATE TABLE IF NOT EXISTS favorites (
  code     TEXT PRIMARY KEY,
  name     TEXT NOT NULL,
  added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// SaveProduct upserts a fetched product into the cache. The full record is
// stored as JSON; the cache is a convenience copy of upstream data, never
// the source of truth.
func (d *DB) SaveProduct(ctx context.Context, p *openfoodfacts.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product %s: %w", p.Code, err)
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO products(code, name, data, fetched_at) VALUES(?,?,?,?)
		 ON CONFLICT(code) DO UPDATE SET name=excluded.name, data=excluded.data, fetched_at=excluded.fetched_at`,
		p.Code, p.Name, string(data), time.Now().Unix())
	return err
}

// GetProduct returns a cached product no older than maxAge, or ErrCacheMiss.
func (d *DB) GetProduct(ctx context.Context, code string, maxAge time.Duration) (*openfoodfacts.Product, error) {
	var data string
	var fetchedAt int64
	err := d.sql.QueryRowContext(ctx,
		"SELECT data, fetched_at FROM products WHERE code = ?", code).Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	if maxAge > 0 && time.Since(time.Unix(fetchedAt, 0)) > maxAge {
		return nil, ErrCacheMiss
	}

	var p openfoodfacts.Product
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		// A corrupt cache row behaves like a miss so the caller refetches.
		return nil, ErrCacheMiss
	}
	return &p, nil
}

// HistoryEntry is one scan in the lookup log.
type HistoryEntry struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Grade     string    `json:"grade,omitempty"`
	ScannedAt time.Time `json:"scanned_at"`
}

func (d *DB) AddHistory(ctx context.Context, code, name, grade string) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO history(code, name, grade) VALUES(?,?,?)", code, name, grade)
	return err
}

func (d *DB) ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.QueryContext(ctx,
		"SELECT code, name, COALESCE(grade, ''), scanned_at FROM history ORDER BY scanned_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var e HistoryEntry
		var scannedAtStr string
		if err := rows.Scan(&e.Code, &e.Name, &e.Grade, &scannedAtStr); err != nil {
			return nil, err
		}
		e.ScannedAt = parseSQLiteTime(scannedAtStr)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *DB) ClearHistory(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM history")
	return err
}

// FavoriteEntry is one bookmarked product.
type FavoriteEntry struct {
	Code    string    `json:"code"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"added_at"`
}

func (d *DB) AddFavorite(ctx context.Context, code, name string) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO favorites(code, name) VALUES(?,?)
		 ON CONFLICT(code) DO UPDATE SET name=excluded.name`, code, name)
	return err
}

func (d *DB) RemoveFavorite(ctx context.Context, code string) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM favorites WHERE code = ?", code)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (d *DB) ListFavorites(ctx context.Context) ([]FavoriteEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT code, name, added_at FROM favorites ORDER BY added_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []FavoriteEntry{}
	for rows.Next() {
		var e FavoriteEntry
		var addedAtStr string
		if err := rows.Scan(&e.Code, &e.Name, &addedAtStr); err != nil {
			return nil, err
		}
		e.AddedAt = parseSQLiteTime(addedAtStr)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

type Stats struct {
	CachedProducts int `json:"cached_products"`
	HistoryEntries int `json:"history_entries"`
	Favorites      int `json:"favorites"`
}

func (d *DB) GetStats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&s.CachedProducts); err != nil {
		return s, err
	}
	if err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&s.HistoryEntries); err != nil {
		return s, err
	}
	if err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM favorites").Scan(&s.Favorites); err != nil {
		return s, err
	}
	return s, nil
}

// parseSQLiteTime parses SQLite CURRENT_TIMESTAMP output.
// Tries "2006-01-02 15:04:05" then RFC3339.
func parseSQLiteTime(s string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
