package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sw33tLie/pricebot/pkg/catalog"
)

// ErrRefusingEmptyImport is returned when an import would wipe a non-empty store.
var ErrRefusingEmptyImport = errors.New("refusing to replace a non-empty catalog with zero items")

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
CREATE TABLE IF NOT EXISTS items (
  id            INTEGER PRIMARY KEY,
  position      INTEGER NOT NULL,
  name          TEXT NOT NULL,
  price_token   TEXT NOT NULL,
  numeric_price REAL NOT NULL DEFAULT 0,
  sales         TEXT NOT NULL DEFAULT 'cold',
  last_update   TEXT,
  category      TEXT,
  icon          TEXT
);
CREATE INDEX IF NOT EXISTS idx_items_position ON items(position);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
CREATE TABLE IF NOT EXISTS imports (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  source      TEXT NOT NULL,
  item_count  INTEGER NOT NULL
);
    `); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

// OpenReadOnly opens an existing store without creating, migrating or
// writing anything. A missing file is an error.
func OpenReadOnly(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	dsn := "file:" + path + "?mode=ro&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
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

// ReplaceItems swaps the stored catalog for items in one transaction and
// records the import. Readers never see a half-written catalog.
func (d *DB) ReplaceItems(ctx context.Context, source string, items []catalog.Item, allowEmpty bool) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if len(items) == 0 && !allowEmpty {
		var existing int
		if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			err = ErrRefusingEmptyImport
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items(position, name, price_token, numeric_price, sales, last_update, category, icon) VALUES(?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, it := range items {
		r := it.Record()
		if _, err = stmt.ExecContext(ctx, i, r.Name, r.Price, it.NumericPrice, r.Sales, nullIfEmpty(r.LastUpdate), nullIfEmpty(r.Category), nullIfEmpty(r.Icon)); err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO imports(occurred_at, source, item_count) VALUES(?, ?, ?)`, time.Now().UTC().Format(time.RFC3339), source, len(items)); err != nil {
		return err
	}

	return tx.Commit()
}

// ListRecords returns the stored catalog in its original order.
func (d *DB) ListRecords(ctx context.Context) ([]catalog.Record, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT name, price_token, sales, last_update, category, icon FROM items ORDER BY position, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Record
	for rows.Next() {
		var r catalog.Record
		var lastUpdate, category, icon sql.NullString
		if err := rows.Scan(&r.Name, &r.Price, &r.Sales, &lastUpdate, &category, &icon); err != nil {
			return nil, err
		}
		r.LastUpdate = lastUpdate.String
		r.Category = category.String
		r.Icon = icon.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListImports returns the most recent imports, newest first.
func (d *DB) ListImports(ctx context.Context, limit int) ([]Import, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.sql.QueryContext(ctx, "SELECT occurred_at, source, item_count FROM imports ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var imp Import
		var occurredAtStr string
		if err := rows.Scan(&occurredAtStr, &imp.Source, &imp.ItemCount); err != nil {
			return nil, err
		}
		// Try "2006-01-02 15:04:05" then RFC3339
		if t, perr := time.Parse("2006-01-02 15:04:05", occurredAtStr); perr == nil {
			imp.OccurredAt = t
		} else if t2, perr2 := time.Parse(time.RFC3339, occurredAtStr); perr2 == nil {
			imp.OccurredAt = t2
		}
		out = append(out, imp)
	}
	return out, rows.Err()
}

func (d *DB) GetStats(ctx context.Context) ([]CategoryStats, error) {
	query := `
		SELECT
			COALESCE(category, ''),
			COUNT(*),
			SUM(CASE WHEN sales = 'hot' THEN 1 ELSE 0 END),
			MIN(numeric_price),
			MAX(numeric_price)
		FROM
			items
		GROUP BY
			COALESCE(category, '')
		ORDER BY
			COALESCE(category, '');
	`
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []CategoryStats
	for rows.Next() {
		var s CategoryStats
		if err := rows.Scan(&s.Category, &s.ItemCount, &s.HotCount, &s.MinPrice, &s.MaxPrice); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
