package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Cache persists fetched catalog products locally so the pipeline can fall
// back to the last known catalog when the remote service is unreachable.
type Cache struct {
	db *sql.DB
}

// NewCache opens (or creates) the cache database at dbPath.
func NewCache(dbPath string) (*Cache, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("cache path is required")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	cache := &Cache{db: db}
	if err := cache.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		brand TEXT NOT NULL,
		rating REAL NOT NULL,
		fetched_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}
	return nil
}

// Save upserts the given products, replacing any stale entries.
func (c *Cache) Save(ctx context.Context, products []Product) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, title, category, brand, rating, fetched_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			brand = excluded.brand,
			rating = excluded.rating,
			fetched_at = excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare cache upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Title, p.Category, p.Brand, p.Rating); err != nil {
			return fmt.Errorf("failed to cache product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache transaction: %w", err)
	}
	return nil
}

// Load returns every cached product, ordered by ID.
func (c *Cache) Load(ctx context.Context) ([]Product, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, title, category, brand, rating FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Category, &p.Brand, &p.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan cached product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cached products: %w", err)
	}
	return products, nil
}
