package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists products in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at path and makes sure
// the products table exists. Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS products (
			name_key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			strain TEXT,
			tier TEXT NOT NULL,
			weight_lbs REAL NOT NULL,
			price_per_lb REAL NOT NULL,
			thca REAL NOT NULL,
			weekly_sales_lbs REAL NOT NULL
		);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to create catalog schema: %w", err)
		}
	}
	return nil
}

// Upsert writes products in a single transaction, replacing rows with the
// same name.
func (s *SQLiteStore) Upsert(ctx context.Context, products []Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO products
		(name_key, name, strain, tier, weight_lbs, price_per_lb, thca, weekly_sales_lbs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare product insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, key(p.Name), p.Name, p.Strain, string(p.Tier),
			p.WeightLbs, p.PricePerLb, p.THCa, p.WeeklySalesLbs); err != nil {
			return fmt.Errorf("failed to write product %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) List(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, strain, tier, weight_lbs, price_per_lb, thca, weekly_sales_lbs FROM products`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT name, strain, tier, weight_lbs, price_per_lb, thca, weekly_sales_lbs FROM products WHERE name_key = ?`, key(name))
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, name)
	}
	return p, err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(r scanner) (Product, error) {
	var (
		p    Product
		tier string
	)
	if err := r.Scan(&p.Name, &p.Strain, &tier, &p.WeightLbs, &p.PricePerLb, &p.THCa, &p.WeeklySalesLbs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, err
		}
		return Product{}, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Tier = QualityTier(tier)
	return p, nil
}
