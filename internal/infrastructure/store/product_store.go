package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/luxa-shop/internal/domain/catalog"
	"github.com/lib/pq"
)

const productColumns = `id, name, slug, price, description, category, images, stock,
	is_new, is_bestseller, variants, created_at, updated_at`

// PostgresProductStore implements catalog.Repository on the products table
type PostgresProductStore struct {
	db *sql.DB
}

func NewPostgresProductStore(db *sql.DB) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var (
		p           catalog.Product
		description sql.NullString
		stock       sql.NullInt64
		variants    []byte
		images      pq.StringArray
	)
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &description, &p.Category, &images, &stock,
		&p.IsNew, &p.IsBestseller, &variants, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Images = []string(images)
	if p.Images == nil {
		p.Images = []string{}
	}
	if stock.Valid {
		n := int(stock.Int64)
		p.Stock = &n
	}
	if len(variants) > 0 {
		if err := json.Unmarshal(variants, &p.Variants); err != nil {
			return nil, fmt.Errorf("decode variants of product %s: %w", p.ID, err)
		}
	}
	return &p, nil
}

func productArgs(p *catalog.Product) ([]any, error) {
	var variants any
	if len(p.Variants) > 0 {
		b, err := json.Marshal(p.Variants)
		if err != nil {
			return nil, err
		}
		variants = b
	}
	var stock any
	if p.Stock != nil {
		stock = *p.Stock
	}
	return []any{
		p.Name, p.Slug, p.Price, nullString(p.Description), p.Category,
		pq.Array(p.Images), stock, p.IsNew, p.IsBestseller, variants,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *PostgresProductStore) List(ctx context.Context, f catalog.Filter) ([]*catalog.Product, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.IsNew != nil {
		args = append(args, *f.IsNew)
		where = append(where, fmt.Sprintf("is_new = $%d", len(args)))
	}
	if f.IsBestseller != nil {
		args = append(args, *f.IsBestseller)
		where = append(where, fmt.Sprintf("is_bestseller = $%d", len(args)))
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("list products", err)
	}
	defer rows.Close()

	products := []*catalog.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, classify("scan product", err)
		}
		products = append(products, p)
	}
	return products, classify("list products", rows.Err())
}

func (s *PostgresProductStore) Get(ctx context.Context, id string) (*catalog.Product, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	return p, classify("get product", err)
}

func (s *PostgresProductStore) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE slug = $1", slug)
	p, err := scanProduct(row)
	return p, classify("get product by slug", err)
}

func (s *PostgresProductStore) Insert(ctx context.Context, p *catalog.Product) (*catalog.Product, error) {
	args, err := productArgs(p)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, price, description, category, images, stock,
			is_new, is_bestseller, variants, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING `+productColumns, args...)
	created, err := scanProduct(row)
	return created, classify("insert product", err)
}

func (s *PostgresProductStore) Update(ctx context.Context, p *catalog.Product) (*catalog.Product, error) {
	args, err := productArgs(p)
	if err != nil {
		return nil, err
	}
	args = append(args, p.ID)
	row := s.db.QueryRowContext(ctx, `
		UPDATE products SET
			name = $1, slug = $2, price = $3, description = $4, category = $5,
			images = $6, stock = $7, is_new = $8, is_bestseller = $9, variants = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING `+productColumns, args...)
	updated, err := scanProduct(row)
	return updated, classify("update product", err)
}

func (s *PostgresProductStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return classify("delete product", err)
	}
	return notFoundIfNone("delete product", res)
}
