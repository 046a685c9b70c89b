package store

import (
	"context"
	"database/sql"

	"github.com/example/luxa-shop/internal/domain/wilaya"
)

// PostgresWilayaStore implements wilaya.Repository on the wilayas table
type PostgresWilayaStore struct {
	db *sql.DB
}

func NewPostgresWilayaStore(db *sql.DB) *PostgresWilayaStore {
	return &PostgresWilayaStore{db: db}
}

func scanWilaya(row rowScanner) (*wilaya.Wilaya, error) {
	var w wilaya.Wilaya
	if err := row.Scan(&w.ID, &w.Code, &w.Name, &w.ShippingBureau, &w.ShippingDomicile, &w.IsActive); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *PostgresWilayaStore) ListActive(ctx context.Context) ([]*wilaya.Wilaya, error) {
	return s.list(ctx, `
		SELECT id, code, name, shipping_bureau, shipping_domicile, is_active
		FROM wilayas WHERE is_active = TRUE ORDER BY code ASC
	`)
}

// List returns every region, including the ones hidden from checkout.
func (s *PostgresWilayaStore) List(ctx context.Context) ([]*wilaya.Wilaya, error) {
	return s.list(ctx, `
		SELECT id, code, name, shipping_bureau, shipping_domicile, is_active
		FROM wilayas ORDER BY code ASC
	`)
}

func (s *PostgresWilayaStore) list(ctx context.Context, query string) ([]*wilaya.Wilaya, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify("list wilayas", err)
	}
	defer rows.Close()

	wilayas := []*wilaya.Wilaya{}
	for rows.Next() {
		w, err := scanWilaya(rows)
		if err != nil {
			return nil, classify("scan wilaya", err)
		}
		wilayas = append(wilayas, w)
	}
	return wilayas, classify("list wilayas", rows.Err())
}

func (s *PostgresWilayaStore) Get(ctx context.Context, id int) (*wilaya.Wilaya, error) {
	w, err := scanWilaya(s.db.QueryRowContext(ctx, `
		SELECT id, code, name, shipping_bureau, shipping_domicile, is_active
		FROM wilayas WHERE id = $1
	`, id))
	return w, classify("get wilaya", err)
}

func (s *PostgresWilayaStore) UpdateRates(ctx context.Context, id, bureau, domicile int) (*wilaya.Wilaya, error) {
	w, err := scanWilaya(s.db.QueryRowContext(ctx, `
		UPDATE wilayas SET shipping_bureau = $1, shipping_domicile = $2
		WHERE id = $3
		RETURNING id, code, name, shipping_bureau, shipping_domicile, is_active
	`, bureau, domicile, id))
	return w, classify("update wilaya rates", err)
}
