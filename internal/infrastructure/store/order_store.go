package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/order"
)

const orderColumns = `id, order_number, customer_name, phone, wilaya_id, delivery_method,
	shipping_cost, items, total_amount, status, created_at, updated_at`

// PostgresOrderStore implements order.Repository on the orders table.
// Items are stored as a JSONB snapshot.
type PostgresOrderStore struct {
	db *sql.DB
}

func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

func scanOrder(row rowScanner) (*order.Order, error) {
	var (
		o        order.Order
		wilayaID sql.NullInt64
		items    []byte
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Phone, &wilayaID, &o.DeliveryMethod,
		&o.ShippingCost, &items, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if wilayaID.Valid {
		id := int(wilayaID.Int64)
		o.WilayaID = &id
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.OrderNumber, err)
	}
	return &o, nil
}

func (s *PostgresOrderStore) Insert(ctx context.Context, o *order.Order) (*order.Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}
	var wilayaID any
	if o.WilayaID != nil {
		wilayaID = *o.WilayaID
	}

	created, err := scanOrder(s.db.QueryRowContext(ctx, `
		INSERT INTO orders (order_number, customer_name, phone, wilaya_id, delivery_method,
			shipping_cost, items, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING `+orderColumns,
		o.OrderNumber, o.CustomerName, o.Phone, wilayaID, o.DeliveryMethod,
		o.ShippingCost, items, o.TotalAmount, o.Status,
	))
	if err != nil {
		// A duplicate order number is retryable: a resubmit draws a new one.
		return nil, apperr.Remote("insert order", err)
	}
	return created, nil
}

func (s *PostgresOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	return o, classify("get order", err)
}

func (s *PostgresOrderStore) List(ctx context.Context) ([]*order.Order, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC")
	if err != nil {
		return nil, classify("list orders", err)
	}
	defer rows.Close()

	orders := []*order.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, classify("scan order", err)
		}
		orders = append(orders, o)
	}
	return orders, classify("list orders", rows.Err())
}

func (s *PostgresOrderStore) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+orderColumns, status, id))
	return o, classify("update order status", err)
}

func (s *PostgresOrderStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return classify("delete order", err)
	}
	return notFoundIfNone("delete order", res)
}
