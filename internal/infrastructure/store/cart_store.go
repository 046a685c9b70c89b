package store

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/example/luxa-shop/internal/apperr"
)

// cartSessionsSchema creates the table backing PostgresCartStorage. It is
// the only table this service owns.
const cartSessionsSchema = `
CREATE TABLE IF NOT EXISTS cart_sessions (
	key        TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresCartStorage implements cart.Storage on the cart_sessions table
type PostgresCartStorage struct {
	db *sql.DB
}

func NewPostgresCartStorage(db *sql.DB) *PostgresCartStorage {
	return &PostgresCartStorage{db: db}
}

// Migrate creates the cart_sessions table if it does not exist yet.
func (s *PostgresCartStorage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, cartSessionsSchema); err != nil {
		return apperr.Remote("create cart_sessions", err)
	}
	log.Println("[PostgresStore] cart_sessions table ready")
	return nil
}

// Load returns nil data when the key has never been saved.
func (s *PostgresCartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM cart_sessions WHERE key = $1", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Remote("load cart", err)
	}
	return data, nil
}

func (s *PostgresCartStorage) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_sessions (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`, key, data)
	if err != nil {
		return apperr.Remote("save cart", err)
	}
	return nil
}
