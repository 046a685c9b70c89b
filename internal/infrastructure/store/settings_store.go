package store

import (
	"context"
	"database/sql"

	"github.com/example/luxa-shop/internal/domain/admin"
)

// settingsID is the primary key of the admin_settings singleton.
const settingsID = 1

// PostgresSettingsStore implements admin.SettingsRepository
type PostgresSettingsStore struct {
	db *sql.DB
}

func NewPostgresSettingsStore(db *sql.DB) *PostgresSettingsStore {
	return &PostgresSettingsStore{db: db}
}

func scanSettings(row rowScanner) (*admin.Settings, error) {
	var (
		s    admin.Settings
		hash sql.NullString
	)
	if err := row.Scan(&s.ID, &hash, &s.DefaultShippingBureau, &s.DefaultShippingDomicile, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.PasswordHash = hash.String
	return &s, nil
}

func (st *PostgresSettingsStore) Get(ctx context.Context) (*admin.Settings, error) {
	s, err := scanSettings(st.db.QueryRowContext(ctx, `
		SELECT id, admin_password_hash, default_shipping_bureau, default_shipping_domicile, updated_at
		FROM admin_settings WHERE id = $1
	`, settingsID))
	return s, classify("get admin settings", err)
}

func (st *PostgresSettingsStore) UpdatePasswordHash(ctx context.Context, digest string) error {
	res, err := st.db.ExecContext(ctx, `
		UPDATE admin_settings SET admin_password_hash = $1, updated_at = NOW() WHERE id = $2
	`, digest, settingsID)
	if err != nil {
		return classify("update admin password", err)
	}
	return notFoundIfNone("update admin password", res)
}

func (st *PostgresSettingsStore) UpdateDefaultShipping(ctx context.Context, bureau, domicile int) (*admin.Settings, error) {
	s, err := scanSettings(st.db.QueryRowContext(ctx, `
		UPDATE admin_settings
		SET default_shipping_bureau = $1, default_shipping_domicile = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, admin_password_hash, default_shipping_bureau, default_shipping_domicile, updated_at
	`, bureau, domicile, settingsID))
	return s, classify("update default shipping", err)
}
