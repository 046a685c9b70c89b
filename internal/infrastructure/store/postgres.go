package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/lib/pq"
)

// ConnectPostgres establishes a connection to PostgreSQL
func ConnectPostgres(connStr string) (*sql.DB, error) {
	if connStr == "" {
		return nil, apperr.Configuration("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, apperr.Configuration(err.Error())
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperr.Remote("connect postgres", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// uniqueViolation is the SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// classify maps driver errors onto the apperr taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(op)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperr.Validation(pqErr.Column, "already exists: "+pqErr.Message)
	}
	return apperr.Remote(op, err)
}

// notFoundIfNone turns an UPDATE/DELETE that touched no row into NotFound.
func notFoundIfNone(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Remote(op, err)
	}
	if n == 0 {
		return apperr.NotFound(op)
	}
	return nil
}
