package repository

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"redviva-data/internal/config"
)

// ErrNotFound wrapped by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// NewPostgresDB opens and pings the Postgres connection.
func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
