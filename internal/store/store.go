package store

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// DriverName is the database/sql driver registered by pgx's stdlib package.
const DriverName = "pgx"

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, url string, maxOpenConns int) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, url)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return db, nil
}

// Store groups the repositories sharing one connection pool.
type Store struct {
	db             *sqlx.DB
	Empresas       *EmpresaRepository
	Transportistas *TransportistaRepository
	Catalogs       *CatalogRepository
}

func New(db *sqlx.DB) *Store {
	return &Store{
		db:             db,
		Empresas:       &EmpresaRepository{db: db},
		Transportistas: &TransportistaRepository{db: db},
		Catalogs:       &CatalogRepository{db: db},
	}
}

// DB exposes the pool for migrations and health checks.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// execOne runs a write that must touch exactly one row.
func execOne(ctx context.Context, db *sqlx.DB, query string, arg any) error {
	res, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return FromDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return FromDBError(err)
	}
	if n == 0 {
		return notFound()
	}
	return nil
}
