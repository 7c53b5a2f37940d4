package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"halcon-service/config"
	"halcon-service/internal/apperr"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/multierr"
)

type Store struct {
	db *sqlx.DB
}

// NewStore opens the connection pool and verifies it with a ping
func NewStore(cfg config.DatabaseConfig) (*Store, error) {
	db, err := sqlx.Connect("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing pool
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Stats reports pool usage
func (s *Store) Stats() sql.DBStats {
	return s.db.Stats()
}

// withTx runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back otherwise, including when fn panics; a failed
// rollback is appended to the original error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Wrap(apperr.CodeStore, err, "failed to begin transaction")
	}
	// Rollback after a commit reports sql.ErrTxDone and is a no-op.
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = multierr.Append(err, fmt.Errorf("rollback: %w", rbErr))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return apperr.Wrap(apperr.CodeStore, err, "failed to commit transaction")
	}
	return nil
}

// expectAffected turns a zero-row update or delete into NotFound
func expectAffected(res sql.Result, resource string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Wrap(apperr.CodeStore, err, "failed to read affected rows")
	}
	if n == 0 {
		return apperr.NotFound(resource, id)
	}
	return nil
}
