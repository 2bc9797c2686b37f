package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// WriteResult reports the outcome of a guarded UPDATE or DELETE.
type WriteResult int

const (
	// WriteOK means the row was written.
	WriteOK WriteResult = iota
	// WriteNotFound means no row matched the identity.
	WriteNotFound
	// WriteStale means the row changed or vanished between read and write.
	WriteStale
)

func (r WriteResult) String() string {
	switch r {
	case WriteOK:
		return "ok"
	case WriteNotFound:
		return "not found"
	case WriteStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
