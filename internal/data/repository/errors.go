package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrReferenceMissing = errors.New("referenced record does not exist")

	// ErrUserMissing is a foreign key failure on the acting user rather than
	// on the review, comment or menu item being referenced.
	ErrUserMissing = errors.New("user does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pg error helpers (kept local to repository)
func isUniqueViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr, true
	}
	return nil, false
}

func isFKViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return pgErr, true
	}
	return nil, false
}

// classify tags constraint and no-rows errors with a repository sentinel while
// keeping the driver error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if pgErr, ok := isUniqueViolation(err); ok {
		return fmt.Errorf("%w (%s): %w", ErrDuplicate, pgErr.ConstraintName, err)
	}
	if pgErr, ok := isFKViolation(err); ok {
		if isUserConstraint(pgErr.ConstraintName) {
			return fmt.Errorf("%w (%s): %w", ErrUserMissing, pgErr.ConstraintName, err)
		}
		return fmt.Errorf("%w (%s): %w", ErrReferenceMissing, pgErr.ConstraintName, err)
	}
	return err
}

// isUserConstraint matches the named user keys in schema.sql and the default
// <table>_user_id_fkey names of older databases.
func isUserConstraint(name string) bool {
	return strings.HasSuffix(name, "_user_fkey") || strings.HasSuffix(name, "_user_id_fkey")
}
