package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports that no row matched the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate reports a unique-constraint violation. The index is the
	// source of truth for uniqueness; application-level checks only exist to
	// produce friendlier messages.
	ErrDuplicate = errors.New("duplicate key")
	// ErrForeignKey reports a foreign-key violation (e.g. a note pointing at
	// a user id that does not exist).
	ErrForeignKey = errors.New("referenced record does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver and ORM errors onto the package sentinels so callers
// never see pgconn or gorm types.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrForeignKey, pgErr.ConstraintName)
		}
	}
	return err
}
