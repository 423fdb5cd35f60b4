package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/repaso-app/repaso-api/internal/store"
)

// PostgreSQL error codes from the integrity-constraint-violation class.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// MapError translates driver-level errors into the store sentinels so that
// callers can match with errors.Is. The original error text is carried along
// with %v rather than %w, keeping pgconn.PgError from leaking past the
// persistence layer. Errors without a mapping pass through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case foreignKeyViolationCode:
		return fmt.Errorf("%w: foreign key violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case checkViolationCode:
		return fmt.Errorf("%w: check constraint violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: not null violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ColumnName, err)
	default:
		return err
	}
}

// pgErrorCode extracts the PostgreSQL error code from err, matching through
// any wrapping. It returns "" when err does not carry a pgconn.PgError.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return pgErrorCode(err) == uniqueViolationCode
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == foreignKeyViolationCode
}

// IsCheckConstraintViolation reports whether err is a check constraint violation.
func IsCheckConstraintViolation(err error) bool {
	return pgErrorCode(err) == checkViolationCode
}

// IsNotNullViolation reports whether err is a not null violation.
func IsNotNullViolation(err error) bool {
	return pgErrorCode(err) == notNullViolationCode
}

// IsNotFoundError reports whether err represents a missing row, either as a
// raw sql.ErrNoRows or as anything wrapping store.ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, store.ErrNotFound)
}

// CheckRowsAffected turns a zero-rows-affected result into notFound, which
// should be one of the entity-specific store sentinels (store.ErrNotFound is
// used when nil). UPDATE statements use it to detect that the target record
// does not exist.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}

// MapUniqueViolation refines a unique-violation error. When specificError is
// given it becomes the matchable sentinel (store.ErrEmailExists and friends);
// otherwise a store.ErrDuplicate is built from whichever of entityName or
// constraintName is known. Every other error passes through unchanged.
func MapUniqueViolation(
	err error,
	entityName string,
	constraintName string,
	specificError error,
) error {
	if !IsUniqueViolation(err) {
		return err
	}

	if specificError != nil {
		return fmt.Errorf("%w: %v", specificError, err)
	}

	switch {
	case entityName != "":
		return fmt.Errorf("%w: %s already exists: %v", store.ErrDuplicate, entityName, err)
	case constraintName != "":
		return fmt.Errorf("%w: duplicate value for constraint: %s: %v",
			store.ErrDuplicate, constraintName, err)
	default:
		return fmt.Errorf("%w: duplicate entry: %v", store.ErrDuplicate, err)
	}
}
