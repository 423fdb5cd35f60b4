package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every store implementation. The postgres
// stores translate driver failures into these, so callers can match with
// errors.Is without importing driver packages.
var (
	// ErrNotFound is the generic absence error; the entity-specific
	// variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is the generic uniqueness-violation error.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity marks an entity that failed validation on its way
	// into the store. The wrapped error names the failing rule.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed marks a transaction that could not begin or
	// commit. Errors from the unit of work itself pass through untouched.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Entity-specific variants. Each wraps its generic sentinel, so a caller
// matching errors.Is(err, ErrNotFound) catches all of them.
var (
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrProfileNotFound  = fmt.Errorf("%w: profile", ErrNotFound)
	ErrLevelNotFound    = fmt.Errorf("%w: level", ErrNotFound)
	ErrCardNotFound     = fmt.Errorf("%w: card", ErrNotFound)
	ErrProgressNotFound = fmt.Errorf("%w: card progress", ErrNotFound)

	// ErrEmailExists is returned when registration hits the unique index
	// on users.email.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError reports whether err is ErrNotFound or one of its
// entity-specific variants.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is ErrDuplicate or one of its
// entity-specific variants.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
