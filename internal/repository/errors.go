package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrBoxNotFound       = errors.New("box not found")
	ErrTokenNotFound     = errors.New("token not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrLimitReached is returned by conditional inserts when the row
	// would push the user past their plan limit. The service layer turns
	// it into a typed denial with the current numbers.
	ErrLimitReached = errors.New("plan limit reached")

	// ErrStoreUnavailable wraps transient driver failures. Reads may be
	// retried by the caller; writes must not be (except the idempotent
	// favorite set).
	ErrStoreUnavailable = errors.New("store unavailable")
)

// classify maps driver errors onto the repository error set. The string
// checks cover both SQLite and PostgreSQL wire messages, same approach
// as the unique-constraint detection on user creation.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "SQLITE_BUSY"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "broken pipe"):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
