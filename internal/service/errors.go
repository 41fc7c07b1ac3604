package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOwner is an authorization failure: only the creator may
	// delete or edit a box. Never retried, surfaced as a denial.
	ErrNotOwner = errors.New("only the creator can modify this box")

	// ErrUnknownTier means a subscription row carries a plan outside the
	// closed set. That is a data integrity problem (migration bug or
	// tampering); guessing a fallback tier either escalates privileges
	// or breaks paying users, so the operation fails instead.
	ErrUnknownTier = errors.New("unknown subscription plan")

	// ErrAlreadyVisited rejects a second rated visit for the same box.
	ErrAlreadyVisited = errors.New("box already rated by this user")
)

// Entitlement dimensions, named the way the UI surfaces them.
const (
	DimensionBoxes     = "boxes"
	DimensionFavorites = "favorites"
	DimensionVisits    = "visits"
)

// DeniedError is the expected "you've hit your limit" case. It carries
// the limiting dimension and the numbers so the caller can present them;
// it is never silently degraded.
type DeniedError struct {
	Dimension string
	Current   int
	Limit     int
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s limit reached (%d of %d)", e.Dimension, e.Current, e.Limit)
}

// IsDenied reports whether err is an entitlement denial and returns it.
func IsDenied(err error) (*DeniedError, bool) {
	var de *DeniedError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
