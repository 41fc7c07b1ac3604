package model

import (
	"time"
)

// Favorite is a user's bookmark of a box, unique per (user, box) pair.
type Favorite struct {
	UserID    string    `db:"user_id"`
	BoxID     string    `db:"box_id"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"
)
