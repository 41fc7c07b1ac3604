package model

import (
	"time"
)

// Box is a physical book-exchange location. The creator is fixed at
// creation; ownership never transfers. The creator's username is
// denormalized so the map and detail views don't need a join.
type Box struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	Latitude        float64   `db:"latitude"`
	Longitude       float64   `db:"longitude"`
	ImagePath       *string   `db:"image_path"`
	CreatorID       string    `db:"creator_id"`
	CreatorUsername string    `db:"creator_username"`
	CreatedAt       time.Time `db:"created_at"`

	// Computed fields (not in database)
	ImageURL string `db:"-"`
}
