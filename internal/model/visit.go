package model

import (
	"time"
)

// Visit is an append-only record of a user stopping by a box. Rows are
// never mutated or deleted (except by cascade). A visit with a non-nil
// rating is the canonical "has visited" marker for the (user, box) pair;
// comment-only rows show up in the feed but don't count toward it.
type Visit struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	BoxID     string    `db:"box_id"`
	Rating    *int      `db:"rating"`
	Comment   *string   `db:"comment"`
	VisitedAt time.Time `db:"visited_at"`

	// Joined fields for the review feed and "my visits" views
	// (not in the visits table)
	VisitorUsername   string  `db:"visitor_username"`
	VisitorAvatarPath *string `db:"visitor_avatar_path"`
	VisitorAvatarURL  string  `db:"-"`
	BoxName           string  `db:"box_name"`
}

func (v *Visit) IsCanonical() bool {
	return v.Rating != nil
}
