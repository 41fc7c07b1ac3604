package model

import (
	"time"
)

// Subscription tracks a user's plan. Payment processing is out of scope:
// the upgrade endpoint flips the plan directly, so there are no provider
// or billing-period columns here.
type Subscription struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Plan      string    `db:"plan"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

const (
	PlanFreemium = "freemium"
	PlanPremium  = "premium"
)

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}

func (s *Subscription) IsPremium() bool {
	return s.Plan == PlanPremium && s.IsActive()
}
