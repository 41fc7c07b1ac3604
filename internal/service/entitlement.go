package service

import (
	"context"
	"fmt"
)

// Decision is the outcome of an entitlement check. When not allowed it
// names the limiting dimension and the numbers behind the denial.
type Decision struct {
	Allowed   bool   `json:"allowed"`
	Dimension string `json:"dimension,omitempty"`
	Current   int    `json:"current,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// EntitlementGuard decides whether a user may perform a limited action
// given their plan and current usage. Checks here are advisory (the UI
// asks before rendering the form); the authoritative check runs inside
// the store write itself, see the conditional inserts in the
// repositories.
type EntitlementGuard struct {
	policy        TierPolicy
	usage         *UsageCounter
	subscriptions *SubscriptionService
}

func NewEntitlementGuard(policy TierPolicy, usage *UsageCounter, subscriptions *SubscriptionService) *EntitlementGuard {
	return &EntitlementGuard{
		policy:        policy,
		usage:         usage,
		subscriptions: subscriptions,
	}
}

// LimitsFor loads the user's plan and returns its limits.
func (g *EntitlementGuard) LimitsFor(ctx context.Context, userID string) (Limits, error) {
	sub, err := g.subscriptions.Subscription(ctx, userID)
	if err != nil {
		return Limits{}, err
	}

	limits, err := g.policy.LimitsFor(sub.Plan)
	if err != nil {
		return Limits{}, fmt.Errorf("user %s: %w", userID, err)
	}

	return limits, nil
}

func (g *EntitlementGuard) CanCreateBox(ctx context.Context, userID string) (Decision, error) {
	return g.check(ctx, userID, DimensionBoxes, g.usage.OwnedBoxes)
}

func (g *EntitlementGuard) CanFavorite(ctx context.Context, userID string) (Decision, error) {
	return g.check(ctx, userID, DimensionFavorites, g.usage.Favorites)
}

func (g *EntitlementGuard) CanVisit(ctx context.Context, userID string) (Decision, error) {
	return g.check(ctx, userID, DimensionVisits, g.usage.CanonicalVisits)
}

func (g *EntitlementGuard) check(
	ctx context.Context,
	userID, dimension string,
	count func(context.Context, string) (int, error),
) (Decision, error) {
	limits, err := g.LimitsFor(ctx, userID)
	if err != nil {
		return Decision{}, err
	}

	limit := limits.For(dimension)
	if limit == Unlimited {
		return Decision{Allowed: true}, nil
	}

	current, err := count(ctx, userID)
	if err != nil {
		return Decision{}, err
	}

	if current >= limit {
		return Decision{Allowed: false, Dimension: dimension, Current: current, Limit: limit}, nil
	}

	return Decision{Allowed: true}, nil
}

// deny builds the typed denial after a conditional insert refused the
// row, re-reading the count so the message carries fresh numbers.
func (g *EntitlementGuard) deny(ctx context.Context, userID, dimension string, limit int) error {
	var current int
	var err error
	switch dimension {
	case DimensionBoxes:
		current, err = g.usage.OwnedBoxes(ctx, userID)
	case DimensionFavorites:
		current, err = g.usage.Favorites(ctx, userID)
	case DimensionVisits:
		current, err = g.usage.CanonicalVisits(ctx, userID)
	}
	if err != nil {
		current = limit
	}
	return &DeniedError{Dimension: dimension, Current: current, Limit: limit}
}
