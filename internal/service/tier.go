package service

import (
	"github.com/bookboxapp/bookbox/internal/model"
)

// Unlimited marks a dimension with no finite bound.
const Unlimited = -1

// Limits is the per-plan cap on each entitlement dimension.
type Limits struct {
	MaxBoxes     int `json:"max_boxes"`
	MaxFavorites int `json:"max_favorites"`
	MaxVisits    int `json:"max_visits"`
}

func (l Limits) For(dimension string) int {
	switch dimension {
	case DimensionBoxes:
		return l.MaxBoxes
	case DimensionFavorites:
		return l.MaxFavorites
	case DimensionVisits:
		return l.MaxVisits
	}
	return 0
}

// TierPolicy is the static mapping from plan to limits. Pure lookup, no
// side effects. Unknown plans fail loudly; see ErrUnknownTier.
type TierPolicy struct{}

func NewTierPolicy() TierPolicy {
	return TierPolicy{}
}

func (TierPolicy) LimitsFor(plan string) (Limits, error) {
	switch plan {
	case model.PlanFreemium:
		return Limits{MaxBoxes: 5, MaxFavorites: 5, MaxVisits: 5}, nil
	case model.PlanPremium:
		return Limits{MaxBoxes: Unlimited, MaxFavorites: Unlimited, MaxVisits: Unlimited}, nil
	}
	return Limits{}, ErrUnknownTier
}
