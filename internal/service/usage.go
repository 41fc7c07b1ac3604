package service

import (
	"context"

	"github.com/bookboxapp/bookbox/internal/repository"
)

// Usage is a snapshot of a user's consumption on every gated dimension.
type Usage struct {
	Boxes     int `json:"boxes"`
	Favorites int `json:"favorites"`
	Visits    int `json:"visits"`
}

// UsageCounter recomputes usage from the store on every call. There is
// deliberately no cache here: a stale count makes the entitlement guard
// decide wrong.
type UsageCounter struct {
	boxRepo      repository.BoxRepository
	favoriteRepo repository.FavoriteRepository
	visitRepo    repository.VisitRepository
}

func NewUsageCounter(
	boxRepo repository.BoxRepository,
	favoriteRepo repository.FavoriteRepository,
	visitRepo repository.VisitRepository,
) *UsageCounter {
	return &UsageCounter{
		boxRepo:      boxRepo,
		favoriteRepo: favoriteRepo,
		visitRepo:    visitRepo,
	}
}

func (c *UsageCounter) OwnedBoxes(ctx context.Context, userID string) (int, error) {
	return c.boxRepo.CountByCreator(ctx, userID)
}

func (c *UsageCounter) Favorites(ctx context.Context, userID string) (int, error) {
	return c.favoriteRepo.CountByUser(ctx, userID)
}

// CanonicalVisits counts visits carrying a rating; comment-only rows
// don't consume quota.
func (c *UsageCounter) CanonicalVisits(ctx context.Context, userID string) (int, error) {
	return c.visitRepo.CountCanonicalByUser(ctx, userID)
}

func (c *UsageCounter) Snapshot(ctx context.Context, userID string) (Usage, error) {
	boxes, err := c.OwnedBoxes(ctx, userID)
	if err != nil {
		return Usage{}, err
	}
	favorites, err := c.Favorites(ctx, userID)
	if err != nil {
		return Usage{}, err
	}
	visits, err := c.CanonicalVisits(ctx, userID)
	if err != nil {
		return Usage{}, err
	}
	return Usage{Boxes: boxes, Favorites: favorites, Visits: visits}, nil
}
