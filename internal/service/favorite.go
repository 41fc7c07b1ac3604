package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/bookboxapp/bookbox/internal/repository"
)

// FavoriteService wraps the entitlement guard around the store's toggle.
// Only the add direction is gated; removing a favorite never needs
// quota, which is the general rule applied to every dimension.
type FavoriteService struct {
	repo    repository.FavoriteRepository
	boxRepo repository.BoxRepository
	guard   *EntitlementGuard
	boxes   *BoxService
}

func NewFavoriteService(
	repo repository.FavoriteRepository,
	boxRepo repository.BoxRepository,
	guard *EntitlementGuard,
	boxes *BoxService,
) *FavoriteService {
	return &FavoriteService{
		repo:    repo,
		boxRepo: boxRepo,
		guard:   guard,
		boxes:   boxes,
	}
}

// Toggle flips the favorite and returns "added" or "removed". Two calls
// in a row land back on the original state.
func (s *FavoriteService) Toggle(ctx context.Context, userID, boxID string) (string, error) {
	_, err := s.boxRepo.ByID(ctx, boxID)
	if err != nil {
		return "", err
	}

	limits, err := s.guard.LimitsFor(ctx, userID)
	if err != nil {
		return "", err
	}

	state, err := s.repo.Toggle(ctx, userID, boxID, limits.MaxFavorites)
	if errors.Is(err, repository.ErrLimitReached) {
		return "", s.guard.deny(ctx, userID, DimensionFavorites, limits.MaxFavorites)
	}
	if err != nil {
		return "", fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return state, nil
}

// Set forces the favorite to a desired state. Retrying a request that
// already succeeded is a no-op, so clients may resend on network errors.
func (s *FavoriteService) Set(ctx context.Context, userID, boxID string, want bool) (string, error) {
	_, err := s.boxRepo.ByID(ctx, boxID)
	if err != nil {
		return "", err
	}

	limits, err := s.guard.LimitsFor(ctx, userID)
	if err != nil {
		return "", err
	}

	state, err := s.repo.Set(ctx, userID, boxID, want, limits.MaxFavorites)
	if errors.Is(err, repository.ErrLimitReached) {
		return "", s.guard.deny(ctx, userID, DimensionFavorites, limits.MaxFavorites)
	}
	if err != nil {
		return "", fmt.Errorf("failed to set favorite: %w", err)
	}

	return state, nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, boxID string) (bool, error) {
	return s.repo.Exists(ctx, userID, boxID)
}

func (s *FavoriteService) BoxesForUser(ctx context.Context, userID string) ([]*model.Box, error) {
	boxes, err := s.repo.BoxesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, box := range boxes {
		s.boxes.populateImageURL(box)
	}
	return boxes, nil
}
