package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/bookboxapp/bookbox/internal/repository"
	"github.com/bookboxapp/bookbox/internal/storage"
	"github.com/bookboxapp/bookbox/internal/validation"
	"github.com/google/uuid"
)

// VisitService records visits and serves the review feed. The visit log
// is append-only: rows are never edited or removed except when their box
// or user goes away.
type VisitService struct {
	repo    repository.VisitRepository
	boxRepo repository.BoxRepository
	guard   *EntitlementGuard
	storage storage.Storage
}

func NewVisitService(
	repo repository.VisitRepository,
	boxRepo repository.BoxRepository,
	guard *EntitlementGuard,
	store storage.Storage,
) *VisitService {
	return &VisitService{
		repo:    repo,
		boxRepo: boxRepo,
		guard:   guard,
		storage: store,
	}
}

// Record appends a visit. A rated visit is the canonical one per
// (user, box): a second rated visit for the same box is rejected, and
// rated visits consume plan quota. Comment-only visits do neither.
func (s *VisitService) Record(ctx context.Context, userID, boxID string, rating *int, comment *string) (*model.Visit, error) {
	if err := validation.ValidateRating(rating); err != nil {
		return nil, err
	}
	if err := validation.ValidateComment(comment); err != nil {
		return nil, err
	}

	_, err := s.boxRepo.ByID(ctx, boxID)
	if err != nil {
		return nil, err
	}

	limits, err := s.guard.LimitsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	// UUIDv7 ids sort by creation time, which the feed's tiebreak
	// depends on.
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate visit id: %w", err)
	}

	visit := &model.Visit{
		ID:        id.String(),
		UserID:    userID,
		BoxID:     boxID,
		Rating:    rating,
		Comment:   comment,
		VisitedAt: time.Now(),
	}

	err = s.repo.Create(ctx, visit, limits.MaxVisits)
	if errors.Is(err, repository.ErrAlreadyRated) {
		return nil, ErrAlreadyVisited
	}
	if errors.Is(err, repository.ErrLimitReached) {
		return nil, s.guard.deny(ctx, userID, DimensionVisits, limits.MaxVisits)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}

	return visit, nil
}

// ListForBox returns the box's review feed, most recent first.
func (s *VisitService) ListForBox(ctx context.Context, boxID string) ([]*model.Visit, error) {
	visits, err := s.repo.ListForBox(ctx, boxID)
	if err != nil {
		return nil, err
	}

	for _, visit := range visits {
		if visit.VisitorAvatarPath != nil && s.storage != nil {
			visit.VisitorAvatarURL = s.storage.URL(*visit.VisitorAvatarPath)
		}
	}
	return visits, nil
}

func (s *VisitService) ByUser(ctx context.Context, userID string) ([]*model.Visit, error) {
	return s.repo.ByUser(ctx, userID)
}

// HasVisited reports the canonical "already visited" gate: true only if
// the user has a rated visit for the box.
func (s *VisitService) HasVisited(ctx context.Context, userID, boxID string) (bool, error) {
	return s.repo.HasCanonical(ctx, userID, boxID)
}
