package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/bookboxapp/bookbox/internal/repository"
	"github.com/google/uuid"
)

type SubscriptionService struct {
	repo repository.SubscriptionRepository
}

func NewSubscriptionService(repo repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo}
}

func (s *SubscriptionService) CreateFreemium(ctx context.Context, userID string) error {
	now := time.Now()
	subscription := &model.Subscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		Plan:      model.PlanFreemium,
		Status:    model.SubscriptionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Create(ctx, subscription)
	if err != nil {
		return fmt.Errorf("failed to create freemium subscription: %w", err)
	}

	return nil
}

func (s *SubscriptionService) Subscription(ctx context.Context, userID string) (*model.Subscription, error) {
	sub, err := s.repo.ByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return sub, nil
}

// Upgrade flips the plan to premium. There is no payment provider in
// this system; the endpoint exists so the client's upgrade flow has
// something to call.
func (s *SubscriptionService) Upgrade(ctx context.Context, userID string) (*model.Subscription, error) {
	sub, err := s.repo.ByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	sub.Plan = model.PlanPremium
	sub.Status = model.SubscriptionStatusActive
	sub.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade subscription: %w", err)
	}

	return sub, nil
}

func (s *SubscriptionService) DowngradeToFreemium(ctx context.Context, userID string) (*model.Subscription, error) {
	sub, err := s.repo.ByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	sub.Plan = model.PlanFreemium
	sub.Status = model.SubscriptionStatusActive
	sub.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to downgrade subscription: %w", err)
	}

	return sub, nil
}
