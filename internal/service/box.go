package service

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"context"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/bookboxapp/bookbox/internal/repository"
	"github.com/bookboxapp/bookbox/internal/storage"
	"github.com/bookboxapp/bookbox/internal/validation"
	"github.com/google/uuid"
)

// BoxInput carries the fields a user submits when registering a box.
type BoxInput struct {
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
}

type BoxService struct {
	repo    repository.BoxRepository
	guard   *EntitlementGuard
	storage storage.Storage
}

func NewBoxService(repo repository.BoxRepository, guard *EntitlementGuard, store storage.Storage) *BoxService {
	return &BoxService{
		repo:    repo,
		guard:   guard,
		storage: store,
	}
}

// Create registers a new box for the user. The plan limit is enforced by
// the insert itself (count and insert in one statement), so two
// overlapping submissions can't both squeeze under the cap.
func (s *BoxService) Create(ctx context.Context, userID, username string, input BoxInput) (*model.Box, error) {
	if err := validation.ValidateBoxName(input.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validation.ValidateCoordinate(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	limits, err := s.guard.LimitsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	box := &model.Box{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		CreatorID:       userID,
		CreatorUsername: username,
		CreatedAt:       time.Now(),
	}

	if limits.MaxBoxes == Unlimited {
		err = s.repo.Create(ctx, box)
	} else {
		err = s.repo.CreateWithinLimit(ctx, box, limits.MaxBoxes)
	}
	if errors.Is(err, repository.ErrLimitReached) {
		return nil, s.guard.deny(ctx, userID, DimensionBoxes, limits.MaxBoxes)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create box: %w", err)
	}

	return box, nil
}

func (s *BoxService) ByID(ctx context.Context, boxID string) (*model.Box, error) {
	box, err := s.repo.ByID(ctx, boxID)
	if err != nil {
		return nil, err
	}

	s.populateImageURL(box)
	return box, nil
}

func (s *BoxService) All(ctx context.Context) ([]*model.Box, error) {
	boxes, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	for _, box := range boxes {
		s.populateImageURL(box)
	}
	return boxes, nil
}

func (s *BoxService) Search(ctx context.Context, query string) ([]*model.Box, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.All(ctx)
	}

	boxes, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, box := range boxes {
		s.populateImageURL(box)
	}
	return boxes, nil
}

func (s *BoxService) ByCreator(ctx context.Context, creatorID string) ([]*model.Box, error) {
	boxes, err := s.repo.ByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	for _, box := range boxes {
		s.populateImageURL(box)
	}
	return boxes, nil
}

// Delete removes a box and, through the store's cascade, every favorite
// and visit row referencing it. Only the creator may delete.
func (s *BoxService) Delete(ctx context.Context, userID, boxID string) error {
	box, err := s.repo.ByID(ctx, boxID)
	if err != nil {
		return err
	}

	if box.CreatorID != userID {
		return ErrNotOwner
	}

	err = s.repo.Delete(ctx, boxID)
	if err != nil {
		return fmt.Errorf("failed to delete box: %w", err)
	}

	if box.ImagePath != nil && s.storage != nil {
		err = s.storage.Delete(ctx, *box.ImagePath)
		if err != nil {
			// Orphaned object beats a failed deletion
			slog.Warn("failed to delete box image from storage", "box_id", boxID, "error", err)
		}
	}

	return nil
}

// UploadImage stores a photo for the box and records its object key.
func (s *BoxService) UploadImage(ctx context.Context, userID, boxID string, header *multipart.FileHeader) (*model.Box, error) {
	box, err := s.repo.ByID(ctx, boxID)
	if err != nil {
		return nil, err
	}

	if box.CreatorID != userID {
		return nil, ErrNotOwner
	}

	if err := validation.ValidateImage(header); err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	key := storage.BoxImageKey(boxID, strings.ToLower(filepath.Ext(header.Filename)))
	err = s.storage.Save(ctx, key, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store box image: %w", err)
	}

	err = s.repo.UpdateImage(ctx, boxID, &key)
	if err != nil {
		return nil, err
	}

	box.ImagePath = &key
	s.populateImageURL(box)
	return box, nil
}

func (s *BoxService) populateImageURL(box *model.Box) {
	if box.ImagePath != nil && s.storage != nil {
		box.ImageURL = s.storage.URL(*box.ImagePath)
	}
}
