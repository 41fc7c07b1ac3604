package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/bookboxapp/bookbox/internal/repository"
	"github.com/bookboxapp/bookbox/internal/storage"
	"github.com/bookboxapp/bookbox/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
	boxRepo  repository.BoxRepository
	storage  storage.Storage
	email    *EmailService
	boxes    *BoxService
}

func NewUserService(
	userRepo repository.UserRepository,
	boxRepo repository.BoxRepository,
	store storage.Storage,
	email *EmailService,
	boxes *BoxService,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		boxRepo:  boxRepo,
		storage:  store,
		email:    email,
		boxes:    boxes,
	}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.populateURLs(user)
	return user, nil
}

// ByUsername serves the public profile page.
func (s *UserService) ByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	s.populateURLs(user)
	return user, nil
}

// UpdateProfile edits display name parts and the public username.
func (s *UserService) UpdateProfile(ctx context.Context, userID, firstName, lastName, username string) (*model.User, error) {
	if err := validation.ValidateName(firstName); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(lastName); err != nil {
		return nil, err
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(firstName)
	user.LastName = strings.TrimSpace(lastName)
	user.Username = username

	err = s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.populateURLs(user)
	return user, nil
}

// UploadAvatar stores a new profile picture and records its object key.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, header *multipart.FileHeader) (*model.User, error) {
	return s.uploadImage(ctx, userID, header, storage.AvatarKey, func(u *model.User, key *string) { u.AvatarPath = key })
}

func (s *UserService) UploadBanner(ctx context.Context, userID string, header *multipart.FileHeader) (*model.User, error) {
	return s.uploadImage(ctx, userID, header, storage.BannerKey, func(u *model.User, key *string) { u.BannerPath = key })
}

// RemoveAvatar clears the profile picture and deletes the stored object.
func (s *UserService) RemoveAvatar(ctx context.Context, userID string) (*model.User, error) {
	return s.removeImage(ctx, userID, func(u *model.User) *string {
		path := u.AvatarPath
		u.AvatarPath = nil
		u.AvatarURL = ""
		return path
	})
}

func (s *UserService) RemoveBanner(ctx context.Context, userID string) (*model.User, error) {
	return s.removeImage(ctx, userID, func(u *model.User) *string {
		path := u.BannerPath
		u.BannerPath = nil
		u.BannerURL = ""
		return path
	})
}

func (s *UserService) removeImage(ctx context.Context, userID string, clear func(*model.User) *string) (*model.User, error) {
	user, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path := clear(user)
	if path == nil {
		s.populateURLs(user)
		return user, nil
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.storage != nil {
		if err := s.storage.Delete(ctx, *path); err != nil {
			slog.Warn("failed to delete user image from storage", "user_id", userID, "error", err)
		}
	}

	s.populateURLs(user)
	return user, nil
}

func (s *UserService) uploadImage(
	ctx context.Context,
	userID string,
	header *multipart.FileHeader,
	keyFn func(id, ext string) string,
	assign func(*model.User, *string),
) (*model.User, error) {
	if err := validation.ValidateImage(header); err != nil {
		return nil, err
	}

	user, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	key := keyFn(userID, strings.ToLower(filepath.Ext(header.Filename)))
	err = s.storage.Save(ctx, key, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	assign(user, &key)
	err = s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.populateURLs(user)
	return user, nil
}

// DeleteAccount removes the user and everything hanging off them. The
// database cascades subscriptions, tokens, boxes, favorites and visits
// through foreign keys; stored objects are deleted here first since the
// store can't cascade into S3.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		return err
	}

	boxes, err := s.boxRepo.ByCreator(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list boxes for deletion: %w", err)
	}

	if s.storage != nil {
		for _, box := range boxes {
			if box.ImagePath == nil {
				continue
			}
			if err := s.storage.Delete(ctx, *box.ImagePath); err != nil {
				slog.Warn("failed to delete box image from storage", "box_id", box.ID, "error", err)
			}
		}
		for _, path := range []*string{user.AvatarPath, user.BannerPath} {
			if path == nil {
				continue
			}
			if err := s.storage.Delete(ctx, *path); err != nil {
				slog.Warn("failed to delete user image from storage", "user_id", userID, "error", err)
			}
		}
	}

	if s.email != nil {
		if err := s.email.SendAccountDeletedEmail(user.Email, user.DisplayName()); err != nil {
			slog.Warn("failed to send account deleted email", "user_id", userID, "error", err)
		}
	}

	err = s.userRepo.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (s *UserService) populateURLs(user *model.User) {
	if s.storage == nil {
		return
	}
	if user.AvatarPath != nil {
		user.AvatarURL = s.storage.URL(*user.AvatarPath)
	}
	if user.BannerPath != nil {
		user.BannerURL = s.storage.URL(*user.BannerPath)
	}
}
