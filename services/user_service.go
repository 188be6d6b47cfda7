package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
	"github.com/cprater/football-pickem-backend-sub000/storage"
)

type UserService interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, currentUserID, userID int, input UpdateProfileInput) (*models.User, error)
	UploadAvatar(ctx context.Context, currentUserID, userID int, contentType string, reader io.Reader) (*models.User, error)
	DeactivateUser(ctx context.Context, currentUserID, userID int) error
}

type UpdateProfileInput struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{userRepo: userRepo, uploader: uploader}
}

func (s *userService) resolveAvatarURL(user *models.User) {
	if user.AvatarKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*user.AvatarKey)
		user.AvatarURL = &url
	}
}

func (s *userService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	user.PasswordHash = ""
	s.resolveAvatarURL(user)
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, currentUserID, userID int, input UpdateProfileInput) (*models.User, error) {
	if currentUserID != userID {
		return nil, ErrForbiddenOperation
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.DisplayName != nil {
		user.DisplayName = input.DisplayName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}

	user.PasswordHash = ""
	s.resolveAvatarURL(user)
	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, currentUserID, userID int, contentType string, reader io.Reader) (*models.User, error) {
	if currentUserID != userID {
		return nil, ErrForbiddenOperation
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("media storage is not configured")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	key := fmt.Sprintf("avatars/%d", userID)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateAvatarKey(ctx, userID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save avatar key: %w", err)
	}

	user.AvatarKey = &result.Key
	user.PasswordHash = ""
	s.resolveAvatarURL(user)
	return user, nil
}

// DeactivateUser soft-deactivates; the user record and their picks remain.
func (s *userService) DeactivateUser(ctx context.Context, currentUserID, userID int) error {
	if currentUserID != userID {
		return ErrForbiddenOperation
	}
	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to deactivate user %d: %w", userID, err)
	}
	return nil
}
