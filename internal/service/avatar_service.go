package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pokemedquest/internal/models"
	"pokemedquest/internal/repository"
	"pokemedquest/internal/validation"
)

// AvatarService manages a child's avatar. Cosmetic changes and stat changes use
// separate write paths; UpdateStats is the only one that touches level and experience.
type AvatarService struct {
	avatars AvatarStore
	logger  *zap.Logger
}

// NewAvatarService creates a new avatar service
func NewAvatarService(avatars AvatarStore, logger *zap.Logger) *AvatarService {
	return &AvatarService{avatars: avatars, logger: logger}
}

// CreateDefaultAvatar gives user a level 1 avatar in the default look
func (s *AvatarService) CreateDefaultAvatar(user *models.User, name string) (*models.Avatar, error) {
	if err := validation.ValidateAvatarName(name); err != nil {
		return nil, err
	}

	existing, err := s.avatars.GetAvatarByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check existing avatar: %w", ErrStoreFailure, err)
	}
	if existing != nil {
		return nil, ErrAvatarExists
	}

	avatar := models.NewDefaultAvatar(user.ID, name)
	if err := s.avatars.CreateAvatar(avatar); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAvatarExists
		}
		return nil, fmt.Errorf("%w: failed to create avatar: %w", ErrStoreFailure, err)
	}

	s.logger.Info("avatar created",
		zap.Int64("user_id", user.ID),
		zap.Int64("avatar_id", avatar.ID),
		zap.String("name", avatar.Name),
	)
	return avatar, nil
}

// Customize changes the avatar's name, color and accessory. Level and
// experience are left alone.
func (s *AvatarService) Customize(userID int64, name, color, accessory string) (bool, error) {
	if err := validation.ValidateAvatarName(name); err != nil {
		return false, err
	}
	if err := validation.ValidateColor(color); err != nil {
		return false, err
	}
	if err := validation.ValidateAccessory(accessory); err != nil {
		return false, err
	}

	name = strings.TrimSpace(name)
	color = strings.ToLower(strings.TrimSpace(color))
	accessory = models.NormalizeAccessory(accessory)

	updated, err := s.avatars.UpdateAvatarCosmetics(userID, name, color, accessory)
	if err != nil {
		return false, fmt.Errorf("%w: failed to customize avatar: %w", ErrStoreFailure, err)
	}
	if !updated {
		return false, ErrAvatarNotFound
	}

	s.logger.Debug("avatar customized",
		zap.Int64("user_id", userID),
		zap.String("color", color),
		zap.String("accessory", accessory),
	)
	return true, nil
}

// UpdateStats persists the whole avatar row, keyed by its owner
func (s *AvatarService) UpdateStats(avatar *models.Avatar) (bool, error) {
	updated, err := s.avatars.UpdateAvatar(avatar)
	if err != nil {
		return false, fmt.Errorf("%w: failed to update avatar stats: %w", ErrStoreFailure, err)
	}
	return updated, nil
}

// GetAvatar returns the user's avatar, or nil when they have none
func (s *AvatarService) GetAvatar(userID int64) (*models.Avatar, error) {
	avatar, err := s.avatars.GetAvatarByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get avatar: %w", ErrStoreFailure, err)
	}
	return avatar, nil
}

// ListAvatars returns every avatar
func (s *AvatarService) ListAvatars() ([]models.Avatar, error) {
	avatars, err := s.avatars.GetAllAvatars()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list avatars: %w", ErrStoreFailure, err)
	}
	return avatars, nil
}
