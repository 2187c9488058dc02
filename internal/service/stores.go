package service

import "pokemedquest/internal/models"

// UserStore is the interface that wraps account persistence.
//
// Lookups return nil, nil when no row matches. CreateUser returns an error
// wrapping repository.ErrDuplicateKey when the username is taken.
type UserStore interface {
	CreateUser(username, passwordHash string, role models.Role) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	// DeleteUserByUsername reports false when nothing was deleted
	DeleteUserByUsername(username string) (bool, error)
}

// AvatarStore is the interface that wraps avatar persistence
type AvatarStore interface {
	CreateAvatar(avatar *models.Avatar) error
	GetAvatarByUserID(userID int64) (*models.Avatar, error)
	GetAllAvatars() ([]models.Avatar, error)
	// UpdateAvatar overwrites the whole row, including level and experience
	UpdateAvatar(avatar *models.Avatar) (bool, error)
	// UpdateAvatarCosmetics never touches level or experience
	UpdateAvatarCosmetics(userID int64, name, color, accessory string) (bool, error)
}

// ProgressStore is the interface that wraps the append-only score history
type ProgressStore interface {
	CreateProgress(record *models.ProgressRecord) error
	// GetUserProgress returns newest first
	GetUserProgress(userID int64) ([]models.ProgressRecord, error)
	GetAllProgress() ([]models.ProgressRecord, error)
}
