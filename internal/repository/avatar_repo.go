package repository

import (
	"database/sql"
	"fmt"
	"time"

	"pokemedquest/internal/database"
	"pokemedquest/internal/models"
)

// AvatarRepository handles database operations for avatars
type AvatarRepository struct {
	db database.DBTX
}

// NewAvatarRepository creates a new avatar repository
func NewAvatarRepository(db database.DBTX) *AvatarRepository {
	return &AvatarRepository{db: db}
}

// CreateAvatar inserts the avatar and fills in its ID. Zero timestamps are set to now.
// ErrDuplicateKey is returned when the user already owns an avatar.
func (r *AvatarRepository) CreateAvatar(avatar *models.Avatar) error {
	now := time.Now().UTC()
	if avatar.CreatedAt.IsZero() {
		avatar.CreatedAt = now
	}
	if avatar.UpdatedAt.IsZero() {
		avatar.UpdatedAt = now
	}
	query := `
		INSERT INTO avatars (user_id, avatar_name, color, accessory, level, total_experience, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		avatar.UserID, avatar.Name, avatar.Color, avatar.Accessory,
		avatar.Level, avatar.TotalExperience, avatar.CreatedAt.UTC(), avatar.UpdatedAt.UTC(),
	)
	if err != nil {
		if r.db.GetDialect().IsUniqueViolation(err) {
			return fmt.Errorf("failed to create avatar for user %d: %w", avatar.UserID, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create avatar: %w", err)
	}

	avatar.ID = id
	return nil
}

// GetAvatarByUserID retrieves the avatar owned by a user
func (r *AvatarRepository) GetAvatarByUserID(userID int64) (*models.Avatar, error) {
	query := `
		SELECT id, user_id, avatar_name, color, accessory, level, total_experience, created_at, updated_at
		FROM avatars
		WHERE user_id = ?
	`
	avatar, err := scanAvatar(r.db.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get avatar: %w", err)
	}
	return avatar, nil
}

// GetAllAvatars retrieves every avatar ordered by owner
func (r *AvatarRepository) GetAllAvatars() ([]models.Avatar, error) {
	query := `
		SELECT id, user_id, avatar_name, color, accessory, level, total_experience, created_at, updated_at
		FROM avatars
		ORDER BY user_id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get avatars: %w", err)
	}
	defer rows.Close()

	var avatars []models.Avatar
	for rows.Next() {
		avatar, err := scanAvatar(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan avatar: %w", err)
		}
		avatars = append(avatars, *avatar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate avatars: %w", err)
	}

	return avatars, nil
}

// UpdateAvatar overwrites every mutable column of the user's avatar
func (r *AvatarRepository) UpdateAvatar(avatar *models.Avatar) (bool, error) {
	query := `
		UPDATE avatars
		SET avatar_name = ?, color = ?, accessory = ?, level = ?, total_experience = ?, updated_at = ?
		WHERE user_id = ?
	`
	return r.update(query,
		avatar.Name, avatar.Color, avatar.Accessory, avatar.Level, avatar.TotalExperience,
		time.Now().UTC(), avatar.UserID,
	)
}

// UpdateAvatarCosmetics changes name, color and accessory only. Level and
// experience are never part of this statement.
func (r *AvatarRepository) UpdateAvatarCosmetics(userID int64, name, color, accessory string) (bool, error) {
	query := `
		UPDATE avatars
		SET avatar_name = ?, color = ?, accessory = ?, updated_at = ?
		WHERE user_id = ?
	`
	return r.update(query, name, color, accessory, time.Now().UTC(), userID)
}

func (r *AvatarRepository) update(query string, args ...interface{}) (bool, error) {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update avatar: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update avatar: %w", err)
	}
	return affected > 0, nil
}

func scanAvatar(row rowScanner) (*models.Avatar, error) {
	avatar := &models.Avatar{}
	err := row.Scan(
		&avatar.ID,
		&avatar.UserID,
		&avatar.Name,
		&avatar.Color,
		&avatar.Accessory,
		&avatar.Level,
		&avatar.TotalExperience,
		&avatar.CreatedAt,
		&avatar.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return avatar, nil
}
