package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"pokemedquest/internal/database"
	"pokemedquest/internal/models"
	"pokemedquest/internal/repository"
	"pokemedquest/internal/validation"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string           `json:"version"`
	ExportedAt   time.Time        `json:"exported_at"`
	DatabaseType string           `json:"database_type"`
	Users        []UserBackup     `json:"users"`
	Avatars      []AvatarBackup   `json:"avatars"`
	Progress     []ProgressBackup `json:"progress"`
}

// UserBackup represents an account for backup
type UserBackup struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AvatarBackup represents an avatar for backup
type AvatarBackup struct {
	UserID          int64     `json:"user_id"`
	Name            string    `json:"name"`
	Color           string    `json:"color"`
	Accessory       string    `json:"accessory"`
	Level           int       `json:"level"`
	TotalExperience int       `json:"total_experience"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProgressBackup represents one recorded score for backup
type ProgressBackup struct {
	UserID  int64     `json:"user_id"`
	TakenAt time.Time `json:"taken_at"`
	Score   int       `json:"score"`
}

// ImportSummary counts what an import wrote and skipped
type ImportSummary struct {
	UsersImported    int
	UsersSkipped     int
	AvatarsImported  int
	ProgressImported int
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db     *database.DB
	logger *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, logger *zap.Logger) *BackupService {
	return &BackupService{db: db, logger: logger}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	s.logger.Info("database exported", zap.String("path", outputPath))
	return nil
}

// ExportToWriter writes a backup of every account, avatar and score to w
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.Name(),
	}

	users, err := repository.NewUserRepository(s.db).GetAllUsers()
	if err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	for _, u := range users {
		backup.Users = append(backup.Users, UserBackup{
			ID:           u.ID,
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Role:         string(u.Role),
			CreatedAt:    u.CreatedAt,
		})
	}

	avatars, err := repository.NewAvatarRepository(s.db).GetAllAvatars()
	if err != nil {
		return fmt.Errorf("failed to export avatars: %w", err)
	}
	for _, a := range avatars {
		backup.Avatars = append(backup.Avatars, AvatarBackup{
			UserID:          a.UserID,
			Name:            a.Name,
			Color:           a.Color,
			Accessory:       a.Accessory,
			Level:           a.Level,
			TotalExperience: a.TotalExperience,
			CreatedAt:       a.CreatedAt,
			UpdatedAt:       a.UpdatedAt,
		})
	}

	records, err := repository.NewProgressRepository(s.db).GetAllProgress()
	if err != nil {
		return fmt.Errorf("failed to export progress: %w", err)
	}
	for _, p := range records {
		backup.Progress = append(backup.Progress, ProgressBackup{
			UserID:  p.UserID,
			TakenAt: p.TakenAt,
			Score:   p.Score,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.Info("backup written",
		zap.Int("users", len(backup.Users)),
		zap.Int("avatars", len(backup.Avatars)),
		zap.Int("progress", len(backup.Progress)),
	)
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string, clear bool) (*ImportSummary, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file, clear)
}

// ImportFromReader restores a backup in a single transaction. Accounts whose
// username already exists are skipped together with their avatar and scores.
// Row IDs are reassigned and references remapped. With clear set, every
// existing account is removed first.
func (s *BackupService) ImportFromReader(reader io.Reader, clear bool) (*ImportSummary, error) {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}

	s.logger.Info("importing backup",
		zap.String("version", backup.Version),
		zap.Time("exported_at", backup.ExportedAt),
		zap.String("database_type", backup.DatabaseType),
	)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	summary, err := importBackup(tx, &backup, clear)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	s.logger.Info("backup imported",
		zap.Int("users_imported", summary.UsersImported),
		zap.Int("users_skipped", summary.UsersSkipped),
		zap.Int("avatars_imported", summary.AvatarsImported),
		zap.Int("progress_imported", summary.ProgressImported),
	)
	return summary, nil
}

func importBackup(tx database.DBTX, backup *BackupData, clear bool) (*ImportSummary, error) {
	users := repository.NewUserRepository(tx)
	avatars := repository.NewAvatarRepository(tx)
	progress := repository.NewProgressRepository(tx)

	if clear {
		if err := users.DeleteAllUsers(); err != nil {
			return nil, err
		}
	}

	summary := &ImportSummary{}
	idMap := make(map[int64]int64, len(backup.Users))

	// Import in order of dependencies
	for _, u := range backup.Users {
		existing, err := users.GetUserByUsername(u.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to import user %q: %w", u.Username, err)
		}
		if existing != nil {
			summary.UsersSkipped++
			continue
		}

		role, ok := models.ParseRole(u.Role)
		if !ok {
			return nil, fmt.Errorf("failed to import user %q: unknown role %q", u.Username, u.Role)
		}
		user := &models.User{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Role:         role,
			CreatedAt:    u.CreatedAt,
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now().UTC()
		}
		if err := users.InsertUser(user); err != nil {
			return nil, fmt.Errorf("failed to import user %q: %w", u.Username, err)
		}
		idMap[u.ID] = user.ID
		summary.UsersImported++
	}

	for _, a := range backup.Avatars {
		userID, ok := idMap[a.UserID]
		if !ok {
			continue
		}
		if err := validateBackupAvatar(a); err != nil {
			return nil, fmt.Errorf("failed to import avatar of user %d: %w", a.UserID, err)
		}
		avatar := &models.Avatar{
			UserID:          userID,
			Name:            strings.TrimSpace(a.Name),
			Color:           strings.ToLower(strings.TrimSpace(a.Color)),
			Accessory:       models.NormalizeAccessory(a.Accessory),
			Level:           LevelForExperience(a.TotalExperience),
			TotalExperience: a.TotalExperience,
			CreatedAt:       a.CreatedAt,
			UpdatedAt:       a.UpdatedAt,
		}
		if err := avatars.CreateAvatar(avatar); err != nil {
			return nil, fmt.Errorf("failed to import avatar of user %d: %w", a.UserID, err)
		}
		summary.AvatarsImported++
	}

	for _, p := range backup.Progress {
		userID, ok := idMap[p.UserID]
		if !ok {
			continue
		}
		if p.Score < 0 {
			return nil, fmt.Errorf("failed to import progress of user %d: %w", p.UserID, ErrInvalidScore)
		}
		record := &models.ProgressRecord{UserID: userID, TakenAt: p.TakenAt, Score: p.Score}
		if err := progress.CreateProgress(record); err != nil {
			return nil, fmt.Errorf("failed to import progress of user %d: %w", p.UserID, err)
		}
		summary.ProgressImported++
	}

	return summary, nil
}

// validateBackupAvatar applies the checks a live avatar passes. The level is
// not trusted; it is derived from the experience on import.
func validateBackupAvatar(a AvatarBackup) error {
	if err := validation.ValidateAvatarName(a.Name); err != nil {
		return err
	}
	if err := validation.ValidateColor(a.Color); err != nil {
		return err
	}
	if err := validation.ValidateAccessory(a.Accessory); err != nil {
		return err
	}
	if a.TotalExperience < 0 {
		return validation.ValidationError{Field: "total_experience", Message: "experience must not be negative"}
	}
	return nil
}
