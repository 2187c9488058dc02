package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"pokemedquest/internal/models"
)

// PointsPerLevel is the experience needed for each level above the first
const PointsPerLevel = 50

// NoAvatarLevel is reported as NewLevel when the user has no avatar
const NoAvatarLevel = -1

// LevelForExperience returns the level an avatar holds at totalExperience
func LevelForExperience(totalExperience int) int {
	return 1 + totalExperience/PointsPerLevel
}

// AvatarStats is the slice of AvatarService the leveling workflow needs
type AvatarStats interface {
	GetAvatar(userID int64) (*models.Avatar, error)
	UpdateStats(avatar *models.Avatar) (bool, error)
}

// ProgressService records CMAS scores and turns them into avatar experience
type ProgressService struct {
	progress ProgressStore
	avatars  AvatarStats
	logger   *zap.Logger
	now      func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(progress ProgressStore, avatars AvatarStats, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		progress: progress,
		avatars:  avatars,
		logger:   logger,
		now:      time.Now,
	}
}

// RecordTestResult stores a score and adds it to the user's avatar experience.
//
// The score is persisted before the avatar is touched and is never rolled back:
// if the avatar is missing or its stats cannot be saved, the returned result
// still carries the stored record with LeveledUp false.
func (s *ProgressService) RecordTestResult(userID int64, score int) (*models.LevelUpResult, error) {
	if score < 0 {
		s.logger.Warn("rejected negative score", zap.Int64("user_id", userID), zap.Int("score", score))
		return nil, ErrInvalidScore
	}

	record := &models.ProgressRecord{
		UserID:  userID,
		TakenAt: s.now().UTC(),
		Score:   score,
	}
	if err := s.progress.CreateProgress(record); err != nil {
		s.logger.Error("failed to record score", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to record score: %w", ErrStoreFailure, err)
	}

	result := &models.LevelUpResult{
		Progress:         record,
		LeveledUp:        false,
		NewLevel:         NoAvatarLevel,
		GainedExperience: score,
	}

	avatar, err := s.avatars.GetAvatar(userID)
	if err != nil {
		s.logger.Error("score recorded but avatar lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return result, nil
	}
	if avatar == nil {
		s.logger.Warn("score recorded for user without avatar", zap.Int64("user_id", userID))
		return result, nil
	}

	currentLevel := avatar.Level
	newTotal := avatar.TotalExperience + score
	expectedLevel := LevelForExperience(newTotal)

	updated := *avatar
	updated.TotalExperience = newTotal
	if expectedLevel > currentLevel {
		updated.Level = expectedLevel
	}

	result.NewLevel = currentLevel
	ok, err := s.avatars.UpdateStats(&updated)
	if err != nil || !ok {
		s.logger.Error("score recorded but avatar stats were not saved",
			zap.Int64("user_id", userID),
			zap.Int("total_experience", newTotal),
			zap.Bool("level_up", expectedLevel > currentLevel),
			zap.Error(err),
		)
		return result, nil
	}

	if expectedLevel > currentLevel {
		result.LeveledUp = true
		result.NewLevel = expectedLevel
		s.logger.Info("avatar leveled up",
			zap.Int64("user_id", userID),
			zap.Int("level", expectedLevel),
			zap.Int("total_experience", newTotal),
		)
	}
	return result, nil
}

// GetProgressHistory returns the user's scores, newest first
func (s *ProgressService) GetProgressHistory(userID int64) ([]models.ProgressRecord, error) {
	records, err := s.progress.GetUserProgress(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get progress history: %w", ErrStoreFailure, err)
	}
	return records, nil
}

// GetLatestProgress returns the newest record, or nil when the user has none
func (s *ProgressService) GetLatestProgress(userID int64) (*models.ProgressRecord, error) {
	records, err := s.GetProgressHistory(userID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// GetAllProgress returns every record of every user
func (s *ProgressService) GetAllProgress() ([]models.ProgressRecord, error) {
	records, err := s.progress.GetAllProgress()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get progress: %w", ErrStoreFailure, err)
	}
	return records, nil
}

// AnalyzeTrends runs the anomaly scan over the user's history in chronological order
func (s *ProgressService) AnalyzeTrends(userID int64) ([]string, error) {
	records, err := s.GetProgressHistory(userID)
	if err != nil {
		return nil, err
	}

	scores := make([]int, len(records))
	for i, rec := range records {
		scores[len(records)-1-i] = rec.Score
	}
	return DescribeAnomalies(DetectAnomalies(scores)), nil
}
