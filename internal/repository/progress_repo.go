package repository

import (
	"fmt"

	"pokemedquest/internal/database"
	"pokemedquest/internal/models"
)

// ProgressRepository handles the append-only CMAS score history
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// CreateProgress inserts a record and sets its ID
func (r *ProgressRepository) CreateProgress(record *models.ProgressRecord) error {
	query := `
		INSERT INTO test_progress (user_id, test_timestamp, cmas_score)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, record.UserID, record.TakenAt.UTC(), record.Score)
	if err != nil {
		return fmt.Errorf("failed to create progress record: %w", err)
	}
	record.ID = id
	return nil
}

// GetUserProgress retrieves a user's history, newest first
func (r *ProgressRepository) GetUserProgress(userID int64) ([]models.ProgressRecord, error) {
	query := `
		SELECT id, user_id, test_timestamp, cmas_score
		FROM test_progress
		WHERE user_id = ?
		ORDER BY test_timestamp DESC, id DESC
	`
	return r.list(query, userID)
}

// GetAllProgress retrieves every record grouped by user, newest first within a user
func (r *ProgressRepository) GetAllProgress() ([]models.ProgressRecord, error) {
	query := `
		SELECT id, user_id, test_timestamp, cmas_score
		FROM test_progress
		ORDER BY user_id, test_timestamp DESC, id DESC
	`
	return r.list(query)
}

func (r *ProgressRepository) list(query string, args ...interface{}) ([]models.ProgressRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		var rec models.ProgressRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.TakenAt, &rec.Score); err != nil {
			return nil, fmt.Errorf("failed to scan progress record: %w", err)
		}
		rec.TakenAt = rec.TakenAt.UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate progress: %w", err)
	}

	return records, nil
}
