package models

import "time"

// ProgressRecord is one CMAS score taken by a user at a point in time
type ProgressRecord struct {
	ID      int64
	UserID  int64
	TakenAt time.Time
	Score   int
}

// LevelUpResult describes the outcome of recording a score
type LevelUpResult struct {
	Progress         *ProgressRecord
	LeveledUp        bool
	NewLevel         int
	GainedExperience int
}
