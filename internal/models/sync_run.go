package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// SyncRunStatusRunning marks a run in progress or one that crashed.
	SyncRunStatusRunning = "running"
	// SyncRunStatusCompleted marks a run that processed every course.
	SyncRunStatusCompleted = "completed"
	// SyncRunStatusFailed marks a run aborted by a fatal error.
	SyncRunStatusFailed = "failed"
)

// SyncRun records one extraction run.
type SyncRun struct {
	ID               string         `gorm:"primaryKey;size:36" json:"id"`
	Status           string         `gorm:"size:16;not null;index" json:"status"`
	MaskingLevel     string         `gorm:"size:32;not null" json:"masking_level"`
	CoursesProcessed int            `gorm:"not null;default:0" json:"courses_processed"`
	Truncated        bool           `gorm:"not null;default:false" json:"truncated"`
	Error            string         `gorm:"type:text" json:"error"`
	Summary          datatypes.JSON `json:"summary"`
	StartedAt        time.Time      `gorm:"not null" json:"started_at"`
	FinishedAt       *time.Time     `json:"finished_at"`
}
