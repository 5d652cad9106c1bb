package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-extract/internal/models"
)

// SyncRunFinish carries the outcome written when a run ends.
type SyncRunFinish struct {
	Status           string
	CoursesProcessed int
	Truncated        bool
	Error            string
	Summary          datatypes.JSON
	FinishedAt       time.Time
}

// SyncRunRepository records the audit trail of extraction runs.
type SyncRunRepository interface {
	Start(ctx context.Context, run *models.SyncRun) error
	Finish(ctx context.Context, id string, outcome SyncRunFinish) error
	// Latest returns the most recently started run, or nil when none exists.
	Latest(ctx context.Context) (*models.SyncRun, error)
}

type syncRunRepository struct {
	db *gorm.DB
}

// NewSyncRunRepository constructs the repository implementation.
func NewSyncRunRepository(db *gorm.DB) SyncRunRepository {
	return &syncRunRepository{db: db}
}

func (r *syncRunRepository) Start(ctx context.Context, run *models.SyncRun) error {
	if run.Status == "" {
		run.Status = models.SyncRunStatusRunning
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	return translateError("sync_runs.start", r.db.WithContext(ctx).Create(run).Error)
}

func (r *syncRunRepository) Finish(ctx context.Context, id string, outcome SyncRunFinish) error {
	finishedAt := outcome.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}
	err := r.db.WithContext(ctx).Model(&models.SyncRun{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":            outcome.Status,
		"courses_processed": outcome.CoursesProcessed,
		"truncated":         outcome.Truncated,
		"error":             outcome.Error,
		"summary":           outcome.Summary,
		"finished_at":       finishedAt,
	}).Error
	return translateError("sync_runs.finish", err)
}

func (r *syncRunRepository) Latest(ctx context.Context) (*models.SyncRun, error) {
	var run models.SyncRun
	err := r.db.WithContext(ctx).Order("started_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError("sync_runs.latest", err)
	}
	return &run, nil
}
