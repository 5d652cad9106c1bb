package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/classroom-extract/internal/models"
)

// SubmissionRepository persists student submissions.
type SubmissionRepository interface {
	Save(ctx context.Context, submission models.Submission) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository constructs the repository implementation.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Save(ctx context.Context, submission models.Submission) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(models.SubmissionMutableColumns),
	}).Create(&submission).Error
	return translateError("student_submissions.save", err)
}
