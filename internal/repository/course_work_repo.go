package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/classroom-extract/internal/models"
)

// CourseWorkRepository persists course work items.
type CourseWorkRepository interface {
	Save(ctx context.Context, work models.CourseWork) error
}

type courseWorkRepository struct {
	db *gorm.DB
}

// NewCourseWorkRepository constructs the repository implementation.
func NewCourseWorkRepository(db *gorm.DB) CourseWorkRepository {
	return &courseWorkRepository{db: db}
}

func (r *courseWorkRepository) Save(ctx context.Context, work models.CourseWork) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(models.CourseWorkMutableColumns),
	}).Create(&work).Error
	return translateError("course_work.save", err)
}
