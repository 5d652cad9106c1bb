package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/classroom-extract/internal/models"
)

// CourseRepository persists courses.
type CourseRepository interface {
	Save(ctx context.Context, course models.Course) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs the repository implementation.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Save(ctx context.Context, course models.Course) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(models.CourseMutableColumns),
	}).Create(&course).Error
	return translateError("courses.save", err)
}
