package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/classroom-extract/internal/models"
)

// EnrollmentRepository persists course memberships.
type EnrollmentRepository interface {
	// Save records the enrollment unless the (course, user) pair already exists.
	// It reports whether a new row was written; an existing pair keeps its role.
	Save(ctx context.Context, enrollment models.Enrollment) (bool, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs the repository implementation.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Save(ctx context.Context, enrollment models.Enrollment) (bool, error) {
	if !enrollment.Role.Valid() {
		return false, ErrInvalidRole
	}

	row := models.Enrollment{
		CourseID: enrollment.CourseID,
		UserID:   enrollment.UserID,
		Role:     enrollment.Role,
	}
	result := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, translateError("enrollments.save", result.Error)
	}
	return result.RowsAffected > 0, nil
}
