package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups the entity repositories bound to one database handle.
type Repositories struct {
	Users         UserRepository
	Courses       CourseRepository
	Enrollments   EnrollmentRepository
	Announcements AnnouncementRepository
	CourseWork    CourseWorkRepository
	Submissions   SubmissionRepository
}

// NewRepositories binds every entity repository to db.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:         NewUserRepository(db),
		Courses:       NewCourseRepository(db),
		Enrollments:   NewEnrollmentRepository(db),
		Announcements: NewAnnouncementRepository(db),
		CourseWork:    NewCourseWorkRepository(db),
		Submissions:   NewSubmissionRepository(db),
	}
}

// Store runs units of work against the mirror.
type Store interface {
	// Transaction commits everything fn writes, or nothing when fn returns an error.
	Transaction(ctx context.Context, fn func(repos Repositories) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore constructs a Store over db.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(repos Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
