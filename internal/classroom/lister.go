// Package classroom reads courses and their rosters, announcements, course work
// and submissions from the Google Classroom API.
package classroom

import (
	"context"

	"github.com/noah-isme/classroom-extract/internal/dto"
	"github.com/noah-isme/classroom-extract/internal/pagination"
)

// Lister exposes the six paginated listing calls a sync run consumes. Each call
// returns a single page; an empty pageToken asks for the first one.
type Lister interface {
	ListCourses(ctx context.Context, pageToken string) (pagination.Page[dto.Course], error)
	ListTeachers(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.Member], error)
	ListStudents(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.Member], error)
	ListAnnouncements(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.Announcement], error)
	ListCourseWork(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.CourseWork], error)
	ListSubmissions(ctx context.Context, courseID, courseWorkID, pageToken string) (pagination.Page[dto.Submission], error)
}
