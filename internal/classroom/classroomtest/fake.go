// Package classroomtest provides an in-memory classroom.Lister for tests.
package classroomtest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/classroom-extract/internal/dto"
	"github.com/noah-isme/classroom-extract/internal/pagination"
)

// Lister serves listings split into pages of PageSize items. A failure
// registered with FailAt makes the given page of a listing return an error.
type Lister struct {
	PageSize int

	Courses       []dto.Course
	Teachers      map[string][]dto.Member
	Students      map[string][]dto.Member
	Announcements map[string][]dto.Announcement
	CourseWork    map[string][]dto.CourseWork
	Submissions   map[string][]dto.Submission

	failures map[string]error
	Calls    []string
}

// New returns an empty Lister serving one item per page.
func New() *Lister {
	return &Lister{
		PageSize:      1,
		Teachers:      map[string][]dto.Member{},
		Students:      map[string][]dto.Member{},
		Announcements: map[string][]dto.Announcement{},
		CourseWork:    map[string][]dto.CourseWork{},
		Submissions:   map[string][]dto.Submission{},
		failures:      map[string]error{},
	}
}

// SubmissionKey is the map key used for Submissions.
func SubmissionKey(courseID, courseWorkID string) string {
	return courseID + "/" + courseWorkID
}

// FailAt makes page (0-based) of the listing resource/scope fail with err.
func (l *Lister) FailAt(resource, scope string, page int, err error) {
	l.failures[failureKey(resource, scope, page)] = err
}

func failureKey(resource, scope string, page int) string {
	return fmt.Sprintf("%s|%s|%d", resource, scope, page)
}

func (l *Lister) ListCourses(ctx context.Context, pageToken string) (pagination.Page[dto.Course], error) {
	return serve(l, "courses", "", pageToken, l.Courses)
}

func (l *Lister) ListTeachers(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.Member], error) {
	return serve(l, "teachers", courseID, pageToken, l.Teachers[courseID])
}

func (l *Lister) ListStudents(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.Member], error) {
	return serve(l, "students", courseID, pageToken, l.Students[courseID])
}

func (l *Lister) ListAnnouncements(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.Announcement], error) {
	return serve(l, "announcements", courseID, pageToken, l.Announcements[courseID])
}

func (l *Lister) ListCourseWork(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.CourseWork], error) {
	return serve(l, "course_work", courseID, pageToken, l.CourseWork[courseID])
}

func (l *Lister) ListSubmissions(ctx context.Context, courseID, courseWorkID, pageToken string) (pagination.Page[dto.Submission], error) {
	key := SubmissionKey(courseID, courseWorkID)
	return serve(l, "submissions", key, pageToken, l.Submissions[key])
}

func serve[T any](l *Lister, resource, scope, pageToken string, items []T) (pagination.Page[T], error) {
	l.Calls = append(l.Calls, strings.TrimSuffix(resource+":"+scope, ":"))

	page := 0
	if pageToken != "" {
		parsed, err := strconv.Atoi(strings.TrimPrefix(pageToken, "p"))
		if err != nil {
			return pagination.Page[T]{}, fmt.Errorf("bad page token %q", pageToken)
		}
		page = parsed
	}
	if err, ok := l.failures[failureKey(resource, scope, page)]; ok {
		return pagination.Page[T]{}, err
	}

	size := l.PageSize
	if size <= 0 {
		size = len(items)
	}
	start := page * size
	if start >= len(items) {
		return pagination.Page[T]{}, nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	result := pagination.Page[T]{Items: append([]T(nil), items[start:end]...)}
	if end < len(items) {
		result.NextPageToken = "p" + strconv.Itoa(page+1)
	}
	return result, nil
}
