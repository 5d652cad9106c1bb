package classroom

import (
	"context"
	"net/http"

	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/noah-isme/classroom-extract/internal/dto"
	"github.com/noah-isme/classroom-extract/internal/pagination"
)

type googleLister struct {
	service  *classroomapi.Service
	http     *http.Client
	basePath string
}

// NewGoogleLister adapts an authorized Classroom client to Lister.
func NewGoogleLister(client *Client) Lister {
	return &googleLister{
		service:  client.Service,
		http:     client.HTTP,
		basePath: client.Service.BasePath,
	}
}

func (g *googleLister) ListCourses(ctx context.Context, pageToken string) (pagination.Page[dto.Course], error) {
	call := g.service.Courses.List().Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return pagination.Page[dto.Course]{}, err
	}

	items := make([]dto.Course, 0, len(resp.Courses))
	for _, course := range resp.Courses {
		items = append(items, convertCourse(course))
	}
	return pagination.Page[dto.Course]{Items: items, NextPageToken: resp.NextPageToken}, nil
}

func (g *googleLister) ListTeachers(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.Member], error) {
	call := g.service.Courses.Teachers.List(courseID).Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return pagination.Page[dto.Member]{}, err
	}

	items := make([]dto.Member, 0, len(resp.Teachers))
	for _, teacher := range resp.Teachers {
		if teacher == nil {
			continue
		}
		items = append(items, convertMember(teacher.CourseId, teacher.UserId, teacher.Profile))
	}
	return pagination.Page[dto.Member]{Items: items, NextPageToken: resp.NextPageToken}, nil
}

func (g *googleLister) ListStudents(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.Member], error) {
	call := g.service.Courses.Students.List(courseID).Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return pagination.Page[dto.Member]{}, err
	}

	items := make([]dto.Member, 0, len(resp.Students))
	for _, student := range resp.Students {
		if student == nil {
			continue
		}
		items = append(items, convertMember(student.CourseId, student.UserId, student.Profile))
	}
	return pagination.Page[dto.Member]{Items: items, NextPageToken: resp.NextPageToken}, nil
}

func (g *googleLister) ListAnnouncements(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.Announcement], error) {
	call := g.service.Courses.Announcements.List(courseID).Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return pagination.Page[dto.Announcement]{}, err
	}

	items := make([]dto.Announcement, 0, len(resp.Announcements))
	for _, announcement := range resp.Announcements {
		items = append(items, convertAnnouncement(announcement))
	}
	return pagination.Page[dto.Announcement]{Items: items, NextPageToken: resp.NextPageToken}, nil
}

func (g *googleLister) ListCourseWork(ctx context.Context, courseID, pageToken string) (pagination.Page[dto.CourseWork], error) {
	var resp courseWorkPage
	if err := getJSON(ctx, g.http, g.basePath, courseWorkPath(courseID), pageToken, &resp); err != nil {
		return pagination.Page[dto.CourseWork]{}, err
	}

	items := make([]dto.CourseWork, 0, len(resp.CourseWork))
	for _, work := range resp.CourseWork {
		items = append(items, convertCourseWork(work))
	}
	return pagination.Page[dto.CourseWork]{Items: items, NextPageToken: resp.NextPageToken}, nil
}

func (g *googleLister) ListSubmissions(ctx context.Context, courseID, courseWorkID, pageToken string) (pagination.Page[dto.Submission], error) {
	var resp submissionPage
	if err := getJSON(ctx, g.http, g.basePath, submissionsPath(courseID, courseWorkID), pageToken, &resp); err != nil {
		return pagination.Page[dto.Submission]{}, err
	}

	items := make([]dto.Submission, 0, len(resp.StudentSubmissions))
	for _, submission := range resp.StudentSubmissions {
		items = append(items, convertSubmission(submission))
	}
	return pagination.Page[dto.Submission]{Items: items, NextPageToken: resp.NextPageToken}, nil
}
