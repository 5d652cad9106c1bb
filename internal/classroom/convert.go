package classroom

import (
	"strings"
	"time"

	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/noah-isme/classroom-extract/internal/dto"
)

func convertCourse(course *classroomapi.Course) dto.Course {
	if course == nil {
		return dto.Course{}
	}
	return dto.Course{
		ID:           course.Id,
		Name:         course.Name,
		Section:      optionalString(course.Section),
		Description:  optionalString(course.Description),
		CreationTime: parseTimestamp(course.CreationTime),
		UpdateTime:   parseTimestamp(course.UpdateTime),
		State:        course.CourseState,
	}
}

func convertMember(courseID, userID string, profile *classroomapi.UserProfile) dto.Member {
	member := dto.Member{CourseID: courseID, UserID: userID}
	if profile == nil {
		return member
	}

	member.Profile = dto.UserProfile{
		ID:       profile.Id,
		Email:    profile.EmailAddress,
		PhotoURL: optionalString(profile.PhotoUrl),
	}
	if profile.Name != nil {
		member.Profile.FullName = profile.Name.FullName
	}
	return member
}

func convertAnnouncement(announcement *classroomapi.Announcement) dto.Announcement {
	if announcement == nil {
		return dto.Announcement{}
	}
	return dto.Announcement{
		ID:            announcement.Id,
		CourseID:      announcement.CourseId,
		CreatorUserID: announcement.CreatorUserId,
		Text:          optionalString(announcement.Text),
		State:         optionalString(announcement.State),
		CreationTime:  parseTimestamp(announcement.CreationTime),
		UpdateTime:    parseTimestamp(announcement.UpdateTime),
	}
}

func convertCourseWork(work *courseWorkRecord) dto.CourseWork {
	if work == nil {
		return dto.CourseWork{}
	}
	return dto.CourseWork{
		ID:           work.ID,
		CourseID:     work.CourseID,
		Title:        work.Title,
		Description:  optionalString(work.Description),
		WorkType:     optionalString(work.WorkType),
		MaxPoints:    copyFloat(work.MaxPoints),
		CreationTime: parseTimestamp(work.CreationTime),
		UpdateTime:   parseTimestamp(work.UpdateTime),
	}
}

func convertSubmission(submission *submissionRecord) dto.Submission {
	if submission == nil {
		return dto.Submission{}
	}
	return dto.Submission{
		ID:            submission.ID,
		CourseWorkID:  submission.CourseWorkID,
		UserID:        submission.UserID,
		State:         optionalString(submission.State),
		AssignedGrade: copyFloat(submission.AssignedGrade),
		DraftGrade:    copyFloat(submission.DraftGrade),
		CreationTime:  parseTimestamp(submission.CreationTime),
		UpdateTime:    parseTimestamp(submission.UpdateTime),
	}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func copyFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func parseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}
