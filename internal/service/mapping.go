package service

import (
	"github.com/noah-isme/classroom-extract/internal/dto"
	"github.com/noah-isme/classroom-extract/internal/models"
)

func toUserModel(profile dto.UserProfile) models.User {
	return models.User{
		ID:       profile.ID,
		Name:     profile.FullName,
		Email:    profile.Email,
		PhotoURL: profile.PhotoURL,
	}
}

func toCourseModel(course dto.Course) models.Course {
	return models.Course{
		ID:           course.ID,
		Name:         course.Name,
		Section:      course.Section,
		Description:  course.Description,
		CreationTime: course.CreationTime,
		UpdateTime:   course.UpdateTime,
		CourseState:  course.State,
	}
}

func toAnnouncementModel(announcement dto.Announcement) models.Announcement {
	return models.Announcement{
		ID:            announcement.ID,
		CourseID:      announcement.CourseID,
		CreatorUserID: announcement.CreatorUserID,
		Text:          announcement.Text,
		State:         announcement.State,
		CreationTime:  announcement.CreationTime,
		UpdateTime:    announcement.UpdateTime,
	}
}

func toCourseWorkModel(work dto.CourseWork) models.CourseWork {
	return models.CourseWork{
		ID:           work.ID,
		CourseID:     work.CourseID,
		Title:        work.Title,
		Description:  work.Description,
		WorkType:     work.WorkType,
		MaxPoints:    work.MaxPoints,
		CreationTime: work.CreationTime,
		UpdateTime:   work.UpdateTime,
	}
}

func toSubmissionModel(submission dto.Submission) models.Submission {
	return models.Submission{
		ID:            submission.ID,
		CourseWorkID:  submission.CourseWorkID,
		UserID:        submission.UserID,
		State:         submission.State,
		AssignedGrade: submission.AssignedGrade,
		DraftGrade:    submission.DraftGrade,
		CreationTime:  submission.CreationTime,
		UpdateTime:    submission.UpdateTime,
	}
}
