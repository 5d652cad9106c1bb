package models

import "time"

// Submission is a student's submission for a course work item.
type Submission struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	CourseWorkID  string     `gorm:"size:64;not null;index" json:"course_work_id"`
	UserID        string     `gorm:"size:64;not null;index" json:"user_id"`
	State         *string    `gorm:"size:32" json:"state"`
	AssignedGrade *float64   `json:"assigned_grade"`
	DraftGrade    *float64   `json:"draft_grade"`
	CreationTime  *time.Time `gorm:"column:creation_time" json:"creation_time"`
	UpdateTime    *time.Time `gorm:"column:update_time" json:"update_time"`
	CourseWork    CourseWork `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User          User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName matches the remote resource name.
func (Submission) TableName() string {
	return "student_submissions"
}

// SubmissionMutableColumns are overwritten when a submission is observed again.
var SubmissionMutableColumns = []string{"state", "assigned_grade", "draft_grade", "update_time"}

// IsGraded reports whether a grade has been returned to the student.
func (s Submission) IsGraded() bool {
	return s.AssignedGrade != nil
}
