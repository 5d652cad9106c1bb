// Package dto holds the typed records read from the remote classroom API and the
// reports produced by a sync run.
package dto

import "time"

// UserProfile is the personal part of a roster entry. PhotoURL is nil when the
// remote omits it.
type UserProfile struct {
	ID       string  `json:"id" validate:"required"`
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"required"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

// Clone returns a copy that shares no memory with p.
func (p UserProfile) Clone() UserProfile {
	clone := p
	if p.PhotoURL != nil {
		photo := *p.PhotoURL
		clone.PhotoURL = &photo
	}
	return clone
}

// Member is a teacher or student roster entry of a course.
type Member struct {
	CourseID string      `json:"course_id"`
	UserID   string      `json:"user_id"`
	Profile  UserProfile `json:"profile"`
}

// Course is a remote course.
type Course struct {
	ID           string     `json:"id" validate:"required"`
	Name         string     `json:"name" validate:"required"`
	Section      *string    `json:"section,omitempty"`
	Description  *string    `json:"description,omitempty"`
	CreationTime *time.Time `json:"creation_time,omitempty"`
	UpdateTime   *time.Time `json:"update_time,omitempty"`
	State        string     `json:"course_state"`
}

// Announcement is a remote course stream post.
type Announcement struct {
	ID            string     `json:"id" validate:"required"`
	CourseID      string     `json:"course_id" validate:"required"`
	CreatorUserID string     `json:"creator_user_id" validate:"required"`
	Text          *string    `json:"text,omitempty"`
	State         *string    `json:"state,omitempty"`
	CreationTime  *time.Time `json:"creation_time,omitempty"`
	UpdateTime    *time.Time `json:"update_time,omitempty"`
}

// CourseWork is a remote assignment or question.
type CourseWork struct {
	ID           string     `json:"id" validate:"required"`
	CourseID     string     `json:"course_id" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	Description  *string    `json:"description,omitempty"`
	WorkType     *string    `json:"work_type,omitempty"`
	MaxPoints    *float64   `json:"max_points,omitempty"`
	CreationTime *time.Time `json:"creation_time,omitempty"`
	UpdateTime   *time.Time `json:"update_time,omitempty"`
}

// Submission is a remote student submission.
type Submission struct {
	ID            string     `json:"id" validate:"required"`
	CourseWorkID  string     `json:"course_work_id" validate:"required"`
	UserID        string     `json:"user_id" validate:"required"`
	State         *string    `json:"state,omitempty"`
	AssignedGrade *float64   `json:"assigned_grade,omitempty"`
	DraftGrade    *float64   `json:"draft_grade,omitempty"`
	CreationTime  *time.Time `json:"creation_time,omitempty"`
	UpdateTime    *time.Time `json:"update_time,omitempty"`
}
