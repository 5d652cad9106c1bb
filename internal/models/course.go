package models

import "time"

// Course mirrors a remote course.
type Course struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Section      *string    `gorm:"size:255" json:"section"`
	Description  *string    `gorm:"type:text" json:"description"`
	CreationTime *time.Time `gorm:"column:creation_time" json:"creation_time"`
	UpdateTime   *time.Time `gorm:"column:update_time" json:"update_time"`
	CourseState  string     `gorm:"column:course_state;size:32" json:"course_state"`
}

// CourseMutableColumns are overwritten when a course is observed again.
var CourseMutableColumns = []string{"name", "section", "description", "update_time", "course_state"}
