package models

import "time"

// CourseWork is an assignment, question or other gradable item of a course.
type CourseWork struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	CourseID     string     `gorm:"size:64;not null;index" json:"course_id"`
	Title        string     `gorm:"size:512;not null" json:"title"`
	Description  *string    `gorm:"type:text" json:"description"`
	WorkType     *string    `gorm:"size:64" json:"work_type"`
	MaxPoints    *float64   `json:"max_points"`
	CreationTime *time.Time `gorm:"column:creation_time" json:"creation_time"`
	UpdateTime   *time.Time `gorm:"column:update_time" json:"update_time"`
	Course       Course     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName keeps the singular table name used by downstream reporting.
func (CourseWork) TableName() string {
	return "course_work"
}

// CourseWorkMutableColumns are overwritten when course work is observed again.
var CourseWorkMutableColumns = []string{"title", "description", "work_type", "max_points", "update_time"}
