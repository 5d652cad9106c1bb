package models

import "time"

// Announcement is a course stream post.
type Announcement struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	CourseID      string     `gorm:"size:64;not null;index" json:"course_id"`
	CreatorUserID string     `gorm:"size:64;not null;index" json:"creator_user_id"`
	Text          *string    `gorm:"type:text" json:"text"`
	State         *string    `gorm:"size:32" json:"state"`
	CreationTime  *time.Time `gorm:"column:creation_time" json:"creation_time"`
	UpdateTime    *time.Time `gorm:"column:update_time" json:"update_time"`
	Course        Course     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Creator       User       `gorm:"foreignKey:CreatorUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// AnnouncementMutableColumns are overwritten when an announcement is observed again.
var AnnouncementMutableColumns = []string{"text", "state", "update_time"}
