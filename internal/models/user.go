package models

// User is a person seen in any course roster, teacher or student.
type User struct {
	ID       string  `gorm:"primaryKey;size:64" json:"id"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Email    string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PhotoURL *string `gorm:"size:1024" json:"photo_url"`
}

// UserMutableColumns are overwritten when a user is observed again.
var UserMutableColumns = []string{"name", "email", "photo_url"}
