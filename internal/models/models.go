// Package models holds the gorm schema of the local classroom mirror.
package models

// All returns every model in dependency order for migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Enrollment{},
		&Announcement{},
		&CourseWork{},
		&Submission{},
		&SyncRun{},
	}
}
