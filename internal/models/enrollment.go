package models

// Role is the part a user plays in a course.
type Role string

const (
	// RoleTeacher marks a course teacher.
	RoleTeacher Role = "TEACHER"
	// RoleStudent marks an enrolled student.
	RoleStudent Role = "STUDENT"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// Enrollment joins a user to a course. The first role recorded for a pair is kept.
type Enrollment struct {
	ID       uint   `gorm:"primaryKey;column:enrollment_id" json:"enrollment_id"`
	CourseID string `gorm:"size:64;not null;uniqueIndex:idx_enrollments_course_user" json:"course_id"`
	UserID   string `gorm:"size:64;not null;uniqueIndex:idx_enrollments_course_user" json:"user_id"`
	Role     Role   `gorm:"size:16;not null;check:chk_enrollments_role,role IN ('TEACHER','STUDENT')" json:"role"`
	Course   Course `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User     User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
