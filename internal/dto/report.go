package dto

import "time"

// TruncatedListing records a listing cut short by a failed page fetch.
type TruncatedListing struct {
	Resource string `json:"resource"`
	Scope    string `json:"scope"`
	Pages    int    `json:"pages"`
	Error    string `json:"error"`
}

// CourseReport summarises what one course contributed to a run.
type CourseReport struct {
	CourseID        string             `json:"course_id"`
	Name            string             `json:"name"`
	Teachers        int                `json:"teachers"`
	Students        int                `json:"students"`
	Announcements   int                `json:"announcements"`
	CourseWork      int                `json:"course_work"`
	Submissions     int                `json:"submissions"`
	Graded          int                `json:"graded"`
	SkippedTeachers int                `json:"skipped_teachers"`
	SkippedStudents int                `json:"skipped_students"`
	SkippedOther    int                `json:"skipped_other"`
	Truncated       []TruncatedListing `json:"truncated,omitempty"`
	Duration        time.Duration      `json:"duration"`
}

// IsPartial reports whether any listing of the course was truncated.
func (r CourseReport) IsPartial() bool {
	return len(r.Truncated) > 0
}

// RunReport summarises a whole run.
type RunReport struct {
	RunID            string            `json:"run_id"`
	MaskingLevel     string            `json:"masking_level"`
	StartedAt        time.Time         `json:"started_at"`
	FinishedAt       time.Time         `json:"finished_at"`
	CoursesTruncated *TruncatedListing `json:"courses_truncated,omitempty"`
	SkippedCourses   int               `json:"skipped_courses"`
	Courses          []CourseReport    `json:"courses"`
}

// IsPartial reports whether any listing in the run was truncated.
func (r RunReport) IsPartial() bool {
	if r.CoursesTruncated != nil {
		return true
	}
	for _, course := range r.Courses {
		if course.IsPartial() {
			return true
		}
	}
	return false
}
