package service

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/noah-isme/classroom-extract/internal/dto"
)

// WriteReport prints a per-course summary of a run. Truncated listings are listed
// under their course so partial extraction is visible even on success.
func WriteReport(w io.Writer, report dto.RunReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Run %s (masking: %s)\n", report.RunID, report.MaskingLevel)
	if report.CoursesTruncated != nil {
		fmt.Fprintf(tw, "WARNING: course listing truncated after %d page(s): %s\n", report.CoursesTruncated.Pages, report.CoursesTruncated.Error)
	}
	if report.SkippedCourses > 0 {
		fmt.Fprintf(tw, "Skipped %d course(s) with incomplete fields\n", report.SkippedCourses)
	}
	if len(report.Courses) == 0 {
		fmt.Fprintln(tw, "No courses processed.")
		return tw.Flush()
	}

	for _, course := range report.Courses {
		fmt.Fprintf(tw, "\nCourse: %s (%s)\n", course.Name, course.CourseID)
		fmt.Fprintf(tw, "  teachers\t%d\n", course.Teachers)
		fmt.Fprintf(tw, "  students\t%d\n", course.Students)
		fmt.Fprintf(tw, "  announcements\t%d\n", course.Announcements)
		fmt.Fprintf(tw, "  course work\t%d\n", course.CourseWork)
		fmt.Fprintf(tw, "  submissions\t%d (%d graded)\n", course.Submissions, course.Graded)
		if skipped := course.SkippedTeachers + course.SkippedStudents + course.SkippedOther; skipped > 0 {
			fmt.Fprintf(tw, "  skipped\tteachers %d, students %d, other %d\n", course.SkippedTeachers, course.SkippedStudents, course.SkippedOther)
		}
		for _, truncated := range course.Truncated {
			fmt.Fprintf(tw, "  TRUNCATED\t%s [%s] after %d page(s): %s\n", truncated.Resource, truncated.Scope, truncated.Pages, truncated.Error)
		}
	}

	if report.IsPartial() {
		fmt.Fprintln(tw, "\nCompleted with partial listings.")
	} else {
		fmt.Fprintln(tw, "\nCompleted.")
	}
	return tw.Flush()
}
