// Package masking redacts personal fields of roster profiles according to a
// masking level and the role the person holds in a course.
package masking

import (
	"fmt"
	"strings"

	"github.com/noah-isme/classroom-extract/internal/dto"
	"github.com/noah-isme/classroom-extract/internal/models"
)

// Level selects which roles get masked.
type Level string

const (
	// LevelNone keeps every profile as fetched.
	LevelNone Level = "none"
	// LevelStudentsOnly masks students and keeps teachers.
	LevelStudentsOnly Level = "students_only"
	// LevelAll masks everyone.
	LevelAll Level = "all"
)

const maskedDomain = "masked.local"

// ParseLevel accepts a level name in any letter case.
func ParseLevel(value string) (Level, error) {
	level := Level(strings.ToLower(strings.TrimSpace(value)))
	switch level {
	case LevelNone, LevelStudentsOnly, LevelAll:
		return level, nil
	default:
		return "", fmt.Errorf("invalid masking level %q: must be one of none, students_only, all", value)
	}
}

// Applies reports whether a profile held under role gets masked at level.
func Applies(role models.Role, level Level) bool {
	return level == LevelAll || (level == LevelStudentsOnly && role == models.RoleStudent)
}

// Mask returns a copy of profile with name, email and photo replaced by values
// derived from the profile id. The input is never modified. Profiles without an
// id are returned unchanged since there is nothing stable to derive from.
func Mask(profile dto.UserProfile, role models.Role, level Level) dto.UserProfile {
	masked := profile.Clone()
	if masked.ID == "" || !Applies(role, level) {
		return masked
	}

	masked.FullName = "user_" + masked.ID
	masked.Email = fmt.Sprintf("user_%s@%s", masked.ID, maskedDomain)
	if masked.PhotoURL != nil {
		empty := ""
		masked.PhotoURL = &empty
	}
	return masked
}
