package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/classroom-extract/internal/apperrors"
)

// ErrInvalidRole is returned when an enrollment names a role other than TEACHER or STUDENT.
var ErrInvalidRole = errors.New("enrollment role must be TEACHER or STUDENT")

func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) {
		return apperrors.ReferentialIntegrity(op, err)
	}
	return apperrors.Database(op, err)
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint")
}
