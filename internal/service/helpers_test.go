package service

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-extract/internal/database"
	"github.com/noah-isme/classroom-extract/internal/dto"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	return db
}

func rosterMember(courseID, id, name, email string) dto.Member {
	return dto.Member{
		CourseID: courseID,
		UserID:   id,
		Profile:  dto.UserProfile{ID: id, FullName: name, Email: email},
	}
}
