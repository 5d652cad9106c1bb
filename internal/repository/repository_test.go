package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-extract/internal/apperrors"
	"github.com/noah-isme/classroom-extract/internal/database"
	"github.com/noah-isme/classroom-extract/internal/models"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	return db
}

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func seedCourseAndUser(t *testing.T, repos Repositories) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repos.Courses.Save(ctx, models.Course{ID: "C1", Name: "Test Course", CourseState: "ACTIVE"}))
	require.NoError(t, repos.Users.Save(ctx, models.User{ID: "U1", Name: "Stud Test", Email: "stud@test.com"}))
}

func TestUserSaveConvergesToLatestValues(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, models.User{ID: "U1", Name: "Old Name", Email: "old@test.com", PhotoURL: strPtr("https://img/1")}))
	require.NoError(t, repo.Save(ctx, models.User{ID: "U1", Name: "New Name", Email: "new@test.com"}))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	require.Equal(t, "New Name", users[0].Name)
	require.Equal(t, "new@test.com", users[0].Email)
	require.Nil(t, users[0].PhotoURL)
}

func TestUserSaveRejectsDuplicateEmail(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, models.User{ID: "U1", Name: "A", Email: "same@test.com"}))
	err := repo.Save(ctx, models.User{ID: "U2", Name: "B", Email: "same@test.com"})
	require.Error(t, err)
	require.True(t, apperrors.IsKind(err, apperrors.KindDatabase))
}

func TestCourseSaveUpdatesMutableColumnsOnly(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()

	created := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)
	require.NoError(t, repo.Save(ctx, models.Course{ID: "C1", Name: "Algebra", CreationTime: &created, UpdateTime: &created, CourseState: "ACTIVE"}))

	later := created.Add(24 * time.Hour)
	require.NoError(t, repo.Save(ctx, models.Course{
		ID:           "C1",
		Name:         "Algebra II",
		Section:      strPtr("Period 2"),
		Description:  strPtr("Second semester"),
		CreationTime: &later,
		UpdateTime:   &updated,
		CourseState:  "ARCHIVED",
	}))

	var stored models.Course
	require.NoError(t, db.First(&stored, "id = ?", "C1").Error)
	require.Equal(t, "Algebra II", stored.Name)
	require.Equal(t, "Period 2", *stored.Section)
	require.Equal(t, "ARCHIVED", stored.CourseState)
	require.True(t, stored.UpdateTime.Equal(updated))
	require.True(t, stored.CreationTime.Equal(created), "creation time is not a mutable column")
}

func TestEnrollmentFirstWriteWins(t *testing.T) {
	db := setupStoreTestDB(t)
	repos := NewRepositories(db)
	seedCourseAndUser(t, repos)
	ctx := context.Background()

	created, err := repos.Enrollments.Save(ctx, models.Enrollment{CourseID: "C1", UserID: "U1", Role: models.RoleStudent})
	require.NoError(t, err)
	require.True(t, created)

	created, err = repos.Enrollments.Save(ctx, models.Enrollment{CourseID: "C1", UserID: "U1", Role: models.RoleTeacher})
	require.NoError(t, err)
	require.False(t, created)

	var enrollments []models.Enrollment
	require.NoError(t, db.Find(&enrollments).Error)
	require.Len(t, enrollments, 1)
	require.Equal(t, models.RoleStudent, enrollments[0].Role)
}

func TestEnrollmentForUnknownCourseIsReferentialIntegrityError(t *testing.T) {
	db := setupStoreTestDB(t)
	repos := NewRepositories(db)
	seedCourseAndUser(t, repos)

	_, err := repos.Enrollments.Save(context.Background(), models.Enrollment{CourseID: "missing", UserID: "U1", Role: models.RoleStudent})
	require.Error(t, err)
	require.True(t, apperrors.IsKind(err, apperrors.KindReferentialIntegrity), "got %v", err)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestEnrollmentRejectsUnknownRole(t *testing.T) {
	db := setupStoreTestDB(t)
	repos := NewRepositories(db)
	seedCourseAndUser(t, repos)

	_, err := repos.Enrollments.Save(context.Background(), models.Enrollment{CourseID: "C1", UserID: "U1", Role: "OWNER"})
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestAnnouncementRequiresCreator(t *testing.T) {
	db := setupStoreTestDB(t)
	repos := NewRepositories(db)
	seedCourseAndUser(t, repos)
	ctx := context.Background()

	err := repos.Announcements.Save(ctx, models.Announcement{ID: "A1", CourseID: "C1", CreatorUserID: "ghost", Text: strPtr("hi")})
	require.True(t, apperrors.IsKind(err, apperrors.KindReferentialIntegrity), "got %v", err)

	require.NoError(t, repos.Announcements.Save(ctx, models.Announcement{ID: "A1", CourseID: "C1", CreatorUserID: "U1", Text: strPtr("hi")}))
	require.NoError(t, repos.Announcements.Save(ctx, models.Announcement{ID: "A1", CourseID: "C1", CreatorUserID: "U1", Text: strPtr("hello"), State: strPtr("PUBLISHED")}))

	var stored models.Announcement
	require.NoError(t, db.First(&stored, "id = ?", "A1").Error)
	require.Equal(t, "hello", *stored.Text)
	require.Equal(t, "PUBLISHED", *stored.State)
}

func TestSubmissionUpsertAndOrdering(t *testing.T) {
	db := setupStoreTestDB(t)
	repos := NewRepositories(db)
	seedCourseAndUser(t, repos)
	ctx := context.Background()

	err := repos.Submissions.Save(ctx, models.Submission{ID: "S1", CourseWorkID: "W1", UserID: "U1"})
	require.True(t, apperrors.IsKind(err, apperrors.KindReferentialIntegrity), "course work must exist first, got %v", err)

	require.NoError(t, repos.CourseWork.Save(ctx, models.CourseWork{ID: "W1", CourseID: "C1", Title: "Essay", MaxPoints: floatPtr(100)}))
	require.NoError(t, repos.Submissions.Save(ctx, models.Submission{ID: "S1", CourseWorkID: "W1", UserID: "U1", State: strPtr("TURNED_IN"), DraftGrade: floatPtr(80)}))
	require.NoError(t, repos.Submissions.Save(ctx, models.Submission{ID: "S1", CourseWorkID: "W1", UserID: "U1", State: strPtr("RETURNED"), AssignedGrade: floatPtr(85), DraftGrade: floatPtr(85)}))

	var stored models.Submission
	require.NoError(t, db.First(&stored, "id = ?", "S1").Error)
	require.Equal(t, "RETURNED", *stored.State)
	require.True(t, stored.IsGraded())
	require.Equal(t, 85.0, *stored.AssignedGrade)
}

func TestCourseWorkSaveUpdatesMutableColumns(t *testing.T) {
	db := setupStoreTestDB(t)
	repos := NewRepositories(db)
	seedCourseAndUser(t, repos)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(72 * time.Hour)
	require.NoError(t, repos.CourseWork.Save(ctx, models.CourseWork{
		ID:           "W1",
		CourseID:     "C1",
		Title:        "Essay draft",
		Description:  strPtr("First version"),
		WorkType:     strPtr("ASSIGNMENT"),
		MaxPoints:    floatPtr(50),
		CreationTime: &created,
		UpdateTime:   &created,
	}))

	later := created.Add(time.Hour)
	require.NoError(t, repos.CourseWork.Save(ctx, models.CourseWork{
		ID:           "W1",
		CourseID:     "C1",
		Title:        "Essay final",
		Description:  strPtr("Revised brief"),
		WorkType:     strPtr("SHORT_ANSWER_QUESTION"),
		MaxPoints:    floatPtr(0),
		CreationTime: &later,
		UpdateTime:   &updated,
	}))

	var rows []models.CourseWork
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)

	stored := rows[0]
	require.Equal(t, "Essay final", stored.Title)
	require.Equal(t, "Revised brief", *stored.Description)
	require.Equal(t, "SHORT_ANSWER_QUESTION", *stored.WorkType)
	require.NotNil(t, stored.MaxPoints)
	require.Zero(t, *stored.MaxPoints)
	require.True(t, stored.UpdateTime.Equal(updated))
	require.True(t, stored.CreationTime.Equal(created), "creation time is not a mutable column")
}

func TestSubmissionStoresZeroGradeAndNullWhenAbsent(t *testing.T) {
	db := setupStoreTestDB(t)
	repos := NewRepositories(db)
	seedCourseAndUser(t, repos)
	ctx := context.Background()

	require.NoError(t, repos.CourseWork.Save(ctx, models.CourseWork{ID: "W1", CourseID: "C1", Title: "Quiz"}))
	require.NoError(t, repos.Submissions.Save(ctx, models.Submission{ID: "S0", CourseWorkID: "W1", UserID: "U1", AssignedGrade: floatPtr(0), DraftGrade: floatPtr(0)}))
	require.NoError(t, repos.Submissions.Save(ctx, models.Submission{ID: "S1", CourseWorkID: "W1", UserID: "U1"}))

	var zero models.Submission
	require.NoError(t, db.First(&zero, "id = ?", "S0").Error)
	require.NotNil(t, zero.AssignedGrade)
	require.Zero(t, *zero.AssignedGrade)
	require.NotNil(t, zero.DraftGrade)
	require.True(t, zero.IsGraded())

	var absent models.Submission
	require.NoError(t, db.First(&absent, "id = ?", "S1").Error)
	require.Nil(t, absent.AssignedGrade)
	require.Nil(t, absent.DraftGrade)
	require.False(t, absent.IsGraded())

	var nullGrades int64
	require.NoError(t, db.Model(&models.Submission{}).Where("assigned_grade IS NULL").Count(&nullGrades).Error)
	require.Equal(t, int64(1), nullGrades)
}

func TestDeletingCourseCascades(t *testing.T) {
	db := setupStoreTestDB(t)
	repos := NewRepositories(db)
	seedCourseAndUser(t, repos)
	ctx := context.Background()

	_, err := repos.Enrollments.Save(ctx, models.Enrollment{CourseID: "C1", UserID: "U1", Role: models.RoleStudent})
	require.NoError(t, err)
	require.NoError(t, repos.Announcements.Save(ctx, models.Announcement{ID: "A1", CourseID: "C1", CreatorUserID: "U1"}))
	require.NoError(t, repos.CourseWork.Save(ctx, models.CourseWork{ID: "W1", CourseID: "C1", Title: "Essay"}))
	require.NoError(t, repos.Submissions.Save(ctx, models.Submission{ID: "S1", CourseWorkID: "W1", UserID: "U1"}))

	require.NoError(t, db.Exec("DELETE FROM courses WHERE id = ?", "C1").Error)

	for _, model := range []interface{}{&models.Enrollment{}, &models.Announcement{}, &models.CourseWork{}, &models.Submission{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Zero(t, count, "%T rows should be removed with their course", model)
	}

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.Equal(t, int64(1), users)
}

func TestStoreTransactionRollsBackOnError(t *testing.T) {
	db := setupStoreTestDB(t)
	store := NewStore(db)
	ctx := context.Background()
	boom := errors.New("abort course")

	err := store.Transaction(ctx, func(repos Repositories) error {
		require.NoError(t, repos.Courses.Save(ctx, models.Course{ID: "C1", Name: "Rolled back"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.Course{}).Count(&count).Error)
	require.Zero(t, count)

	require.NoError(t, store.Transaction(ctx, func(repos Repositories) error {
		return repos.Courses.Save(ctx, models.Course{ID: "C1", Name: "Committed"})
	}))
	require.NoError(t, db.Model(&models.Course{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSyncRunLifecycle(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewSyncRunRepository(db)
	ctx := context.Background()

	none, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Nil(t, none)

	run := models.SyncRun{ID: "run-1", MaskingLevel: "all"}
	require.NoError(t, repo.Start(ctx, &run))
	require.Equal(t, models.SyncRunStatusRunning, run.Status)

	require.NoError(t, repo.Finish(ctx, "run-1", SyncRunFinish{
		Status:           models.SyncRunStatusCompleted,
		CoursesProcessed: 2,
		Truncated:        true,
		Summary:          datatypes.JSON(`{"courses":2}`),
	}))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, "run-1", latest.ID)
	require.Equal(t, models.SyncRunStatusCompleted, latest.Status)
	require.Equal(t, 2, latest.CoursesProcessed)
	require.True(t, latest.Truncated)
	require.NotNil(t, latest.FinishedAt)
	require.JSONEq(t, `{"courses":2}`, string(latest.Summary))
}
