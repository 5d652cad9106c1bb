package classroom_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-extract/internal/apperrors"
	"github.com/noah-isme/classroom-extract/internal/classroom"
	"github.com/noah-isme/classroom-extract/internal/classroom/classroomtest"
	"github.com/noah-isme/classroom-extract/internal/dto"
)

func member(courseID, id, name, email string) dto.Member {
	return dto.Member{CourseID: courseID, UserID: id, Profile: dto.UserProfile{ID: id, FullName: name, Email: email}}
}

func TestExtractorCoursesAcrossPages(t *testing.T) {
	lister := classroomtest.New()
	lister.Courses = []dto.Course{{ID: "C1", Name: "One"}, {ID: "C2", Name: "Two"}, {ID: "C3", Name: "Three"}}

	extractor := classroom.NewExtractor(lister, nil, zerolog.Nop())
	listing := extractor.Courses(context.Background())

	require.False(t, listing.Truncated)
	require.Nil(t, listing.Truncation())
	require.Equal(t, 3, listing.Pages)
	require.Len(t, listing.Items, 3)
	require.Equal(t, "C3", listing.Items[2].ID)
}

func TestExtractorTruncatedListingKeepsEarlierPages(t *testing.T) {
	lister := classroomtest.New()
	lister.Students["C1"] = []dto.Member{
		member("C1", "S1", "One", "one@test.com"),
		member("C1", "S2", "Two", "two@test.com"),
		member("C1", "S3", "Three", "three@test.com"),
	}
	lister.FailAt("students", "C1", 1, errors.New("googleapi: Error 503: backend error"))

	extractor := classroom.NewExtractor(lister, nil, zerolog.Nop())
	listing := extractor.Students(context.Background(), "C1")

	require.True(t, listing.Truncated)
	require.True(t, apperrors.IsKind(listing.Err, apperrors.KindTransport))
	require.Len(t, listing.Items, 1)
	require.Equal(t, "S1", listing.Items[0].Profile.ID)

	truncation := listing.Truncation()
	require.NotNil(t, truncation)
	require.Equal(t, classroom.ResourceStudents, truncation.Resource)
	require.Equal(t, "C1", truncation.Scope)
	require.Equal(t, 1, truncation.Pages)
	require.Contains(t, truncation.Error, "503")
}

func TestExtractorSkipsIncompleteProfiles(t *testing.T) {
	lister := classroomtest.New()
	lister.PageSize = 10
	incomplete := dto.Member{CourseID: "C1", UserID: "S2", Profile: dto.UserProfile{ID: "S2"}}
	lister.Students["C1"] = []dto.Member{member("C1", "S1", "One", "one@test.com"), incomplete}

	extractor := classroom.NewExtractor(lister, nil, zerolog.Nop())
	listing := extractor.Students(context.Background(), "C1")

	require.False(t, listing.Truncated)
	require.Equal(t, 1, listing.Skipped)
	require.Len(t, listing.Items, 1)
}

func TestExtractorSubmissionsScopedByCourseWork(t *testing.T) {
	lister := classroomtest.New()
	key := classroomtest.SubmissionKey("C1", "W1")
	lister.Submissions[key] = []dto.Submission{
		{ID: "SUB1", CourseWorkID: "W1", UserID: "S1"},
		{ID: "", CourseWorkID: "W1", UserID: "S2"},
	}

	extractor := classroom.NewExtractor(lister, nil, zerolog.Nop())
	listing := extractor.Submissions(context.Background(), "C1", "W1")

	require.Equal(t, "C1/W1", listing.Scope)
	require.Len(t, listing.Items, 1)
	require.Equal(t, 1, listing.Skipped)
	require.Equal(t, []string{"submissions:C1/W1", "submissions:C1/W1"}, lister.Calls)
}
