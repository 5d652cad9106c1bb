package classroom

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/classroom-extract/internal/apperrors"
	"github.com/noah-isme/classroom-extract/internal/dto"
	"github.com/noah-isme/classroom-extract/internal/observability"
	"github.com/noah-isme/classroom-extract/internal/pagination"
)

// Resource names used in reports, logs and metric labels.
const (
	ResourceCourses       = "courses"
	ResourceTeachers      = "teachers"
	ResourceStudents      = "students"
	ResourceAnnouncements = "announcements"
	ResourceCourseWork    = "course_work"
	ResourceSubmissions   = "submissions"
)

// Listing is a fully paginated, validated listing. Items holds only records that
// passed validation; Skipped counts the rest.
type Listing[T any] struct {
	pagination.Result[T]
	Resource string
	Scope    string
	Skipped  int
}

// Truncation describes the listing when it was cut short, or nil when complete.
func (l Listing[T]) Truncation() *dto.TruncatedListing {
	if !l.Truncated {
		return nil
	}
	message := ""
	if l.Err != nil {
		message = l.Err.Error()
	}
	return &dto.TruncatedListing{
		Resource: l.Resource,
		Scope:    l.Scope,
		Pages:    l.Pages,
		Error:    message,
	}
}

// Extractor fetches complete listings and validates every record once before
// handing it on.
type Extractor struct {
	lister    Lister
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewExtractor constructs an extractor over lister.
func NewExtractor(lister Lister, validate *validator.Validate, logger zerolog.Logger) *Extractor {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return &Extractor{
		lister:    lister,
		validator: validate,
		logger:    logger.With().Str("component", "classroom_extractor").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/classroom-extract/internal/classroom"),
	}
}

// Courses lists every course visible to the delegated account.
func (e *Extractor) Courses(ctx context.Context) Listing[dto.Course] {
	return fetch(ctx, e, ResourceCourses, "", func(ctx context.Context, token string) (pagination.Page[dto.Course], error) {
		return e.lister.ListCourses(ctx, token)
	})
}

// Teachers lists the teachers of a course.
func (e *Extractor) Teachers(ctx context.Context, courseID string) Listing[dto.Member] {
	return fetch(ctx, e, ResourceTeachers, courseID, func(ctx context.Context, token string) (pagination.Page[dto.Member], error) {
		return e.lister.ListTeachers(ctx, courseID, token)
	})
}

// Students lists the students of a course.
func (e *Extractor) Students(ctx context.Context, courseID string) Listing[dto.Member] {
	return fetch(ctx, e, ResourceStudents, courseID, func(ctx context.Context, token string) (pagination.Page[dto.Member], error) {
		return e.lister.ListStudents(ctx, courseID, token)
	})
}

// Announcements lists the announcements of a course.
func (e *Extractor) Announcements(ctx context.Context, courseID string) Listing[dto.Announcement] {
	return fetch(ctx, e, ResourceAnnouncements, courseID, func(ctx context.Context, token string) (pagination.Page[dto.Announcement], error) {
		return e.lister.ListAnnouncements(ctx, courseID, token)
	})
}

// CourseWork lists the course work of a course.
func (e *Extractor) CourseWork(ctx context.Context, courseID string) Listing[dto.CourseWork] {
	return fetch(ctx, e, ResourceCourseWork, courseID, func(ctx context.Context, token string) (pagination.Page[dto.CourseWork], error) {
		return e.lister.ListCourseWork(ctx, courseID, token)
	})
}

// Submissions lists the student submissions of one course work item.
func (e *Extractor) Submissions(ctx context.Context, courseID, courseWorkID string) Listing[dto.Submission] {
	return fetch(ctx, e, ResourceSubmissions, courseID+"/"+courseWorkID, func(ctx context.Context, token string) (pagination.Page[dto.Submission], error) {
		return e.lister.ListSubmissions(ctx, courseID, courseWorkID, token)
	})
}

func fetch[T any](ctx context.Context, e *Extractor, resource, scope string, list pagination.ListFunc[T]) Listing[T] {
	spanCtx, span := e.tracer.Start(ctx, "classroom.list", trace.WithAttributes(
		attribute.String("classroom.resource", resource),
		attribute.String("classroom.scope", scope),
	))
	defer span.End()

	result := pagination.FetchAll(spanCtx, list)
	listing := Listing[T]{Resource: resource, Scope: scope}
	listing.Pages = result.Pages
	listing.Truncated = result.Truncated

	observability.PagesFetched().WithLabelValues(resource).Add(float64(result.Pages))

	if result.Truncated {
		listing.Err = apperrors.Transport(resource+".list", result.Err)
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, "listing truncated")
		observability.ListingsTruncated().WithLabelValues(resource).Inc()
		e.logger.Warn().Err(result.Err).
			Str("resource", resource).
			Str("scope", scope).
			Int("pages", result.Pages).
			Int("items", len(result.Items)).
			Msg("listing truncated after failed page fetch")
	}

	listing.Items = make([]T, 0, len(result.Items))
	for _, item := range result.Items {
		if err := e.validator.Struct(item); err != nil {
			listing.Skipped++
			e.logger.Warn().Err(err).
				Str("resource", resource).
				Str("scope", scope).
				Msg("skipping record with incomplete fields")
			continue
		}
		listing.Items = append(listing.Items, item)
	}
	if listing.Skipped > 0 {
		observability.RecordsSkipped().WithLabelValues(resource).Add(float64(listing.Skipped))
	}

	span.SetAttributes(
		attribute.Int("classroom.pages", listing.Pages),
		attribute.Int("classroom.items", len(listing.Items)),
		attribute.Int("classroom.skipped", listing.Skipped),
	)
	return listing
}
