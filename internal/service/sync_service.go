package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/noah-isme/classroom-extract/internal/apperrors"
	"github.com/noah-isme/classroom-extract/internal/classroom"
	"github.com/noah-isme/classroom-extract/internal/dto"
	"github.com/noah-isme/classroom-extract/internal/masking"
	"github.com/noah-isme/classroom-extract/internal/models"
	"github.com/noah-isme/classroom-extract/internal/observability"
	"github.com/noah-isme/classroom-extract/internal/repository"
)

// Source supplies complete, validated listings. *classroom.Extractor implements it.
type Source interface {
	Courses(ctx context.Context) classroom.Listing[dto.Course]
	Teachers(ctx context.Context, courseID string) classroom.Listing[dto.Member]
	Students(ctx context.Context, courseID string) classroom.Listing[dto.Member]
	Announcements(ctx context.Context, courseID string) classroom.Listing[dto.Announcement]
	CourseWork(ctx context.Context, courseID string) classroom.Listing[dto.CourseWork]
	Submissions(ctx context.Context, courseID, courseWorkID string) classroom.Listing[dto.Submission]
}

// SyncDependencies wires a SyncService. Runs, Locker and Events are optional.
type SyncDependencies struct {
	Source Source
	Store  repository.Store
	Runs   repository.SyncRunRepository
	Locker RunLocker
	Events EventPublisher
}

// SyncService mirrors every visible course into the local store.
type SyncService interface {
	// Run processes every course, committing one course at a time. Truncated
	// listings are reported, not returned as errors; any persistence failure
	// aborts the run with the courses committed so far left in place.
	Run(ctx context.Context) (dto.RunReport, error)
}

type syncService struct {
	source Source
	store  repository.Store
	runs   repository.SyncRunRepository
	locker RunLocker
	events EventPublisher
	level  masking.Level
	logger zerolog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewSyncService constructs the sync orchestrator.
func NewSyncService(deps SyncDependencies, level masking.Level, logger zerolog.Logger) SyncService {
	locker := deps.Locker
	if locker == nil {
		locker = NoopRunLock()
	}
	events := deps.Events
	if events == nil {
		events = NewEventPublisher(nil, nil, "")
	}
	return &syncService{
		source: deps.Source,
		store:  deps.Store,
		runs:   deps.Runs,
		locker: locker,
		events: events,
		level:  level,
		logger: logger.With().Str("component", "sync_service").Logger(),
		tracer: otel.Tracer("github.com/noah-isme/classroom-extract/internal/service/sync"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *syncService) Run(ctx context.Context) (report dto.RunReport, err error) {
	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return dto.RunReport{}, err
	}
	defer func() {
		if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil {
			s.logger.Warn().Err(releaseErr).Msg("failed to release run lock")
		}
	}()

	report = dto.RunReport{
		RunID:        uuid.NewString(),
		MaskingLevel: string(s.level),
		StartedAt:    s.now(),
	}

	ctx, span := s.tracer.Start(ctx, "sync.run", trace.WithAttributes(
		attribute.String("sync.run_id", report.RunID),
		attribute.String("sync.masking_level", report.MaskingLevel),
	))
	defer span.End()

	logger := s.logger.With().Str("run_id", report.RunID).Logger()

	if err := s.startRun(ctx, report); err != nil {
		return report, err
	}
	defer func() {
		report.FinishedAt = s.now()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(apperrors.KindOf(err)))
		}
		s.finishRun(context.WithoutCancel(ctx), report, err)
	}()

	logger.Info().Msg("fetching courses")
	courses := s.source.Courses(ctx)
	if truncation := courses.Truncation(); truncation != nil {
		report.CoursesTruncated = truncation
	}
	report.SkippedCourses = courses.Skipped

	if len(courses.Items) == 0 {
		logger.Info().Msg("no courses found or the account cannot view them")
		observability.LastRunSuccess().SetToCurrentTime()
		return report, nil
	}
	logger.Info().Int("courses", len(courses.Items)).Msg("courses fetched")

	for _, course := range courses.Items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		courseReport, err := s.syncCourse(ctx, logger, course)
		if err != nil {
			return report, fmt.Errorf("sync course %s: %w", course.ID, err)
		}
		report.Courses = append(report.Courses, courseReport)

		if err := s.events.CourseSynced(ctx, report.RunID, courseReport); err != nil {
			logger.Warn().Err(err).Str("course_id", course.ID).Msg("failed to publish course event")
		}
	}

	observability.LastRunSuccess().SetToCurrentTime()
	logger.Info().
		Int("courses", len(report.Courses)).
		Bool("partial", report.IsPartial()).
		Msg("extraction completed")
	return report, nil
}

func (s *syncService) syncCourse(ctx context.Context, runLogger zerolog.Logger, course dto.Course) (dto.CourseReport, error) {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, "sync.course", trace.WithAttributes(attribute.String("course.id", course.ID)))
	defer span.End()

	logger := runLogger.With().Str("course_id", course.ID).Logger()
	logger.Info().Str("course_name", course.Name).Msg("processing course")

	report := dto.CourseReport{CourseID: course.ID, Name: course.Name}
	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		if err := repos.Courses.Save(ctx, toCourseModel(course)); err != nil {
			return err
		}
		observability.RecordsPersisted().WithLabelValues("course").Inc()

		teachers := s.source.Teachers(ctx, course.ID)
		addTruncation(&report, teachers.Truncation())
		report.SkippedTeachers = teachers.Skipped
		saved, err := s.saveMembers(ctx, repos, course.ID, teachers.Items, models.RoleTeacher)
		if err != nil {
			return err
		}
		report.Teachers = saved
		logger.Info().Int("teachers", saved).Msg("teachers processed")

		students := s.source.Students(ctx, course.ID)
		addTruncation(&report, students.Truncation())
		report.SkippedStudents = students.Skipped
		saved, err = s.saveMembers(ctx, repos, course.ID, students.Items, models.RoleStudent)
		if err != nil {
			return err
		}
		report.Students = saved
		logger.Info().Int("students", saved).Msg("students processed")

		announcements := s.source.Announcements(ctx, course.ID)
		addTruncation(&report, announcements.Truncation())
		report.SkippedOther += announcements.Skipped
		for _, announcement := range announcements.Items {
			if err := repos.Announcements.Save(ctx, toAnnouncementModel(announcement)); err != nil {
				return err
			}
			report.Announcements++
		}
		observability.RecordsPersisted().WithLabelValues("announcement").Add(float64(report.Announcements))
		logger.Info().Int("announcements", report.Announcements).Msg("announcements processed")

		work := s.source.CourseWork(ctx, course.ID)
		addTruncation(&report, work.Truncation())
		report.SkippedOther += work.Skipped
		for _, item := range work.Items {
			if err := repos.CourseWork.Save(ctx, toCourseWorkModel(item)); err != nil {
				return err
			}
			report.CourseWork++

			submissions := s.source.Submissions(ctx, course.ID, item.ID)
			addTruncation(&report, submissions.Truncation())
			report.SkippedOther += submissions.Skipped
			for _, submission := range submissions.Items {
				model := toSubmissionModel(submission)
				if err := repos.Submissions.Save(ctx, model); err != nil {
					return err
				}
				report.Submissions++
				if model.IsGraded() {
					report.Graded++
				}
			}
			logger.Debug().
				Str("course_work_id", item.ID).
				Str("title", item.Title).
				Int("submissions", len(submissions.Items)).
				Msg("course work processed")
		}
		observability.RecordsPersisted().WithLabelValues("course_work").Add(float64(report.CourseWork))
		observability.RecordsPersisted().WithLabelValues("submission").Add(float64(report.Submissions))
		logger.Info().
			Int("course_work", report.CourseWork).
			Int("submissions", report.Submissions).
			Int("graded", report.Graded).
			Msg("course work and submissions processed")

		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.KindOf(err)))
		logger.Error().Err(err).Str("kind", string(apperrors.KindOf(err))).Msg("course rolled back")
		return report, err
	}

	report.Duration = time.Since(started)
	observability.CourseSyncDuration().Observe(report.Duration.Seconds())
	if report.IsPartial() {
		logger.Warn().Int("truncated_listings", len(report.Truncated)).Msg("course committed with partial listings")
	}
	return report, nil
}

func (s *syncService) saveMembers(ctx context.Context, repos repository.Repositories, courseID string, members []dto.Member, role models.Role) (int, error) {
	saved := 0
	for _, member := range members {
		profile := masking.Mask(member.Profile, role, s.level)
		if err := repos.Users.Save(ctx, toUserModel(profile)); err != nil {
			return saved, err
		}
		created, err := repos.Enrollments.Save(ctx, models.Enrollment{CourseID: courseID, UserID: profile.ID, Role: role})
		if err != nil {
			return saved, err
		}
		if !created {
			s.logger.Debug().
				Str("course_id", courseID).
				Str("user_id", profile.ID).
				Str("role", string(role)).
				Msg("enrollment already recorded; keeping first role")
		}
		saved++
	}
	observability.RecordsPersisted().WithLabelValues("user").Add(float64(saved))
	return saved, nil
}

func addTruncation(report *dto.CourseReport, truncation *dto.TruncatedListing) {
	if truncation != nil {
		report.Truncated = append(report.Truncated, *truncation)
	}
}

func (s *syncService) startRun(ctx context.Context, report dto.RunReport) error {
	if s.runs == nil {
		return nil
	}

	previous, err := s.runs.Latest(ctx)
	if err != nil {
		return err
	}
	if previous != nil && previous.Status == models.SyncRunStatusRunning {
		s.logger.Warn().
			Str("run_id", report.RunID).
			Str("previous_run_id", previous.ID).
			Time("previous_started_at", previous.StartedAt).
			Msg("previous run never finished; its last course may have been rolled back")
	}

	run := models.SyncRun{
		ID:           report.RunID,
		Status:       models.SyncRunStatusRunning,
		MaskingLevel: report.MaskingLevel,
		StartedAt:    report.StartedAt,
	}
	return s.runs.Start(ctx, &run)
}

func (s *syncService) finishRun(ctx context.Context, report dto.RunReport, runErr error) {
	if s.runs == nil {
		return
	}

	outcome := repository.SyncRunFinish{
		Status:           models.SyncRunStatusCompleted,
		CoursesProcessed: len(report.Courses),
		Truncated:        report.IsPartial(),
		FinishedAt:       report.FinishedAt,
	}
	if runErr != nil {
		outcome.Status = models.SyncRunStatusFailed
		outcome.Error = runErr.Error()
	}
	if summary, err := json.Marshal(report); err == nil {
		outcome.Summary = datatypes.JSON(summary)
	}

	if err := s.runs.Finish(ctx, report.RunID, outcome); err != nil {
		s.logger.Warn().Err(err).Str("run_id", report.RunID).Msg("failed to record run outcome")
	}
}
