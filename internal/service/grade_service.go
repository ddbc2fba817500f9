package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/dto"
	"github.com/arkamaulana/classroom-api/internal/models"
	"github.com/arkamaulana/classroom-api/internal/observability"
	"github.com/arkamaulana/classroom-api/internal/repository"
)

// ErrNotOwner indicates a teacher tried to grade a submission for an
// assignment they did not create.
var ErrNotOwner = errors.New("only the owning teacher may grade this submission")

// ErrAlreadyPublished indicates a grading action against a published grade.
var ErrAlreadyPublished = errors.New("grade has already been published")

// ErrGradeConflict indicates two concurrent grading actions collided; the
// caller should re-read and retry.
var ErrGradeConflict = errors.New("grade was modified concurrently")

// ErrRejectReasonRequired indicates a rejection without a reason.
var ErrRejectReasonRequired = errors.New("a reason is required to reject a submission")

// GradeService drives the grade lifecycle for assignment submissions:
// PENDING -> GRADED -> PUBLISHED, or -> REJECTED at any point before publish.
type GradeService interface {
	SetGrade(ctx context.Context, submissionID uint, teacher models.User, payload dto.GradeRequest) (dto.GradeResponse, error)
	GetBySubmission(ctx context.Context, submissionID uint) (dto.GradeResponse, error)
	PublishedGrades(ctx context.Context, student models.User) ([]dto.GradeResponse, error)
}

type gradeService struct {
	grades      repository.GradeRepository
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	notifier    GradeNotifier
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewGradeService constructs the grade lifecycle service.
func NewGradeService(grades repository.GradeRepository, submissions repository.SubmissionRepository, validate *validator.Validate, notifier GradeNotifier, logger zerolog.Logger) GradeService {
	return &gradeService{
		grades:      grades,
		submissions: submissions,
		validator:   validate,
		notifier:    notifier,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "grade_service").Logger(),
		tracer:      otel.Tracer("github.com/arkamaulana/classroom-api/internal/service/grade"),
		now:         time.Now,
	}
}

func (s *gradeService) SetGrade(ctx context.Context, submissionID uint, teacher models.User, payload dto.GradeRequest) (dto.GradeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "grade.set")
	span.SetAttributes(
		attribute.Int64("grade.submission_id", int64(submissionID)),
		attribute.Int64("grade.teacher_id", int64(teacher.ID)),
		attribute.String("grade.action", payload.Action),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.GradeResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return dto.GradeResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		return dto.GradeResponse{}, err
	}

	if submission.Assignment.CreatedByID != teacher.ID {
		span.SetStatus(codes.Error, "not_owner")
		return dto.GradeResponse{}, ErrNotOwner
	}

	grade, created, err := s.loadOrCreateGrade(ctx, submission.ID)
	if err != nil {
		span.RecordError(err)
		return dto.GradeResponse{}, err
	}

	if grade.IsPublished() {
		span.SetStatus(codes.Error, "already_published")
		return dto.GradeResponse{}, ErrAlreadyPublished
	}

	marks := payload.Marks
	if len(payload.RubricScores) > 0 {
		total := 0.0
		for _, score := range payload.RubricScores {
			total += score.Score
		}
		marks = &total
	}
	if marks != nil {
		grade.Marks = marks
	}

	feedback := s.sanitizer.Sanitize(strings.TrimSpace(payload.Feedback))

	action := strings.ToUpper(payload.Action)
	gradedAt := s.now()

	switch action {
	case dto.GradeActionSave:
		grade.Status = models.GradeGraded
		grade.GradedAt = &gradedAt
		grade.Feedback = feedback
	case dto.GradeActionPublish:
		publishedAt := gradedAt
		grade.Status = models.GradePublished
		grade.GradedAt = &gradedAt
		grade.PublishedAt = &publishedAt
		grade.Feedback = feedback
	case dto.GradeActionReject:
		if feedback == "" {
			span.SetStatus(codes.Error, "reject_reason_required")
			return dto.GradeResponse{}, ErrRejectReasonRequired
		}
		grade.Status = models.GradeRejected
		grade.GradedAt = &gradedAt
		grade.Feedback = feedback
	}

	if err := s.persistGrade(ctx, &grade, created); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grade_persist_failed")
		return dto.GradeResponse{}, err
	}

	observability.GradeTransitions().WithLabelValues(string(grade.Status)).Inc()
	span.SetAttributes(attribute.String("grade.status", string(grade.Status)))

	s.emitEvent(grade, submission, action)

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("teacher_id", teacher.ID).
		Str("status", string(grade.Status)).
		Msg("grade updated")

	return dto.NewGradeResponse(grade), nil
}

func (s *gradeService) GetBySubmission(ctx context.Context, submissionID uint) (dto.GradeResponse, error) {
	grade, err := s.grades.GetBySubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GradeResponse{}, ErrSubmissionNotFound
		}
		return dto.GradeResponse{}, err
	}

	return dto.NewGradeResponse(grade), nil
}

func (s *gradeService) PublishedGrades(ctx context.Context, student models.User) ([]dto.GradeResponse, error) {
	grades, err := s.grades.ListPublishedByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewGradeResponseSlice(grades), nil
}

func (s *gradeService) loadOrCreateGrade(ctx context.Context, submissionID uint) (models.Grade, bool, error) {
	grade, err := s.grades.GetBySubmission(ctx, submissionID)
	if err == nil {
		return grade, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Grade{}, false, err
	}

	return models.Grade{
		SubmissionID: submissionID,
		Status:       models.GradePending,
	}, true, nil
}

func (s *gradeService) persistGrade(ctx context.Context, grade *models.Grade, created bool) error {
	if created {
		return s.grades.Create(ctx, grade)
	}

	if err := s.grades.UpdateVersioned(ctx, grade); err != nil {
		if errors.Is(err, repository.ErrStaleGrade) {
			return ErrGradeConflict
		}
		return err
	}
	return nil
}

func (s *gradeService) emitEvent(grade models.Grade, submission models.Submission, action string) {
	if s.notifier == nil {
		return
	}

	event := GradeEvent{
		SubmissionID: submission.ID,
		StudentID:    submission.StudentID,
		AssignmentID: submission.AssignmentID,
		Status:       string(grade.Status),
		Marks:        grade.Marks,
		OccurredAt:   s.now(),
	}

	switch action {
	case dto.GradeActionPublish:
		s.notifier.GradePublished(event)
	case dto.GradeActionReject:
		s.notifier.GradeRejected(event)
	}
}
