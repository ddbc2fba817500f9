package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/dto"
	"github.com/arkamaulana/classroom-api/internal/models"
	"github.com/arkamaulana/classroom-api/internal/repository"
)

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrDuplicateSubmission indicates the student already submitted for this assignment.
var ErrDuplicateSubmission = errors.New("submission already exists for this assignment")

// ErrUnsupportedFileType indicates the uploaded file is of a type the platform rejects.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// SubmissionService records assignment submissions, enforcing the
// one-submission-per-student invariant.
type SubmissionService interface {
	List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error)
	Submit(ctx context.Context, assignmentID uint, student models.User, file *multipart.FileHeader) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	uploader    FileUploader
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(subRepo repository.SubmissionRepository, assignmentRepo repository.AssignmentRepository, uploader FileUploader, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: subRepo,
		assignments: assignmentRepo,
		uploader:    uploader,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	repoFilter := repository.SubmissionFilter{
		AssignmentID: filter.AssignmentID,
		StudentID:    filter.StudentID,
	}

	submissions, err := s.submissions.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) Submit(ctx context.Context, assignmentID uint, student models.User, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	if file == nil {
		return dto.SubmissionResponse{}, fmt.Errorf("submission file is required")
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	// Students who cannot see the assignment get the same answer as if it
	// did not exist.
	if !IsVisible(assignment.Access(), student) {
		return dto.SubmissionResponse{}, ErrAssignmentNotFound
	}

	// Fast path; the unique index below is the real guarantee.
	exists, err := s.submissions.ExistsByAssignmentAndStudent(ctx, assignment.ID, student.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	if exists {
		return dto.SubmissionResponse{}, ErrDuplicateSubmission
	}

	fileType, err := validateSubmissionFile(file)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	reader, err := file.Open()
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	uploadURL, err := s.uploader.Upload(ctx, file.Filename, reader)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to upload file: %w", err)
	}

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		FilePath:     uploadURL,
		FileName:     file.Filename,
		FileType:     fileType,
		SubmitDate:   s.now(),
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.SubmissionResponse{}, ErrDuplicateSubmission
		}
		return dto.SubmissionResponse{}, err
	}

	created, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", created.ID).
		Uint("assignment_id", assignment.ID).
		Uint("student_id", student.ID).
		Msg("submission created")

	return dto.NewSubmissionResponse(created), nil
}

func validateSubmissionFile(file *multipart.FileHeader) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}

	allowed := []string{"application/pdf", "application/zip", "application/x-zip-compressed", "text/plain"}
	for _, a := range allowed {
		if mime.Is(a) {
			return mime.String(), nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, mime.String())
}
