package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/dto"
	"github.com/arkamaulana/classroom-api/internal/models"
	"github.com/arkamaulana/classroom-api/internal/repository"
)

// ErrAssignmentNotFound indicates the requested assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// AssignmentService exposes assignment domain use cases.
type AssignmentService interface {
	ListVisible(ctx context.Context, student models.User) ([]dto.AssignmentResponse, error)
	ListOwned(ctx context.Context, teacherID uint) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, id uint, student models.User) (dto.AssignmentResponse, error)
	Create(ctx context.Context, teacher models.User, payload dto.AssignmentCreateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo      repository.AssignmentRepository
	users     repository.UserRepository
	validator *validator.Validate
	uploader  FileUploader
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(repo repository.AssignmentRepository, users repository.UserRepository, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		repo:      repo,
		users:     users,
		validator: validate,
		uploader:  uploader,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "assignment_service").Logger(),
		now:       time.Now,
	}
}

func (s *assignmentService) ListVisible(ctx context.Context, student models.User) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(FilterVisible(assignments, student)), nil
}

func (s *assignmentService) ListOwned(ctx context.Context, teacherID uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.ListByCreator(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *assignmentService) Get(ctx context.Context, id uint, student models.User) (dto.AssignmentResponse, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if !IsVisible(assignment.Access(), student) {
		return dto.AssignmentResponse{}, ErrAssignmentNotFound
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Create(ctx context.Context, teacher models.User, payload dto.AssignmentCreateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, fmt.Errorf("invalid due date: %w", err)
	}

	if !dueDate.After(s.now()) {
		return dto.AssignmentResponse{}, fmt.Errorf("due date must be in the future")
	}

	assignment := models.Assignment{
		Title:         payload.Title,
		Description:   s.sanitizer.Sanitize(payload.Description),
		DueDate:       dueDate,
		TotalMarks:    payload.TotalMarks,
		ClassSemester: payload.ClassSemester,
		AccessType:    models.AccessType(payload.AccessType),
		CreatedByID:   teacher.ID,
	}

	if assignment.AccessType == models.AccessSelectedStudents {
		roster, err := s.resolveRoster(ctx, payload.AssignedStudentIDs)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}
		assignment.AssignedStudents = roster
	}

	if file != nil {
		url, err := s.uploadFile(ctx, file)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}
		assignment.FilePath = url
		assignment.FileName = file.Filename
		assignment.FileType = file.Header.Get("Content-Type")
	}

	if err := s.repo.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

// resolveRoster looks up the selected students, silently skipping ids that do
// not resolve to an existing account.
func (s *assignmentService) resolveRoster(ctx context.Context, ids []uint) ([]models.User, error) {
	roster := make([]models.User, 0, len(ids))
	for _, id := range ids {
		student, err := s.users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		roster = append(roster, student)
	}
	return roster, nil
}

func (s *assignmentService) uploadFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	url, err := s.uploader.Upload(ctx, file.Filename, src)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return url, nil
}
