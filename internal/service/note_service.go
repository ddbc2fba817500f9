package service

import (
	"context"
	"errors"
	"fmt"
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

// ErrNoteNotFound indicates the requested note does not exist or is hidden.
var ErrNoteNotFound = errors.New("note not found")

// NoteService exposes study-note use cases.
type NoteService interface {
	ListVisible(ctx context.Context, student models.User) ([]dto.NoteResponse, error)
	ListOwned(ctx context.Context, teacherID uint) ([]dto.NoteResponse, error)
	Upload(ctx context.Context, teacher models.User, payload dto.NoteCreateRequest, file *multipart.FileHeader) (dto.NoteResponse, error)
	Download(ctx context.Context, noteID uint, student models.User) (dto.NoteResponse, error)
}

type noteService struct {
	notes     repository.NoteRepository
	users     repository.UserRepository
	validator *validator.Validate
	uploader  FileUploader
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewNoteService constructs a NoteService instance.
func NewNoteService(notes repository.NoteRepository, users repository.UserRepository, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) NoteService {
	return &noteService{
		notes:     notes,
		users:     users,
		validator: validate,
		uploader:  uploader,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "note_service").Logger(),
		now:       time.Now,
	}
}

func (s *noteService) ListVisible(ctx context.Context, student models.User) ([]dto.NoteResponse, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewNoteResponseSlice(FilterVisible(notes, student)), nil
}

func (s *noteService) ListOwned(ctx context.Context, teacherID uint) ([]dto.NoteResponse, error) {
	notes, err := s.notes.ListByUploader(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewNoteResponseSlice(notes), nil
}

func (s *noteService) Upload(ctx context.Context, teacher models.User, payload dto.NoteCreateRequest, file *multipart.FileHeader) (dto.NoteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NoteResponse{}, err
	}

	if file == nil {
		return dto.NoteResponse{}, fmt.Errorf("note file is required")
	}

	reader, err := file.Open()
	if err != nil {
		return dto.NoteResponse{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	url, err := s.uploader.Upload(ctx, file.Filename, reader)
	if err != nil {
		return dto.NoteResponse{}, fmt.Errorf("failed to upload file: %w", err)
	}

	note := models.Note{
		Title:         payload.Title,
		Description:   s.sanitizer.Sanitize(payload.Description),
		FilePath:      url,
		FileName:      file.Filename,
		FileType:      file.Header.Get("Content-Type"),
		Subject:       payload.Subject,
		ClassSemester: payload.ClassSemester,
		AccessType:    models.AccessType(payload.AccessType),
		UploadedByID:  teacher.ID,
		UploadDate:    s.now(),
	}

	if note.AccessType == models.AccessSelectedStudents {
		roster := make([]models.User, 0, len(payload.AssignedStudentIDs))
		for _, id := range payload.AssignedStudentIDs {
			student, err := s.users.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return dto.NoteResponse{}, err
			}
			roster = append(roster, student)
		}
		note.AssignedStudents = roster
	}

	if err := s.notes.Create(ctx, &note); err != nil {
		return dto.NoteResponse{}, err
	}

	s.logger.Info().Uint("note_id", note.ID).Msg("note uploaded")

	return dto.NewNoteResponse(note), nil
}

// Download resolves the note for the student and records the download.
func (s *noteService) Download(ctx context.Context, noteID uint, student models.User) (dto.NoteResponse, error) {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NoteResponse{}, ErrNoteNotFound
		}
		return dto.NoteResponse{}, err
	}

	if !IsVisible(note.Access(), student) {
		return dto.NoteResponse{}, ErrNoteNotFound
	}

	if err := s.notes.IncrementDownloadCount(ctx, note.ID); err != nil {
		// Download tracking is advisory; the student still gets the file.
		s.logger.Warn().Err(err).Uint("note_id", note.ID).Msg("failed to record download")
	}

	return dto.NewNoteResponse(note), nil
}
