package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arkamaulana/classroom-api/internal/dto"
	"github.com/arkamaulana/classroom-api/internal/repository"
	"github.com/arkamaulana/classroom-api/internal/service"
	"github.com/arkamaulana/classroom-api/internal/utils"
)

// NoteHandler manages note endpoints.
type NoteHandler struct {
	service service.NoteService
	users   repository.UserRepository
	logger  zerolog.Logger
}

// NewNoteHandler builds a note handler instance.
func NewNoteHandler(service service.NoteService, users repository.UserRepository, logger zerolog.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		users:   users,
		logger:  logger.With().Str("component", "note_handler").Logger(),
	}
}

// RegisterStudent attaches the student-facing routes to the provided group.
func (h *NoteHandler) RegisterStudent(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id/download", h.download)
}

// RegisterTeacher attaches the teacher-facing routes to the provided group.
func (h *NoteHandler) RegisterTeacher(router fiber.Router) {
	router.Get("", h.listOwned)
	router.Post("", h.upload)
}

func (h *NoteHandler) list(c *fiber.Ctx) error {
	student, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	notes, err := h.service.ListVisible(c.Context(), student)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "notes retrieved", notes)
}

func (h *NoteHandler) download(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	note, err := h.service.Download(c.Context(), id, student)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "note ready for download", note)
}

func (h *NoteHandler) listOwned(c *fiber.Ctx) error {
	notes, err := h.service.ListOwned(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "notes retrieved", notes)
}

func (h *NoteHandler) upload(c *fiber.Ctx) error {
	teacher, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	assignedIDs, err := parseFormUintSlice(c, "assigned_student_ids")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	payload := dto.NoteCreateRequest{
		Title:              c.FormValue("title"),
		Description:        c.FormValue("description"),
		Subject:            c.FormValue("subject"),
		ClassSemester:      c.FormValue("class_semester"),
		AccessType:         c.FormValue("access_type"),
		AssignedStudentIDs: assignedIDs,
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	note, err := h.service.Upload(c.Context(), teacher, payload, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "note uploaded", note)
}

func (h *NoteHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "note not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
