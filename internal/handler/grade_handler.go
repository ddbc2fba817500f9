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

// GradeHandler manages grading endpoints.
type GradeHandler struct {
	service service.GradeService
	users   repository.UserRepository
	logger  zerolog.Logger
}

// NewGradeHandler builds a grade handler instance.
func NewGradeHandler(service service.GradeService, users repository.UserRepository, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service: service,
		users:   users,
		logger:  logger.With().Str("component", "grade_handler").Logger(),
	}
}

// RegisterStudent attaches the student-facing routes to the provided group.
func (h *GradeHandler) RegisterStudent(router fiber.Router) {
	router.Get("", h.published)
}

// RegisterTeacher attaches the teacher-facing routes to the provided group.
func (h *GradeHandler) RegisterTeacher(router fiber.Router) {
	router.Get("/submissions/:id", h.bySubmission)
	router.Put("/submissions/:id", h.setGrade)
}

func (h *GradeHandler) published(c *fiber.Ctx) error {
	student, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	grades, err := h.service.PublishedGrades(c.Context(), student)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "grades retrieved", grades)
}

func (h *GradeHandler) bySubmission(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	grade, err := h.service.GetBySubmission(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "grade retrieved", grade)
}

func (h *GradeHandler) setGrade(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	teacher, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	grade, err := h.service.SetGrade(c.Context(), id, teacher, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "grade updated", grade)
}

func (h *GradeHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrNotOwner):
		return utils.SendError(c, fiber.StatusForbidden, "only the assignment owner may grade")
	case errors.Is(err, service.ErrAlreadyPublished):
		return utils.SendError(c, fiber.StatusConflict, "grade already published")
	case errors.Is(err, service.ErrGradeConflict):
		return utils.SendError(c, fiber.StatusConflict, "grade was modified concurrently")
	case errors.Is(err, service.ErrRejectReasonRequired):
		return utils.SendError(c, fiber.StatusBadRequest, "rejection requires feedback")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
