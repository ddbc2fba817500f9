package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arkamaulana/classroom-api/internal/dto"
	"github.com/arkamaulana/classroom-api/internal/repository"
	"github.com/arkamaulana/classroom-api/internal/service"
	"github.com/arkamaulana/classroom-api/internal/utils"
)

// AssignmentHandler manages assignment endpoints.
type AssignmentHandler struct {
	service service.AssignmentService
	users   repository.UserRepository
	logger  zerolog.Logger
}

// NewAssignmentHandler builds an assignment handler instance.
func NewAssignmentHandler(service service.AssignmentService, users repository.UserRepository, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		users:   users,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// RegisterStudent attaches the student-facing routes to the provided group.
func (h *AssignmentHandler) RegisterStudent(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterTeacher attaches the teacher-facing routes to the provided group.
func (h *AssignmentHandler) RegisterTeacher(router fiber.Router) {
	router.Get("", h.listOwned)
	router.Post("", h.create)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	student, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	assignments, err := h.service.ListVisible(c.Context(), student)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	assignment, err := h.service.Get(c.Context(), id, student)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *AssignmentHandler) listOwned(c *fiber.Ctx) error {
	assignments, err := h.service.ListOwned(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	teacher, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	assignedIDs, err := parseFormUintSlice(c, "assigned_student_ids")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	totalMarks := 0.0
	if raw := c.FormValue("total_marks"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid total_marks")
		}
		totalMarks = parsed
	}

	payload := dto.AssignmentCreateRequest{
		Title:              c.FormValue("title"),
		Description:        c.FormValue("description"),
		DueDate:            c.FormValue("due_date"),
		TotalMarks:         totalMarks,
		ClassSemester:      c.FormValue("class_semester"),
		AccessType:         c.FormValue("access_type"),
		AssignedStudentIDs: assignedIDs,
	}

	// File attachment is optional for assignments.
	file, _ := c.FormFile("file")

	assignment, err := h.service.Create(c.Context(), teacher, payload, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *AssignmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
