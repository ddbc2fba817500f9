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

// QuizHandler manages the student-facing quiz endpoints.
type QuizHandler struct {
	service service.QuizService
	users   repository.UserRepository
	logger  zerolog.Logger
}

// NewQuizHandler builds a quiz handler instance.
func NewQuizHandler(service service.QuizService, users repository.UserRepository, logger zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		service: service,
		users:   users,
		logger:  logger.With().Str("component", "quiz_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *QuizHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.details)
	router.Post("/:id/submit", h.submit)
}

func (h *QuizHandler) list(c *fiber.Ctx) error {
	student, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	quizzes, err := h.service.ListVisible(c.Context(), student)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quizzes retrieved", quizzes)
}

func (h *QuizHandler) details(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	quiz, err := h.service.GetDetails(c.Context(), id, student)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quiz retrieved", quiz)
}

func (h *QuizHandler) submit(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := currentUser(c, h.users)
	if err != nil {
		return h.handleError(c, err)
	}

	var payload dto.QuizSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Answers == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "answers are required")
	}

	result, err := h.service.Submit(c.Context(), id, student, payload.Answers)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quiz evaluated", result)
}

func (h *QuizHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "quiz not found")
	case errors.Is(err, service.ErrAttemptLimitReached):
		return utils.SendError(c, fiber.StatusConflict, "quiz attempt limit reached")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
