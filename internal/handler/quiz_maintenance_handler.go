package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arkamaulana/classroom-api/internal/service"
	"github.com/arkamaulana/classroom-api/internal/utils"
)

// QuizMaintenanceHandler exposes administrative quiz repair operations.
type QuizMaintenanceHandler struct {
	service service.QuizMaintenanceService
	logger  zerolog.Logger
}

// NewQuizMaintenanceHandler builds a quiz maintenance handler instance.
func NewQuizMaintenanceHandler(service service.QuizMaintenanceService, logger zerolog.Logger) *QuizMaintenanceHandler {
	return &QuizMaintenanceHandler{
		service: service,
		logger:  logger.With().Str("component", "quiz_maintenance_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *QuizMaintenanceHandler) Register(router fiber.Router) {
	router.Post("/quizzes/:id/repair-options", h.repairOptions)
}

func (h *QuizMaintenanceHandler) repairOptions(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	fixed, err := h.service.RepairQuizOptions(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "quiz not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "quiz options repaired", fiber.Map{"questions_fixed": fixed})
}
