package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arkamaulana/classroom-api/internal/repository"
	"github.com/arkamaulana/classroom-api/internal/service"
	"github.com/arkamaulana/classroom-api/internal/utils"
)

// StudentDashboardHandler serves the aggregated student dashboard.
type StudentDashboardHandler struct {
	service service.StudentDashboardService
	users   repository.UserRepository
	logger  zerolog.Logger
}

// NewStudentDashboardHandler builds a dashboard handler instance.
func NewStudentDashboardHandler(service service.StudentDashboardService, users repository.UserRepository, logger zerolog.Logger) *StudentDashboardHandler {
	return &StudentDashboardHandler{
		service: service,
		users:   users,
		logger:  logger.With().Str("component", "student_dashboard_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *StudentDashboardHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
}

func (h *StudentDashboardHandler) stats(c *fiber.Ctx) error {
	student, err := currentUser(c, h.users)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to resolve student")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	stats, err := h.service.GetStats(c.Context(), student)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build dashboard stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "dashboard stats retrieved", stats)
}
