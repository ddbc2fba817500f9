package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/arkamaulana/classroom-api/internal/config"
	"github.com/arkamaulana/classroom-api/internal/handler"
	"github.com/arkamaulana/classroom-api/internal/middleware"
	"github.com/arkamaulana/classroom-api/internal/models"
	"github.com/arkamaulana/classroom-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	NoteHandler             *handler.NoteHandler
	AssignmentHandler       *handler.AssignmentHandler
	QuizHandler             *handler.QuizHandler
	SubmissionHandler       *handler.SubmissionHandler
	GradeHandler            *handler.GradeHandler
	StudentDashboardHandler *handler.StudentDashboardHandler
	QuizMaintenanceHandler  *handler.QuizMaintenanceHandler
	JWTMiddleware           fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	student := api.Group("/student", jwtMiddleware, middleware.RequireRole(string(models.RoleStudent)))
	if deps.NoteHandler != nil {
		deps.NoteHandler.RegisterStudent(student.Group("/notes"))
	}
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.RegisterStudent(student.Group("/assignments"))
	}
	if deps.QuizHandler != nil {
		quizzes := student.Group("/quizzes")
		quizzes.Use(middleware.RateLimit("quiz", 30, time.Minute))
		deps.QuizHandler.Register(quizzes)
	}
	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.RegisterStudent(student.Group("/submissions"))
	}
	if deps.GradeHandler != nil {
		deps.GradeHandler.RegisterStudent(student.Group("/grades"))
	}
	if deps.StudentDashboardHandler != nil {
		deps.StudentDashboardHandler.Register(student.Group("/dashboard"))
	}

	teacher := api.Group("/teacher", jwtMiddleware, middleware.RequireRole(string(models.RoleTeacher), string(models.RoleAdmin)))
	if deps.NoteHandler != nil {
		deps.NoteHandler.RegisterTeacher(teacher.Group("/notes"))
	}
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.RegisterTeacher(teacher.Group("/assignments"))
	}
	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.RegisterTeacher(teacher.Group("/submissions"))
	}
	if deps.GradeHandler != nil {
		deps.GradeHandler.RegisterTeacher(teacher.Group("/grades"))
	}

	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(string(models.RoleAdmin)))
	if deps.QuizMaintenanceHandler != nil {
		deps.QuizMaintenanceHandler.Register(admin)
	}
}
