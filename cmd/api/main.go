package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/arkamaulana/classroom-api/internal/config"
	"github.com/arkamaulana/classroom-api/internal/database"
	"github.com/arkamaulana/classroom-api/internal/handler"
	"github.com/arkamaulana/classroom-api/internal/middleware"
	"github.com/arkamaulana/classroom-api/internal/models"
	"github.com/arkamaulana/classroom-api/internal/repository"
	"github.com/arkamaulana/classroom-api/internal/router"
	"github.com/arkamaulana/classroom-api/internal/service"
	cloud "github.com/arkamaulana/classroom-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Assignment{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizOption{},
		&models.QuizSubmission{},
		&models.Submission{},
		&models.Grade{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	// Grade notifications are best effort; the API runs without a broker.
	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, grade events disabled")
		} else {
			defer natsConn.Close()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	quizSubmissionRepo := repository.NewQuizSubmissionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	gradeRepo := repository.NewGradeRepository(db)

	notifier := service.NewNATSGradeNotifier(natsConn, cfg.GradeEventSubject, logger)

	noteService := service.NewNoteService(noteRepo, userRepo, validate, uploader, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, userRepo, validate, uploader, logger)
	quizService := service.NewQuizService(quizRepo, quizSubmissionRepo, logger)
	quizMaintenanceService := service.NewQuizMaintenanceService(quizRepo, nil, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, uploader, logger)
	gradeService := service.NewGradeService(gradeRepo, submissionRepo, validate, notifier, logger)
	dashboardService := service.NewStudentDashboardService(
		noteRepo,
		assignmentRepo,
		submissionRepo,
		quizRepo,
		quizSubmissionRepo,
		gradeRepo,
		redisClient,
		cfg.DashboardCacheTTL,
		logger,
	)

	noteHandler := handler.NewNoteHandler(noteService, userRepo, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, userRepo, logger)
	quizHandler := handler.NewQuizHandler(quizService, userRepo, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, userRepo, logger)
	gradeHandler := handler.NewGradeHandler(gradeService, userRepo, logger)
	dashboardHandler := handler.NewStudentDashboardHandler(dashboardService, userRepo, logger)
	quizMaintenanceHandler := handler.NewQuizMaintenanceHandler(quizMaintenanceService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		NoteHandler:             noteHandler,
		AssignmentHandler:       assignmentHandler,
		QuizHandler:             quizHandler,
		SubmissionHandler:       submissionHandler,
		GradeHandler:            gradeHandler,
		StudentDashboardHandler: dashboardHandler,
		QuizMaintenanceHandler:  quizMaintenanceHandler,
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
