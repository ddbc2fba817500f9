package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/dto"
	"github.com/arkamaulana/classroom-api/internal/models"
	"github.com/arkamaulana/classroom-api/internal/observability"
	"github.com/arkamaulana/classroom-api/internal/repository"
)

// ErrQuizNotFound indicates the quiz does not exist or is not visible to the caller.
var ErrQuizNotFound = errors.New("quiz not found")

// ErrAttemptLimitReached indicates the student already used every allowed attempt.
var ErrAttemptLimitReached = errors.New("quiz attempt limit reached")

// QuizService exposes the student-facing quiz workflows.
type QuizService interface {
	ListVisible(ctx context.Context, student models.User) ([]dto.QuizSummaryResponse, error)
	GetDetails(ctx context.Context, quizID uint, student models.User) (dto.QuizDetailsResponse, error)
	Submit(ctx context.Context, quizID uint, student models.User, answers map[string]interface{}) (dto.QuizResultResponse, error)
}

type quizService struct {
	quizzes     repository.QuizRepository
	submissions repository.QuizSubmissionRepository
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(quizzes repository.QuizRepository, submissions repository.QuizSubmissionRepository, logger zerolog.Logger) QuizService {
	return &quizService{
		quizzes:     quizzes,
		submissions: submissions,
		logger:      logger.With().Str("component", "quiz_service").Logger(),
		tracer:      otel.Tracer("github.com/arkamaulana/classroom-api/internal/service/quiz"),
		now:         time.Now,
	}
}

func (s *quizService) ListVisible(ctx context.Context, student models.User) ([]dto.QuizSummaryResponse, error) {
	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return nil, err
	}

	published := make([]models.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if !quiz.IsDraft() {
			published = append(published, quiz)
		}
	}

	visible := FilterVisible(published, student)
	return dto.NewQuizSummaryResponseSlice(visible), nil
}

func (s *quizService) GetDetails(ctx context.Context, quizID uint, student models.User) (dto.QuizDetailsResponse, error) {
	quiz, questions, err := s.visibleQuizWithQuestions(ctx, quizID, student)
	if err != nil {
		return dto.QuizDetailsResponse{}, err
	}

	return dto.NewQuizDetailsResponse(quiz, questions), nil
}

func (s *quizService) Submit(ctx context.Context, quizID uint, student models.User, answers map[string]interface{}) (dto.QuizResultResponse, error) {
	ctx, span := s.tracer.Start(ctx, "quiz.submit")
	span.SetAttributes(
		attribute.Int64("quiz.id", int64(quizID)),
		attribute.Int64("quiz.student_id", int64(student.ID)),
	)
	defer span.End()

	quiz, questions, err := s.visibleQuizWithQuestions(ctx, quizID, student)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "quiz_lookup_failed")
		return dto.QuizResultResponse{}, err
	}

	if quiz.MaxAttempts > 0 {
		attempts, err := s.submissions.CountByQuizAndStudent(ctx, quiz.ID, student.ID)
		if err != nil {
			span.RecordError(err)
			return dto.QuizResultResponse{}, err
		}
		if attempts >= int64(quiz.MaxAttempts) {
			span.SetStatus(codes.Error, "attempt_limit_reached")
			return dto.QuizResultResponse{}, ErrAttemptLimitReached
		}
	}

	evaluation := EvaluateQuiz(quiz, questions, answers)

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		// Answers came off the wire as JSON; failure here means a value that
		// cannot round-trip, and the attempt is not recorded.
		span.RecordError(err)
		return dto.QuizResultResponse{}, err
	}

	submission := models.QuizSubmission{
		QuizID:     quiz.ID,
		StudentID:  student.ID,
		Answers:    rawAnswers,
		Score:      evaluation.Score,
		SubmitDate: s.now(),
	}
	if err := s.submissions.Create(ctx, &submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_persist_failed")
		return dto.QuizResultResponse{}, err
	}

	observability.QuizEvaluations().WithLabelValues(string(evaluation.Status)).Inc()
	span.SetAttributes(
		attribute.Float64("quiz.score", evaluation.Score),
		attribute.Int("quiz.percentage", evaluation.Percentage),
		attribute.String("quiz.status", string(evaluation.Status)),
	)

	s.logger.Info().
		Uint("quiz_id", quiz.ID).
		Uint("student_id", student.ID).
		Float64("score", evaluation.Score).
		Int("percentage", evaluation.Percentage).
		Str("status", string(evaluation.Status)).
		Msg("quiz submission evaluated")

	return newQuizResultResponse(evaluation), nil
}

func newQuizResultResponse(evaluation QuizEvaluation) dto.QuizResultResponse {
	return dto.QuizResultResponse{
		Score:          evaluation.Score,
		TotalQuestions: evaluation.TotalQuestions,
		CorrectAnswers: evaluation.CorrectAnswers,
		Percentage:     evaluation.Percentage,
		Status:         string(evaluation.Status),
	}
}

func (s *quizService) visibleQuizWithQuestions(ctx context.Context, quizID uint, student models.User) (models.Quiz, []models.QuizQuestion, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Quiz{}, nil, ErrQuizNotFound
		}
		return models.Quiz{}, nil, err
	}

	// Hidden quizzes are reported as absent so their existence does not leak.
	if quiz.IsDraft() || !IsVisible(quiz.Access(), student) {
		return models.Quiz{}, nil, ErrQuizNotFound
	}

	questions, err := s.quizzes.QuestionsForQuiz(ctx, quiz.ID)
	if err != nil {
		return models.Quiz{}, nil, err
	}

	return quiz, questions, nil
}
