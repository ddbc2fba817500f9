package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/models"
	"github.com/arkamaulana/classroom-api/internal/repository"
)

// QuizMaintenanceService contains administrative repair operations for quiz
// data. Nothing here runs as part of grading; scoring stays deterministic.
type QuizMaintenanceService interface {
	RepairQuizOptions(ctx context.Context, quizID uint) (int, error)
}

type quizMaintenanceService struct {
	quizzes repository.QuizRepository
	logger  zerolog.Logger
	pick    func(n int) int
}

// NewQuizMaintenanceService constructs the maintenance service. The option
// picker is seeded from the provided source so tests can make it
// deterministic.
func NewQuizMaintenanceService(quizzes repository.QuizRepository, rng *rand.Rand, logger zerolog.Logger) QuizMaintenanceService {
	pick := rand.Intn
	if rng != nil {
		pick = rng.Intn
	}

	return &quizMaintenanceService{
		quizzes: quizzes,
		logger:  logger.With().Str("component", "quiz_maintenance_service").Logger(),
		pick:    pick,
	}
}

// RepairQuizOptions marks a random option correct on every MCQ or TRUE_FALSE
// question that has options but no correct one. Returns how many questions
// were fixed.
func (s *quizMaintenanceService) RepairQuizOptions(ctx context.Context, quizID uint) (int, error) {
	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrQuizNotFound
		}
		return 0, err
	}

	questions, err := s.quizzes.QuestionsForQuiz(ctx, quizID)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, question := range questions {
		if question.QuestionType != models.QuestionMCQ && question.QuestionType != models.QuestionTrueFalse {
			continue
		}
		if len(question.Options) == 0 || question.CorrectOption() != nil {
			continue
		}

		option := question.Options[s.pick(len(question.Options))]
		option.IsCorrect = true
		if err := s.quizzes.SaveOption(ctx, &option); err != nil {
			return fixed, err
		}

		s.logger.Info().
			Uint("question_id", question.ID).
			Uint("option_id", option.ID).
			Str("option_text", option.OptionText).
			Msg("marked option as correct")
		fixed++
	}

	return fixed, nil
}
