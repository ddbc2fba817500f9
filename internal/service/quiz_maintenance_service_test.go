package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkamaulana/classroom-api/internal/models"
)

func TestRepairQuizOptionsMarksMissingCorrectOption(t *testing.T) {
	repo := newMemoryQuizRepo()
	seedQuiz(repo, publishedQuiz(1),
		models.QuizQuestion{
			ID:           10,
			QuizID:       1,
			QuestionType: models.QuestionMCQ,
			Marks:        1,
			Options: []models.QuizOption{
				{ID: 1, OptionText: "A"},
				{ID: 2, OptionText: "B"},
				{ID: 3, OptionText: "C"},
			},
		},
		models.QuizQuestion{
			ID:           11,
			QuizID:       1,
			QuestionType: models.QuestionMCQ,
			Marks:        1,
			Options: []models.QuizOption{
				{ID: 4, OptionText: "A", IsCorrect: true},
				{ID: 5, OptionText: "B"},
			},
		},
	)

	svc := NewQuizMaintenanceService(repo, rand.New(rand.NewSource(1)), testLogger())

	fixed, err := svc.RepairQuizOptions(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, fixed)

	questions, err := repo.QuestionsForQuiz(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, questions[0].CorrectOption())
	// The already-correct question keeps its original answer key.
	require.Equal(t, uint(4), questions[1].CorrectOption().ID)
}

func TestRepairQuizOptionsSkipsShortAnswer(t *testing.T) {
	repo := newMemoryQuizRepo()
	seedQuiz(repo, publishedQuiz(1),
		models.QuizQuestion{
			ID:            10,
			QuizID:        1,
			QuestionType:  models.QuestionShortAnswer,
			Marks:         1,
			CorrectAnswer: strPtr("42"),
		},
	)

	svc := NewQuizMaintenanceService(repo, rand.New(rand.NewSource(1)), testLogger())

	fixed, err := svc.RepairQuizOptions(context.Background(), 1)
	require.NoError(t, err)
	require.Zero(t, fixed)
}

func TestRepairQuizOptionsUnknownQuiz(t *testing.T) {
	svc := NewQuizMaintenanceService(newMemoryQuizRepo(), rand.New(rand.NewSource(1)), testLogger())

	_, err := svc.RepairQuizOptions(context.Background(), 99)
	require.ErrorIs(t, err, ErrQuizNotFound)
}
