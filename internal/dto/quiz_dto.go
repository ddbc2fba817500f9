package dto

import (
	"time"

	"github.com/arkamaulana/classroom-api/internal/models"
)

// QuizSummaryResponse is the listing view of a quiz. It carries enough for a
// student to decide whether to attempt it, and nothing about its contents.
type QuizSummaryResponse struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Subject          string    `json:"subject"`
	ClassSemester    string    `json:"class_semester"`
	Difficulty       string    `json:"difficulty"`
	TotalMarks       *float64  `json:"total_marks"`
	PassingMarks     float64   `json:"passing_marks"`
	TimeLimitMinutes int       `json:"time_limit_minutes"`
	MaxAttempts      int       `json:"max_attempts"`
	QuestionCount    int       `json:"question_count"`
	CreateDate       time.Time `json:"create_date"`
}

// NewQuizSummaryResponse converts a Quiz model into its listing DTO.
func NewQuizSummaryResponse(model models.Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:               model.ID,
		Title:            model.Title,
		Description:      model.Description,
		Subject:          model.Subject,
		ClassSemester:    model.ClassSemester,
		Difficulty:       model.Difficulty,
		TotalMarks:       model.TotalMarks,
		PassingMarks:     model.PassingMarks,
		TimeLimitMinutes: model.TimeLimitMinutes,
		MaxAttempts:      model.MaxAttempts,
		QuestionCount:    len(model.Questions),
		CreateDate:       model.CreateDate,
	}
}

// NewQuizSummaryResponseSlice maps a slice of quizzes preserving order.
func NewQuizSummaryResponseSlice(quizzes []models.Quiz) []QuizSummaryResponse {
	responses := make([]QuizSummaryResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, NewQuizSummaryResponse(quiz))
	}
	return responses
}

// QuizOptionResponse is a selectable answer as shown to a student. The correct
// flag is deliberately absent.
type QuizOptionResponse struct {
	ID         uint   `json:"id"`
	OptionText string `json:"option_text"`
}

// QuizQuestionResponse is a question as shown to a student taking the quiz.
type QuizQuestionResponse struct {
	ID           uint                 `json:"id"`
	QuestionText string               `json:"question_text"`
	QuestionType string               `json:"question_type"`
	Marks        float64              `json:"marks"`
	OrderIndex   int                  `json:"order_index"`
	Options      []QuizOptionResponse `json:"options"`
}

// QuizDetailsResponse is the full quiz view handed to a student before an
// attempt: metadata plus the question bank, stripped of every answer key.
type QuizDetailsResponse struct {
	QuizSummaryResponse
	Instructions string                 `json:"instructions"`
	Questions    []QuizQuestionResponse `json:"questions"`
}

// NewQuizDetailsResponse builds the student-facing detail view. Correct answer
// fields never cross this boundary.
func NewQuizDetailsResponse(quiz models.Quiz, questions []models.QuizQuestion) QuizDetailsResponse {
	response := QuizDetailsResponse{
		QuizSummaryResponse: NewQuizSummaryResponse(quiz),
		Instructions:        quiz.Instructions,
		Questions:           make([]QuizQuestionResponse, 0, len(questions)),
	}
	response.QuestionCount = len(questions)

	for _, question := range questions {
		options := make([]QuizOptionResponse, 0, len(question.Options))
		for _, option := range question.Options {
			options = append(options, QuizOptionResponse{
				ID:         option.ID,
				OptionText: option.OptionText,
			})
		}
		response.Questions = append(response.Questions, QuizQuestionResponse{
			ID:           question.ID,
			QuestionText: question.QuestionText,
			QuestionType: string(question.QuestionType),
			Marks:        question.Marks,
			OrderIndex:   question.OrderIndex,
			Options:      options,
		})
	}

	return response
}

// QuizSubmitRequest carries one quiz attempt. Answers are keyed by the
// question id rendered as a decimal string.
type QuizSubmitRequest struct {
	Answers map[string]interface{} `json:"answers" validate:"required"`
}

// QuizResultResponse is the scored outcome returned right after an attempt.
type QuizResultResponse struct {
	Score          float64 `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Percentage     int     `json:"percentage"`
	Status         string  `json:"status"`
}
