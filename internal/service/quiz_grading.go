package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arkamaulana/classroom-api/internal/models"
)

// QuizStatus is the pass/fail verdict of a quiz attempt.
type QuizStatus string

const (
	// QuizPassed means the rounded percentage reached the quiz's passing marks.
	QuizPassed QuizStatus = "PASSED"
	// QuizFailed means it did not.
	QuizFailed QuizStatus = "FAILED"
)

// QuizEvaluation is the outcome of scoring one quiz attempt.
//
// CorrectAnswers is round(Score): the source system displays marks earned as a
// count of correct answers, which only lines up when every question is worth
// one mark. Kept as-is for compatibility; Score carries the true weighted
// total.
type QuizEvaluation struct {
	Score          float64
	TotalQuestions int
	CorrectAnswers int
	Percentage     int
	Status         QuizStatus
}

// EvaluateQuiz scores a raw answer map against the quiz's question bank and
// derives the pass/fail verdict. It is pure and deterministic: it never
// mutates its inputs, never errors, and a malformed answer only zeroes the
// question it belongs to.
func EvaluateQuiz(quiz models.Quiz, questions []models.QuizQuestion, answers map[string]interface{}) QuizEvaluation {
	var score float64

	for _, question := range questions {
		raw, answered := answers[questionKey(question.ID)]
		if !answered {
			continue
		}
		if questionCorrect(question, raw) {
			score += question.Marks
		}
	}

	if math.IsNaN(score) || math.IsInf(score, 0) {
		score = 0
	}

	var totalMarks float64
	if quiz.TotalMarks != nil {
		totalMarks = *quiz.TotalMarks
	}

	percentage := 0.0
	if totalMarks > 0 {
		percentage = score / totalMarks * 100
	}
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) {
		percentage = 0
	}
	rounded := int(math.Round(percentage))

	status := QuizFailed
	if float64(rounded) >= quiz.PassingMarks {
		status = QuizPassed
	}

	return QuizEvaluation{
		Score:          score,
		TotalQuestions: len(questions),
		CorrectAnswers: int(math.Round(score)),
		Percentage:     rounded,
		Status:         status,
	}
}

func questionCorrect(question models.QuizQuestion, raw interface{}) bool {
	switch question.QuestionType {
	case models.QuestionMCQ:
		return mcqCorrect(question, raw)
	case models.QuestionTrueFalse:
		return trueFalseCorrect(question, raw)
	case models.QuestionShortAnswer:
		return shortAnswerCorrect(question, raw)
	default:
		return false
	}
}

func mcqCorrect(question models.QuizQuestion, raw interface{}) bool {
	answer, ok := raw.(string)
	if !ok || question.CorrectAnswerText == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(*question.CorrectAnswerText))
}

func trueFalseCorrect(question models.QuizQuestion, raw interface{}) bool {
	answer, ok := parseBoolAnswer(raw)
	if !ok {
		return false
	}

	correct := question.CorrectOption()
	if correct == nil {
		// No option marked correct: the question cannot be scored correct.
		return false
	}

	want := strings.EqualFold(correct.OptionText, "True") || strings.EqualFold(correct.OptionText, "Yes")
	return answer == want
}

func parseBoolAnswer(raw interface{}) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		// Any string parses; only "true" maps to true. Mirrors how the
		// submissions were historically interpreted, so "yes" counts as false.
		return strings.EqualFold(strings.TrimSpace(v), "true"), true
	default:
		return false, false
	}
}

func shortAnswerCorrect(question models.QuizQuestion, raw interface{}) bool {
	if raw == nil || question.CorrectAnswer == nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(stringifyAnswer(raw)))
	want := strings.ToLower(strings.TrimSpace(*question.CorrectAnswer))
	return answer == want
}

func stringifyAnswer(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		// JSON numbers decode as float64; keep integral values compact.
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func questionKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
