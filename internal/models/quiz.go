package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionType is the closed set of supported quiz question kinds.
type QuestionType string

const (
	// QuestionMCQ is a multiple-choice question graded against the correct option text.
	QuestionMCQ QuestionType = "MCQ"
	// QuestionTrueFalse is a boolean question graded against the correct option.
	QuestionTrueFalse QuestionType = "TRUE_FALSE"
	// QuestionShortAnswer is a free-text question graded by normalised equality.
	QuestionShortAnswer QuestionType = "SHORT_ANSWER"
)

// QuizVisibility controls whether students can see a quiz at all.
type QuizVisibility string

const (
	// QuizDraft keeps the quiz hidden from students while it is authored.
	QuizDraft QuizVisibility = "DRAFT"
	// QuizPublished makes the quiz subject to the normal access policy.
	QuizPublished QuizVisibility = "PUBLISHED"
)

// Quiz is an auto-graded assessment scoped to a class/semester or a roster.
type Quiz struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Title            string         `gorm:"size:255;not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	Instructions     string         `gorm:"type:text" json:"instructions"`
	Subject          string         `gorm:"size:128" json:"subject"`
	ClassSemester    string         `gorm:"size:128" json:"class_semester"`
	AccessType       AccessType     `gorm:"size:32;not null" json:"access_type"`
	TotalMarks       *float64       `json:"total_marks"`
	PassingMarks     float64        `json:"passing_marks"`
	Difficulty       string         `gorm:"size:32" json:"difficulty"`
	TimeLimitMinutes int            `json:"time_limit_minutes"`
	MaxAttempts      int            `gorm:"default:1" json:"max_attempts"`
	ShuffleQuestions bool           `gorm:"default:false" json:"shuffle_questions"`
	ShuffleOptions   bool           `gorm:"default:false" json:"shuffle_options"`
	Visibility       QuizVisibility `gorm:"size:32;default:PUBLISHED" json:"visibility"`
	ShowResults      bool           `gorm:"default:true" json:"show_results"`
	CreatedByID      uint           `json:"created_by_id"`
	CreateDate       time.Time      `json:"create_date"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	CreatedBy        User           `gorm:"foreignKey:CreatedByID" json:"created_by"`
	AssignedStudents []User         `gorm:"many2many:quiz_assigned_students" json:"assigned_students"`
	Questions        []QuizQuestion `json:"questions,omitempty"`
}

// Access returns the quiz's visibility descriptor.
func (q Quiz) Access() ContentAccess {
	return ContentAccess{
		Type:               q.AccessType,
		ClassSemester:      q.ClassSemester,
		AssignedStudentIDs: assignedIDs(q.AssignedStudents),
	}
}

// IsDraft reports whether the quiz is still hidden from students.
func (q Quiz) IsDraft() bool {
	return q.Visibility == QuizDraft
}

// QuizQuestion is a single question within a quiz. Options only apply to MCQ
// and TRUE_FALSE questions; at most one option should be marked correct.
type QuizQuestion struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	QuizID            uint         `gorm:"not null;index" json:"quiz_id"`
	QuestionText      string       `gorm:"type:text;not null" json:"question_text"`
	QuestionType      QuestionType `gorm:"size:32;not null" json:"question_type"`
	Marks             float64      `gorm:"not null" json:"marks"`
	OrderIndex        int          `gorm:"not null" json:"order_index"`
	CorrectAnswerText *string      `gorm:"size:512" json:"correct_answer_text"`
	CorrectAnswer     *string      `gorm:"size:512" json:"correct_answer"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`

	Options []QuizOption `json:"options,omitempty"`
}

// CorrectOption returns the option marked correct, or nil when none is.
func (q QuizQuestion) CorrectOption() *QuizOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// QuizOption is one selectable answer for an MCQ or TRUE_FALSE question.
type QuizOption struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	QuizQuestionID uint      `gorm:"not null;index" json:"quiz_question_id"`
	OptionText     string    `gorm:"size:512;not null" json:"option_text"`
	IsCorrect      bool      `gorm:"default:false" json:"is_correct"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// QuizSubmission records one scored quiz attempt. The raw answers are stored
// as JSON keyed by the question id; the row is immutable once written.
type QuizSubmission struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	QuizID     uint           `gorm:"not null;index" json:"quiz_id"`
	StudentID  uint           `gorm:"not null;index" json:"student_id"`
	Answers    datatypes.JSON `json:"answers"`
	Score      float64        `json:"score"`
	SubmitDate time.Time      `json:"submit_date"`
	CreatedAt  time.Time      `json:"created_at"`

	Quiz    Quiz `gorm:"foreignKey:QuizID" json:"quiz"`
	Student User `gorm:"foreignKey:StudentID" json:"student"`
}
