package dto

import (
	"time"

	"github.com/arkamaulana/classroom-api/internal/models"
)

// SubmissionFilter narrows a submission listing. Nil fields match everything.
type SubmissionFilter struct {
	AssignmentID *uint `query:"assignment_id"`
	StudentID    *uint `query:"student_id"`
}

// AssignmentLite is the nested assignment summary inside a submission.
type AssignmentLite struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	DueDate    time.Time `json:"due_date"`
	TotalMarks float64   `json:"total_marks"`
}

// StudentLite is the nested student summary inside a submission.
type StudentLite struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID           uint            `json:"id"`
	AssignmentID uint            `json:"assignment_id"`
	StudentID    uint            `json:"student_id"`
	FilePath     string          `json:"file_path"`
	FileName     string          `json:"file_name"`
	FileType     string          `json:"file_type"`
	SubmitDate   time.Time       `json:"submit_date"`
	Assignment   *AssignmentLite `json:"assignment,omitempty"`
	Student      *StudentLite    `json:"student,omitempty"`
	Grade        *GradeResponse  `json:"grade,omitempty"`
}

// NewSubmissionResponse converts a Submission model into a DTO. Nested
// summaries are only populated when the relations were preloaded.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:           model.ID,
		AssignmentID: model.AssignmentID,
		StudentID:    model.StudentID,
		FilePath:     model.FilePath,
		FileName:     model.FileName,
		FileType:     model.FileType,
		SubmitDate:   model.SubmitDate,
	}

	if model.Assignment.ID != 0 {
		response.Assignment = &AssignmentLite{
			ID:         model.Assignment.ID,
			Title:      model.Assignment.Title,
			DueDate:    model.Assignment.DueDate,
			TotalMarks: model.Assignment.TotalMarks,
		}
	}

	if model.Student.ID != 0 {
		response.Student = &StudentLite{
			ID:    model.Student.ID,
			Name:  model.Student.Name,
			Email: model.Student.Email,
		}
	}

	if model.Grade != nil {
		grade := NewGradeResponse(*model.Grade)
		response.Grade = &grade
	}

	return response
}

// NewSubmissionResponseSlice maps a slice of submissions preserving order.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}
