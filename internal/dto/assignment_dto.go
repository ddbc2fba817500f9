package dto

import (
	"time"

	"github.com/arkamaulana/classroom-api/internal/models"
)

// AssignmentCreateRequest describes the multipart payload for publishing an
// assignment. DueDate is RFC3339.
type AssignmentCreateRequest struct {
	Title              string  `form:"title" validate:"required,min=3"`
	Description        string  `form:"description"`
	DueDate            string  `form:"due_date" validate:"required"`
	TotalMarks         float64 `form:"total_marks" validate:"required,gt=0"`
	ClassSemester      string  `form:"class_semester" validate:"required"`
	AccessType         string  `form:"access_type" validate:"required,oneof=ALL_CLASS SELECTED_STUDENTS"`
	AssignedStudentIDs []uint  `form:"assigned_student_ids" validate:"required_if=AccessType SELECTED_STUDENTS"`
}

// AssignmentResponse is returned to API clients when viewing assignments.
type AssignmentResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DueDate       time.Time `json:"due_date"`
	TotalMarks    float64   `json:"total_marks"`
	FilePath      string    `json:"file_path"`
	FileName      string    `json:"file_name"`
	FileType      string    `json:"file_type"`
	ClassSemester string    `json:"class_semester"`
	AccessType    string    `json:"access_type"`
	CreatedByID   uint      `json:"created_by_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAssignmentResponse converts an Assignment model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:            model.ID,
		Title:         model.Title,
		Description:   model.Description,
		DueDate:       model.DueDate,
		TotalMarks:    model.TotalMarks,
		FilePath:      model.FilePath,
		FileName:      model.FileName,
		FileType:      model.FileType,
		ClassSemester: model.ClassSemester,
		AccessType:    string(model.AccessType),
		CreatedByID:   model.CreatedByID,
		CreatedAt:     model.CreatedAt,
	}
}

// NewAssignmentResponseSlice maps a slice of assignments preserving order.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}
	return responses
}
