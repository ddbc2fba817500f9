package dto

import (
	"time"

	"github.com/arkamaulana/classroom-api/internal/models"
)

// Grade actions a teacher can apply to a submission.
const (
	GradeActionSave    = "SAVE"
	GradeActionPublish = "PUBLISH"
	GradeActionReject  = "REJECT"
)

// RubricScore is one criterion score inside a rubric-based grade.
type RubricScore struct {
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score" validate:"gte=0"`
}

// GradeRequest carries a grading action. When RubricScores is set the marks
// are the sum of its entries and Marks is ignored.
type GradeRequest struct {
	Marks        *float64      `json:"marks" validate:"omitempty,gte=0"`
	RubricScores []RubricScore `json:"rubric_scores" validate:"omitempty,dive"`
	Feedback     string        `json:"feedback"`
	Action       string        `json:"action" validate:"required,oneof=SAVE PUBLISH REJECT save publish reject"`
}

// GradeResponse is returned to API clients when viewing grades.
type GradeResponse struct {
	ID           uint       `json:"id"`
	SubmissionID uint       `json:"submission_id"`
	Marks        *float64   `json:"marks"`
	Feedback     string     `json:"feedback"`
	Status       string     `json:"status"`
	GradedAt     *time.Time `json:"graded_at"`
	PublishedAt  *time.Time `json:"published_at"`
}

// NewGradeResponse converts a Grade model into a DTO.
func NewGradeResponse(model models.Grade) GradeResponse {
	return GradeResponse{
		ID:           model.ID,
		SubmissionID: model.SubmissionID,
		Marks:        model.Marks,
		Feedback:     model.Feedback,
		Status:       string(model.Status),
		GradedAt:     model.GradedAt,
		PublishedAt:  model.PublishedAt,
	}
}

// NewGradeResponseSlice maps a slice of grades preserving order.
func NewGradeResponseSlice(grades []models.Grade) []GradeResponse {
	responses := make([]GradeResponse, 0, len(grades))
	for _, grade := range grades {
		responses = append(responses, NewGradeResponse(grade))
	}
	return responses
}
