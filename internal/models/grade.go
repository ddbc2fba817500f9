package models

import "time"

// GradeStatus is the lifecycle stage of a grade.
type GradeStatus string

const (
	// GradePending means a grade record exists but no marks have been saved yet.
	GradePending GradeStatus = "PENDING"
	// GradeGraded means the teacher saved marks without publishing them.
	GradeGraded GradeStatus = "GRADED"
	// GradePublished means the grade is visible to the student and final.
	GradePublished GradeStatus = "PUBLISHED"
	// GradeRejected means the teacher rejected the submission with a reason.
	GradeRejected GradeStatus = "REJECTED"
)

// Grade is the one-to-one grading record for an assignment submission.
// Version implements optimistic locking: every state transition is a
// compare-and-set against the version read, so two concurrent teacher actions
// cannot both apply.
type Grade struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	SubmissionID uint        `gorm:"not null;uniqueIndex" json:"submission_id"`
	Marks        *float64    `json:"marks"`
	Feedback     string      `gorm:"type:text" json:"feedback"`
	Status       GradeStatus `gorm:"size:32;not null;default:PENDING" json:"status"`
	GradedAt     *time.Time  `json:"graded_at"`
	PublishedAt  *time.Time  `json:"published_at"`
	Version      int         `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Submission Submission `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"submission"`
}

// IsPublished reports whether the grade has been made final.
func (g Grade) IsPublished() bool {
	return g.Status == GradePublished
}
