package models

import "time"

// Submission represents a file submitted by a student for an assignment.
// The unique index on (assignment_id, student_id) is the store-level guarantee
// that at most one submission exists per pair, regardless of request races.
type Submission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssignmentID uint      `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"assignment_id"`
	StudentID    uint      `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"student_id"`
	FilePath     string    `gorm:"size:512" json:"file_path"`
	FileName     string    `gorm:"size:255" json:"file_name"`
	FileType     string    `gorm:"size:128" json:"file_type"`
	SubmitDate   time.Time `json:"submit_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Assignment Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Student    User       `gorm:"foreignKey:StudentID" json:"student"`
	Grade      *Grade     `json:"grade,omitempty"`
}
