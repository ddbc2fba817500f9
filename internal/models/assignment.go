package models

import "time"

// Assignment represents graded coursework published by a teacher.
type Assignment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	DueDate       time.Time  `gorm:"not null" json:"due_date"`
	TotalMarks    float64    `json:"total_marks"`
	FilePath      string     `gorm:"size:512" json:"file_path"`
	FileName      string     `gorm:"size:255" json:"file_name"`
	FileType      string     `gorm:"size:128" json:"file_type"`
	ClassSemester string     `gorm:"size:128" json:"class_semester"`
	AccessType    AccessType `gorm:"size:32;not null" json:"access_type"`
	CreatedByID   uint       `json:"created_by_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	CreatedBy        User         `gorm:"foreignKey:CreatedByID" json:"created_by"`
	AssignedStudents []User       `gorm:"many2many:assignment_assigned_students" json:"assigned_students"`
	Submissions      []Submission `json:"submissions,omitempty"`
}

// Access returns the assignment's visibility descriptor.
func (a Assignment) Access() ContentAccess {
	return ContentAccess{
		Type:               a.AccessType,
		ClassSemester:      a.ClassSemester,
		AssignedStudentIDs: assignedIDs(a.AssignedStudents),
	}
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
