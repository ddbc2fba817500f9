package models

import "time"

// Note is study material uploaded by a teacher.
type Note struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	FilePath      string     `gorm:"size:512" json:"file_path"`
	FileName      string     `gorm:"size:255" json:"file_name"`
	FileType      string     `gorm:"size:128" json:"file_type"`
	Subject       string     `gorm:"size:128" json:"subject"`
	ClassSemester string     `gorm:"size:128" json:"class_semester"`
	AccessType    AccessType `gorm:"size:32;not null" json:"access_type"`
	DownloadCount int        `gorm:"default:0" json:"download_count"`
	UploadedByID  uint       `json:"uploaded_by_id"`
	UploadDate    time.Time  `json:"upload_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	UploadedBy       User   `gorm:"foreignKey:UploadedByID" json:"uploaded_by"`
	AssignedStudents []User `gorm:"many2many:note_assigned_students" json:"assigned_students"`
}

// Access returns the note's visibility descriptor.
func (n Note) Access() ContentAccess {
	return ContentAccess{
		Type:               n.AccessType,
		ClassSemester:      n.ClassSemester,
		AssignedStudentIDs: assignedIDs(n.AssignedStudents),
	}
}
