package dto

import (
	"time"

	"github.com/arkamaulana/classroom-api/internal/models"
)

// NoteCreateRequest describes the multipart payload for a note upload.
type NoteCreateRequest struct {
	Title              string `form:"title" validate:"required,min=3"`
	Description        string `form:"description"`
	Subject            string `form:"subject" validate:"required"`
	ClassSemester      string `form:"class_semester" validate:"required"`
	AccessType         string `form:"access_type" validate:"required,oneof=ALL_CLASS SELECTED_STUDENTS"`
	AssignedStudentIDs []uint `form:"assigned_student_ids" validate:"required_if=AccessType SELECTED_STUDENTS"`
}

// NoteResponse is returned to API clients when viewing notes.
type NoteResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FilePath      string    `json:"file_path"`
	FileName      string    `json:"file_name"`
	FileType      string    `json:"file_type"`
	Subject       string    `json:"subject"`
	ClassSemester string    `json:"class_semester"`
	AccessType    string    `json:"access_type"`
	DownloadCount int       `json:"download_count"`
	UploadDate    time.Time `json:"upload_date"`
}

// NewNoteResponse converts a Note model into a DTO.
func NewNoteResponse(model models.Note) NoteResponse {
	return NoteResponse{
		ID:            model.ID,
		Title:         model.Title,
		Description:   model.Description,
		FilePath:      model.FilePath,
		FileName:      model.FileName,
		FileType:      model.FileType,
		Subject:       model.Subject,
		ClassSemester: model.ClassSemester,
		AccessType:    string(model.AccessType),
		DownloadCount: model.DownloadCount,
		UploadDate:    model.UploadDate,
	}
}

// NewNoteResponseSlice maps a slice of notes preserving order.
func NewNoteResponseSlice(notes []models.Note) []NoteResponse {
	responses := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, NewNoteResponse(note))
	}
	return responses
}
