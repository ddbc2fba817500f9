package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/models"
)

// NoteRepository defines data operations for study notes.
type NoteRepository interface {
	List(ctx context.Context) ([]models.Note, error)
	ListByUploader(ctx context.Context, teacherID uint) ([]models.Note, error)
	GetByID(ctx context.Context, id uint) (models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	IncrementDownloadCount(ctx context.Context, id uint) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository instantiates the repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Note{}).
		Preload("AssignedStudents")
}

func (r *noteRepository) List(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := r.baseQuery(ctx).Order("upload_date DESC, id DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) ListByUploader(ctx context.Context, teacherID uint) ([]models.Note, error) {
	var notes []models.Note
	if err := r.baseQuery(ctx).
		Where("uploaded_by_id = ?", teacherID).
		Order("upload_date DESC, id DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uint) (models.Note, error) {
	var note models.Note
	if err := r.baseQuery(ctx).First(&note, id).Error; err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) IncrementDownloadCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Note{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
}
