package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/models"
)

// ErrStaleGrade indicates an optimistic-lock conflict: the grade was modified
// between the read and the write.
var ErrStaleGrade = errors.New("grade version conflict")

// GradeRepository defines data operations for grade records.
type GradeRepository interface {
	GetBySubmission(ctx context.Context, submissionID uint) (models.Grade, error)
	ListPublishedByStudent(ctx context.Context, studentID uint) ([]models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	UpdateVersioned(ctx context.Context, grade *models.Grade) error
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository instantiates the repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) GetBySubmission(ctx context.Context, submissionID uint) (models.Grade, error) {
	var grade models.Grade
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		First(&grade).Error; err != nil {
		return models.Grade{}, err
	}
	return grade, nil
}

func (r *gradeRepository) ListPublishedByStudent(ctx context.Context, studentID uint) ([]models.Grade, error) {
	var grades []models.Grade
	if err := r.db.WithContext(ctx).Model(&models.Grade{}).
		Preload("Submission").
		Preload("Submission.Assignment").
		Joins("JOIN submissions ON submissions.id = grades.submission_id").
		Where("submissions.student_id = ?", studentID).
		Where("grades.status = ?", models.GradePublished).
		Order("grades.published_at DESC").
		Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

// UpdateVersioned applies the grade as a compare-and-set against the version
// the caller read. The update only lands when the stored version still
// matches; a concurrent transition makes it affect zero rows.
func (r *gradeRepository) UpdateVersioned(ctx context.Context, grade *models.Grade) error {
	readVersion := grade.Version
	grade.Version++

	result := r.db.WithContext(ctx).Model(&models.Grade{}).
		Where("id = ?", grade.ID).
		Where("version = ?", readVersion).
		Updates(map[string]interface{}{
			"marks":        grade.Marks,
			"feedback":     grade.Feedback,
			"status":       grade.Status,
			"graded_at":    grade.GradedAt,
			"published_at": grade.PublishedAt,
			"version":      grade.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleGrade
	}
	return nil
}
