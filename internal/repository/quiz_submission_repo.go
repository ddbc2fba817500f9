package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/models"
)

// QuizSubmissionRepository records scored quiz attempts.
type QuizSubmissionRepository interface {
	Create(ctx context.Context, submission *models.QuizSubmission) error
	CountByQuizAndStudent(ctx context.Context, quizID, studentID uint) (int64, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.QuizSubmission, error)
}

type quizSubmissionRepository struct {
	db *gorm.DB
}

// NewQuizSubmissionRepository instantiates the repository.
func NewQuizSubmissionRepository(db *gorm.DB) QuizSubmissionRepository {
	return &quizSubmissionRepository{db: db}
}

func (r *quizSubmissionRepository) Create(ctx context.Context, submission *models.QuizSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *quizSubmissionRepository) CountByQuizAndStudent(ctx context.Context, quizID, studentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.QuizSubmission{}).
		Where("quiz_id = ?", quizID).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}

func (r *quizSubmissionRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.QuizSubmission, error) {
	var submissions []models.QuizSubmission
	if err := r.db.WithContext(ctx).Model(&models.QuizSubmission{}).
		Where("student_id = ?", studentID).
		Order("submit_date DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
