package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/models"
)

// QuizRepository defines persistence operations for quizzes and their
// question bank.
type QuizRepository interface {
	List(ctx context.Context) ([]models.Quiz, error)
	ListByCreator(ctx context.Context, teacherID uint) ([]models.Quiz, error)
	GetByID(ctx context.Context, id uint) (models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	QuestionsForQuiz(ctx context.Context, quizID uint) ([]models.QuizQuestion, error)
	CreateQuestion(ctx context.Context, question *models.QuizQuestion) error
	CreateOption(ctx context.Context, option *models.QuizOption) error
	SaveOption(ctx context.Context, option *models.QuizOption) error
}

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository instantiates the repository.
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Quiz{}).
		Preload("AssignedStudents")
}

func (r *quizRepository) List(ctx context.Context) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.baseQuery(ctx).Order("create_date DESC, id DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) ListByCreator(ctx context.Context, teacherID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.baseQuery(ctx).
		Where("created_by_id = ?", teacherID).
		Order("create_date DESC, id DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) GetByID(ctx context.Context, id uint) (models.Quiz, error) {
	var quiz models.Quiz
	if err := r.baseQuery(ctx).First(&quiz, id).Error; err != nil {
		return models.Quiz{}, err
	}
	return quiz, nil
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

// QuestionsForQuiz returns the quiz's questions in authoring order with their
// options preloaded.
func (r *quizRepository) QuestionsForQuiz(ctx context.Context, quizID uint) ([]models.QuizQuestion, error) {
	var questions []models.QuizQuestion
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_options.id ASC")
		}).
		Where("quiz_id = ?", quizID).
		Order("order_index ASC, id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) CreateQuestion(ctx context.Context, question *models.QuizQuestion) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *quizRepository) CreateOption(ctx context.Context, option *models.QuizOption) error {
	return r.db.WithContext(ctx).Create(option).Error
}

func (r *quizRepository) SaveOption(ctx context.Context, option *models.QuizOption) error {
	return r.db.WithContext(ctx).Save(option).Error
}
