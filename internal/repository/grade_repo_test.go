package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/models"
)

func setupClassroomTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Assignment{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizOption{},
		&models.QuizSubmission{},
		&models.Submission{},
		&models.Grade{},
	))
	return db
}

func seedSubmission(t *testing.T, db *gorm.DB, assignmentID, studentID uint) models.Submission {
	t.Helper()
	submission := models.Submission{AssignmentID: assignmentID, StudentID: studentID, SubmitDate: time.Now()}
	require.NoError(t, db.Create(&submission).Error)
	return submission
}

func TestGradeRepositoryUpdateVersionedAppliesAndBumpsVersion(t *testing.T) {
	db := setupClassroomTestDB(t)
	repo := NewGradeRepository(db)

	require.NoError(t, db.Create(&models.Assignment{ID: 1, Title: "Essay", DueDate: time.Now().Add(time.Hour)}).Error)
	submission := seedSubmission(t, db, 1, 1)

	grade := models.Grade{SubmissionID: submission.ID, Status: models.GradePending}
	require.NoError(t, repo.Create(context.Background(), &grade))

	marks := 85.0
	gradedAt := time.Now()
	grade.Marks = &marks
	grade.Status = models.GradeGraded
	grade.GradedAt = &gradedAt
	require.NoError(t, repo.UpdateVersioned(context.Background(), &grade))
	require.Equal(t, 1, grade.Version)

	stored, err := repo.GetBySubmission(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Equal(t, models.GradeGraded, stored.Status)
	require.NotNil(t, stored.Marks)
	require.Equal(t, 85.0, *stored.Marks)
	require.Equal(t, 1, stored.Version)
}

func TestGradeRepositoryUpdateVersionedRejectsStaleWrite(t *testing.T) {
	db := setupClassroomTestDB(t)
	repo := NewGradeRepository(db)

	require.NoError(t, db.Create(&models.Assignment{ID: 1, Title: "Essay", DueDate: time.Now().Add(time.Hour)}).Error)
	submission := seedSubmission(t, db, 1, 1)

	grade := models.Grade{SubmissionID: submission.ID, Status: models.GradePending}
	require.NoError(t, repo.Create(context.Background(), &grade))

	first, err := repo.GetBySubmission(context.Background(), submission.ID)
	require.NoError(t, err)
	second, err := repo.GetBySubmission(context.Background(), submission.ID)
	require.NoError(t, err)

	first.Status = models.GradeGraded
	require.NoError(t, repo.UpdateVersioned(context.Background(), &first))

	second.Status = models.GradeRejected
	err = repo.UpdateVersioned(context.Background(), &second)
	require.ErrorIs(t, err, ErrStaleGrade)

	stored, err := repo.GetBySubmission(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Equal(t, models.GradeGraded, stored.Status)
}

func TestGradeRepositoryListPublishedByStudent(t *testing.T) {
	db := setupClassroomTestDB(t)
	repo := NewGradeRepository(db)

	require.NoError(t, db.Create(&models.Assignment{ID: 1, Title: "Essay", DueDate: time.Now().Add(time.Hour)}).Error)
	require.NoError(t, db.Create(&models.Assignment{ID: 2, Title: "Report", DueDate: time.Now().Add(time.Hour)}).Error)

	ownEssay := seedSubmission(t, db, 1, 1)
	ownReport := seedSubmission(t, db, 2, 1)
	someoneElse := seedSubmission(t, db, 1, 2)

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	marks := 70.0

	require.NoError(t, db.Create(&models.Grade{SubmissionID: ownEssay.ID, Marks: &marks, Status: models.GradePublished, PublishedAt: &older}).Error)
	require.NoError(t, db.Create(&models.Grade{SubmissionID: ownReport.ID, Marks: &marks, Status: models.GradePublished, PublishedAt: &newer}).Error)
	require.NoError(t, db.Create(&models.Grade{SubmissionID: someoneElse.ID, Marks: &marks, Status: models.GradePublished, PublishedAt: &newer}).Error)

	unpublished := seedSubmission(t, db, 2, 2)
	require.NoError(t, db.Create(&models.Grade{SubmissionID: unpublished.ID, Marks: &marks, Status: models.GradeGraded}).Error)

	grades, err := repo.ListPublishedByStudent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, grades, 2)
	require.Equal(t, ownReport.ID, grades[0].SubmissionID, "most recently published first")
	require.Equal(t, ownEssay.ID, grades[1].SubmissionID)
	require.Equal(t, "Report", grades[0].Submission.Assignment.Title)
}

func TestGradeRepositoryGetBySubmissionNotFound(t *testing.T) {
	db := setupClassroomTestDB(t)
	repo := NewGradeRepository(db)

	_, err := repo.GetBySubmission(context.Background(), 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
