package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/config"
	"github.com/arkamaulana/classroom-api/internal/dto"
	"github.com/arkamaulana/classroom-api/internal/handler"
	"github.com/arkamaulana/classroom-api/internal/models"
	"github.com/arkamaulana/classroom-api/internal/repository"
	"github.com/arkamaulana/classroom-api/internal/router"
	"github.com/arkamaulana/classroom-api/internal/service"
)

type handlerTestUploader struct{}

func (u *handlerTestUploader) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	return "https://files.test/" + name, nil
}

func setupSubmissionApp(t *testing.T, userID uint, role models.Role) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := openHandlerTestDB(t)
	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())
	uploader := &handlerTestUploader{}

	userRepo := repository.NewUserRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	gradeRepo := repository.NewGradeRepository(db)

	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, uploader, logger)
	gradeService := service.NewGradeService(gradeRepo, submissionRepo, validate, nil, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, userRepo, logger),
		GradeHandler:      handler.NewGradeHandler(gradeService, userRepo, logger),
		JWTMiddleware:     testIdentity(userID, role),
	})

	return app, db
}

func seedHandlerAssignment(t *testing.T, db *gorm.DB, teacherID uint) models.Assignment {
	t.Helper()
	assignment := models.Assignment{
		Title:         "Lab Report",
		Description:   "Submit the lab report",
		DueDate:       time.Now().Add(48 * time.Hour),
		TotalMarks:    100,
		ClassSemester: "XI-RPL-1",
		AccessType:    models.AccessAllClass,
		CreatedByID:   teacherID,
	}
	require.NoError(t, db.Create(&assignment).Error)
	return assignment
}

func multipartFileBody(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSubmissionHandlerSubmitAndList(t *testing.T) {
	app, db := setupSubmissionApp(t, 1, models.RoleStudent)
	seedHandlerStudent(t, db, 1, "XI-RPL-1")
	require.NoError(t, db.Create(&models.User{ID: 2, Name: "Pak Budi", Email: "budi@example.com", Role: models.RoleTeacher}).Error)
	assignment := seedHandlerAssignment(t, db, 2)

	body, contentType := multipartFileBody(t, "report.pdf", []byte("%PDF-1.4 report body"))
	req := httptest.NewRequest("POST", "/api/v1/student/submissions/assignments/1", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Success bool                   `json:"success"`
		Data    dto.SubmissionResponse `json:"data"`
	}
	decodeBody(t, resp, &created)
	require.True(t, created.Success)
	require.NotZero(t, created.Data.ID)
	require.Equal(t, "report.pdf", created.Data.FileName)
	require.Equal(t, "https://files.test/report.pdf", created.Data.FilePath)
	require.Equal(t, assignment.ID, created.Data.AssignmentID)

	// Second upload for the same assignment conflicts.
	body, contentType = multipartFileBody(t, "report-v2.pdf", []byte("%PDF-1.4 second"))
	req = httptest.NewRequest("POST", "/api/v1/student/submissions/assignments/1", body)
	req.Header.Set("Content-Type", contentType)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/student/submissions", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listed struct {
		Success bool                     `json:"success"`
		Data    []dto.SubmissionResponse `json:"data"`
	}
	decodeBody(t, resp, &listed)
	require.Len(t, listed.Data, 1)
}

func TestSubmissionHandlerRejectsUnsupportedFile(t *testing.T) {
	app, db := setupSubmissionApp(t, 1, models.RoleStudent)
	seedHandlerStudent(t, db, 1, "XI-RPL-1")
	seedHandlerAssignment(t, db, 2)

	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	body, contentType := multipartFileBody(t, "image.png", pngHeader)
	req := httptest.NewRequest("POST", "/api/v1/student/submissions/assignments/1", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGradeHandlerPublishFlow(t *testing.T) {
	app, db := setupSubmissionApp(t, 2, models.RoleTeacher)
	cohort := "XI-RPL-1"
	require.NoError(t, db.Create(&models.User{ID: 1, Name: "Sari", Email: "sari@example.com", Role: models.RoleStudent, ClassSemester: &cohort}).Error)
	require.NoError(t, db.Create(&models.User{ID: 2, Name: "Pak Budi", Email: "budi@example.com", Role: models.RoleTeacher}).Error)
	assignment := seedHandlerAssignment(t, db, 2)

	submission := models.Submission{AssignmentID: assignment.ID, StudentID: 1, FileName: "report.pdf", SubmitDate: time.Now()}
	require.NoError(t, db.Create(&submission).Error)

	payload, err := json.Marshal(dto.GradeRequest{
		Marks:    floatPointer(88),
		Feedback: "Solid work",
		Action:   dto.GradeActionPublish,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/v1/teacher/grades/submissions/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var graded struct {
		Success bool              `json:"success"`
		Data    dto.GradeResponse `json:"data"`
	}
	decodeBody(t, resp, &graded)
	require.True(t, graded.Success)
	require.Equal(t, string(models.GradePublished), graded.Data.Status)
	require.NotNil(t, graded.Data.Marks)
	require.Equal(t, 88.0, *graded.Data.Marks)

	// Published grades are final.
	req = httptest.NewRequest("PUT", "/api/v1/teacher/grades/submissions/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestGradeHandlerRejectsForeignAssignment(t *testing.T) {
	app, db := setupSubmissionApp(t, 3, models.RoleTeacher)
	cohort := "XI-RPL-1"
	require.NoError(t, db.Create(&models.User{ID: 1, Name: "Sari", Email: "sari@example.com", Role: models.RoleStudent, ClassSemester: &cohort}).Error)
	require.NoError(t, db.Create(&models.User{ID: 2, Name: "Pak Budi", Email: "budi@example.com", Role: models.RoleTeacher}).Error)
	require.NoError(t, db.Create(&models.User{ID: 3, Name: "Bu Rani", Email: "rani@example.com", Role: models.RoleTeacher}).Error)
	assignment := seedHandlerAssignment(t, db, 2)

	submission := models.Submission{AssignmentID: assignment.ID, StudentID: 1, FileName: "report.pdf", SubmitDate: time.Now()}
	require.NoError(t, db.Create(&submission).Error)

	payload, err := json.Marshal(dto.GradeRequest{Marks: floatPointer(50), Action: dto.GradeActionSave})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/v1/teacher/grades/submissions/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func floatPointer(v float64) *float64 {
	return &v
}
