package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/dto"
	"github.com/arkamaulana/classroom-api/internal/models"
)

type memoryAssignmentRepo struct {
	assignments map[uint]models.Assignment
	nextID      uint
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{
		assignments: make(map[uint]models.Assignment),
		nextID:      1,
	}
}

func (m *memoryAssignmentRepo) List(ctx context.Context) ([]models.Assignment, error) {
	results := make([]models.Assignment, 0, len(m.assignments))
	for id := uint(1); id < m.nextID; id++ {
		if assignment, ok := m.assignments[id]; ok {
			results = append(results, assignment)
		}
	}
	return results, nil
}

func (m *memoryAssignmentRepo) ListByCreator(ctx context.Context, teacherID uint) ([]models.Assignment, error) {
	results := make([]models.Assignment, 0)
	for _, assignment := range m.assignments {
		if assignment.CreatedByID == teacherID {
			results = append(results, assignment)
		}
	}
	return results, nil
}

func (m *memoryAssignmentRepo) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (m *memoryAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == 0 {
		assignment.ID = m.nextID
	}
	if assignment.ID >= m.nextID {
		m.nextID = assignment.ID + 1
	}
	m.assignments[assignment.ID] = *assignment
	return nil
}

type memoryUserRepo struct {
	users map[uint]models.User
}

func newMemoryUserRepo(users ...models.User) *memoryUserRepo {
	repo := &memoryUserRepo{users: make(map[uint]models.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (m *memoryUserRepo) GetByID(ctx context.Context, id uint) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) ListStudents(ctx context.Context) ([]models.User, error) {
	results := make([]models.User, 0)
	for _, user := range m.users {
		if user.IsStudent() {
			results = append(results, user)
		}
	}
	return results, nil
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = uint(len(m.users) + 1)
	}
	m.users[user.ID] = *user
	return nil
}

type fakeUploader struct {
	uploads []string
	err     error
}

func (f *fakeUploader) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, name)
	return "https://cdn.example.com/" + name, nil
}

func classAssignment(id uint, classSemester string, due time.Time) models.Assignment {
	return models.Assignment{
		ID:            id,
		Title:         "Essay",
		DueDate:       due,
		TotalMarks:    100,
		ClassSemester: classSemester,
		AccessType:    models.AccessAllClass,
		CreatedByID:   2,
	}
}

func newAssignmentFixture(users ...models.User) (*memoryAssignmentRepo, AssignmentService) {
	repo := newMemoryAssignmentRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAssignmentService(repo, newMemoryUserRepo(users...), validate, &fakeUploader{}, testLogger())
	return repo, svc
}

func TestAssignmentListVisibleFiltersByCohort(t *testing.T) {
	repo, svc := newAssignmentFixture()
	due := time.Now().Add(48 * time.Hour)
	require.NoError(t, repo.Create(context.Background(), &models.Assignment{Title: "A", DueDate: due, ClassSemester: "XI-RPL-1", AccessType: models.AccessAllClass}))
	require.NoError(t, repo.Create(context.Background(), &models.Assignment{Title: "B", DueDate: due, ClassSemester: "XI-RPL-2", AccessType: models.AccessAllClass}))

	visible, err := svc.ListVisible(context.Background(), student(1, "XI-RPL-1"))
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, "A", visible[0].Title)
}

func TestAssignmentGetInvisibleReportedAbsent(t *testing.T) {
	repo, svc := newAssignmentFixture()
	assignment := classAssignment(1, "XI-RPL-1", time.Now().Add(time.Hour))
	assignment.AccessType = models.AccessSelectedStudents
	require.NoError(t, repo.Create(context.Background(), &assignment))

	_, err := svc.Get(context.Background(), 1, student(1, "XI-RPL-1"))
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestAssignmentCreateResolvesRosterAndSkipsMissing(t *testing.T) {
	repo, svc := newAssignmentFixture(
		models.User{ID: 4, Role: models.RoleStudent, Name: "Sari"},
	)

	response, err := svc.Create(context.Background(), teacher(2), dto.AssignmentCreateRequest{
		Title:              "Term paper",
		Description:        "<script>alert(1)</script>Write about graphs",
		DueDate:            time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		TotalMarks:         100,
		ClassSemester:      "XI-RPL-1",
		AccessType:         string(models.AccessSelectedStudents),
		AssignedStudentIDs: []uint{4, 99},
	}, nil)
	require.NoError(t, err)
	require.NotContains(t, response.Description, "<script>")

	stored, err := repo.GetByID(context.Background(), response.ID)
	require.NoError(t, err)
	require.Len(t, stored.AssignedStudents, 1)
	require.Equal(t, uint(4), stored.AssignedStudents[0].ID)
}

func TestAssignmentCreateRejectsPastDueDate(t *testing.T) {
	_, svc := newAssignmentFixture()

	_, err := svc.Create(context.Background(), teacher(2), dto.AssignmentCreateRequest{
		Title:         "Late",
		DueDate:       time.Now().Add(-time.Hour).Format(time.RFC3339),
		TotalMarks:    10,
		ClassSemester: "XI-RPL-1",
		AccessType:    string(models.AccessAllClass),
	}, nil)
	require.Error(t, err)
}

func TestAssignmentCreateRejectsInvalidDueDate(t *testing.T) {
	_, svc := newAssignmentFixture()

	_, err := svc.Create(context.Background(), teacher(2), dto.AssignmentCreateRequest{
		Title:         "Broken",
		DueDate:       "next tuesday",
		TotalMarks:    10,
		ClassSemester: "XI-RPL-1",
		AccessType:    string(models.AccessAllClass),
	}, nil)
	require.Error(t, err)
}

func newTestFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(int64(len(content))+1024))
	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
