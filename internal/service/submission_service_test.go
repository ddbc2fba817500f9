package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/dto"
	"github.com/arkamaulana/classroom-api/internal/models"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF")

func newSubmissionFixture() (*memorySubmissionRepo, *memoryAssignmentRepo, *fakeUploader, SubmissionService) {
	submissions := newMemorySubmissionRepo()
	assignments := newMemoryAssignmentRepo()
	uploader := &fakeUploader{}
	svc := NewSubmissionService(submissions, assignments, uploader, testLogger())
	return submissions, assignments, uploader, svc
}

func TestSubmitStoresFileAndMetadata(t *testing.T) {
	submissions, assignments, uploader, svc := newSubmissionFixture()
	assignment := classAssignment(1, "XI-RPL-1", time.Now().Add(time.Hour))
	require.NoError(t, assignments.Create(context.Background(), &assignment))

	response, err := svc.Submit(context.Background(), 1, student(5, "XI-RPL-1"), newTestFileHeader(t, "essay.pdf", pdfBytes))
	require.NoError(t, err)
	require.Equal(t, uint(1), response.AssignmentID)
	require.Equal(t, uint(5), response.StudentID)
	require.Equal(t, "essay.pdf", response.FileName)
	require.Equal(t, "application/pdf", response.FileType)
	require.Equal(t, "https://cdn.example.com/essay.pdf", response.FilePath)

	require.Len(t, uploader.uploads, 1)
	require.Len(t, submissions.submissions, 1)
}

func TestSubmitUnknownAssignment(t *testing.T) {
	_, _, _, svc := newSubmissionFixture()

	_, err := svc.Submit(context.Background(), 9, student(5, "XI-RPL-1"), newTestFileHeader(t, "essay.pdf", pdfBytes))
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestSubmitInvisibleAssignmentReportedAbsent(t *testing.T) {
	_, assignments, uploader, svc := newSubmissionFixture()
	assignment := classAssignment(1, "XI-RPL-2", time.Now().Add(time.Hour))
	require.NoError(t, assignments.Create(context.Background(), &assignment))

	_, err := svc.Submit(context.Background(), 1, student(5, "XI-RPL-1"), newTestFileHeader(t, "essay.pdf", pdfBytes))
	require.ErrorIs(t, err, ErrAssignmentNotFound)
	require.Empty(t, uploader.uploads)
}

func TestSubmitDuplicateRejected(t *testing.T) {
	_, assignments, _, svc := newSubmissionFixture()
	assignment := classAssignment(1, "XI-RPL-1", time.Now().Add(time.Hour))
	require.NoError(t, assignments.Create(context.Background(), &assignment))
	submitter := student(5, "XI-RPL-1")

	_, err := svc.Submit(context.Background(), 1, submitter, newTestFileHeader(t, "essay.pdf", pdfBytes))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, submitter, newTestFileHeader(t, "essay.pdf", pdfBytes))
	require.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitDuplicateKeyFromStoreMapped(t *testing.T) {
	// The existence pre-check can race; the unique index violation surfaced
	// by the store must map to the same duplicate error.
	submissions, assignments, _, svc := newSubmissionFixture()
	assignment := classAssignment(1, "XI-RPL-1", time.Now().Add(time.Hour))
	require.NoError(t, assignments.Create(context.Background(), &assignment))

	submissions.createErr = gorm.ErrDuplicatedKey

	_, err := svc.Submit(context.Background(), 1, student(5, "XI-RPL-1"), newTestFileHeader(t, "essay.pdf", pdfBytes))
	require.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitRejectsUnsupportedFileType(t *testing.T) {
	_, assignments, uploader, svc := newSubmissionFixture()
	assignment := classAssignment(1, "XI-RPL-1", time.Now().Add(time.Hour))
	require.NoError(t, assignments.Create(context.Background(), &assignment))

	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

	_, err := svc.Submit(context.Background(), 1, student(5, "XI-RPL-1"), newTestFileHeader(t, "image.png", pngHeader))
	require.ErrorIs(t, err, ErrUnsupportedFileType)
	require.Empty(t, uploader.uploads)
}

func TestSubmissionListFilters(t *testing.T) {
	submissions, _, _, svc := newSubmissionFixture()
	submissions.submissions[1] = models.Submission{ID: 1, AssignmentID: 1, StudentID: 5}
	submissions.submissions[2] = models.Submission{ID: 2, AssignmentID: 1, StudentID: 6}
	submissions.submissions[3] = models.Submission{ID: 3, AssignmentID: 2, StudentID: 5}

	assignmentID := uint(1)
	results, err := svc.List(context.Background(), dto.SubmissionFilter{AssignmentID: &assignmentID})
	require.NoError(t, err)
	require.Len(t, results, 2)

	studentID := uint(5)
	results, err = svc.List(context.Background(), dto.SubmissionFilter{AssignmentID: &assignmentID, StudentID: &studentID})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, uint(1), results[0].ID)
}
