package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arkamaulana/classroom-api/internal/models"
	"github.com/arkamaulana/classroom-api/internal/repository"
)

func TestConnectPostgresRejectsEmptyDSN(t *testing.T) {
	_, err := ConnectPostgres("")
	require.Error(t, err)
}

// The duplicate-submission guard relies on the connection translating
// unique-index violations into gorm.ErrDuplicatedKey. This exercises the same
// gorm.Config the runtime connection is opened with.
func TestGormConfigTranslatesDuplicateKey(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), gormConfig())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Assignment{}, &models.Submission{}))

	repo := repository.NewSubmissionRepository(db)
	ctx := context.Background()

	first := models.Submission{AssignmentID: 1, StudentID: 1, SubmitDate: time.Now()}
	require.NoError(t, repo.Create(ctx, &first))

	second := models.Submission{AssignmentID: 1, StudentID: 1, SubmitDate: time.Now()}
	err = repo.Create(ctx, &second)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
