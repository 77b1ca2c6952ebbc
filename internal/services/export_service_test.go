package services

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newExportServiceForTest() (ExportService, *mockRepository) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	return NewExportService(repo, logger), repo
}

func exportProject() *models.Project {
	return &models.Project{
		ID:         1,
		Name:       "AI Readiness 2026",
		ClientName: "Acme AB",
		Locale:     "sv",
		Status:     models.ProjectActive,
		ShareCode:  "ABCD234567",
		CreatedBy:  "consultant-1",
	}
}

func TestExportProjectResults(t *testing.T) {
	service, repo := newExportServiceForTest()
	ctx := context.Background()

	dims := map[assessment.Dimension]float64{}
	for _, dim := range assessment.Dimensions {
		dims[dim] = 3.5
	}
	completed := completedSession(10, 3.5, dims)
	name := "Anna Andersson"
	completed.RespondentName = &name

	inProgress := &models.AssessmentSession{
		ID:        11,
		ProjectID: 1,
		Status:    models.SessionInProgress,
		StartedAt: time.Now().Add(-5 * time.Minute),
	}

	repo.projects.On("GetByID", ctx, uint(1)).Return(exportProject(), nil)
	repo.projects.On("GetStats", ctx, uint(1)).Return(&repositories.ProjectStats{
		TotalSessions:     2,
		CompletedSessions: 1,
		AverageScore:      3.5,
		CompletionRate:    50,
	}, nil)
	repo.sessions.On("GetByProject", ctx, uint(1), repositories.SessionFilters{}).
		Return([]*models.AssessmentSession{completed, inProgress}, int64(2), nil)
	repo.sessions.On("GetCompletedByProject", ctx, uint(1)).
		Return([]*models.AssessmentSession{completed}, nil)

	data, filename, err := service.ExportProjectResults(ctx, 1, "consultant-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "ABCD234567-results-"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Sessions")
	assert.NotContains(t, sheets, "Sheet1")

	rows, err := f.GetRows("Sessions")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	require.Len(t, header, 7+len(assessment.Dimensions))
	assert.Equal(t, "Session ID", header[0])
	assert.Equal(t, "Respondent", header[1])
	assert.Equal(t, "Overall Score", header[5])
	assert.Equal(t, "Strategi & Ledarskap", header[7])

	assert.Equal(t, "10", rows[1][0])
	assert.Equal(t, "Anna Andersson", rows[1][1])
	assert.Equal(t, "completed", rows[1][2])
	assert.Equal(t, "3.5", rows[1][5])
	assert.Equal(t, "4", rows[1][6])
	assert.Equal(t, "3.5", rows[1][7])

	assert.Equal(t, "11", rows[2][0])
	assert.Equal(t, "in_progress", rows[2][2])

	cell := func(ref string) string {
		v, err := f.GetCellValue("Summary", ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Project", cell("A1"))
	assert.Equal(t, "AI Readiness 2026", cell("B1"))
	assert.Equal(t, "ABCD234567", cell("B4"))
	assert.Equal(t, "Overall score", cell("A9"))
	assert.Equal(t, "3.5", cell("B9"))
	assert.Equal(t, "4 - Avancerad", cell("B10"))

	repo.AssertExpectations(t)
}

func TestExportProjectResultsNotOwner(t *testing.T) {
	service, repo := newExportServiceForTest()
	ctx := context.Background()

	repo.projects.On("GetByID", ctx, uint(1)).Return(exportProject(), nil)

	_, _, err := service.ExportProjectResults(ctx, 1, "someone-else")
	assert.True(t, IsUnauthorized(err))
}

func TestExportProjectResultsProjectNotFound(t *testing.T) {
	service, repo := newExportServiceForTest()
	ctx := context.Background()

	repo.projects.On("GetByID", ctx, uint(1)).Return(nil, gorm.ErrRecordNotFound)

	_, _, err := service.ExportProjectResults(ctx, 1, "consultant-1")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
