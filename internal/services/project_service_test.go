package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	"github.com/Criterio-inc/mognadsmataren/internal/events"
	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
	"github.com/Criterio-inc/mognadsmataren/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProjectServiceForTest() (ProjectService, *mockRepository, *memoryCache, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	cacheService := newMemoryCache()
	publisher := events.NewMockEventPublisher(logger)
	service := NewProjectService(repo, cacheService, publisher, logger, utils.NewValidator())
	return service, repo, cacheService, publisher
}

func completedSession(id uint, overall float64, dims map[assessment.Dimension]float64) *models.AssessmentSession {
	scores := assessment.ScoreSet{
		DimensionScores: dims,
		OverallScore:    overall,
		MaturityLevel:   assessment.ResolveMaturityLevel(overall),
	}
	data, err := marshalScoreSet(scores)
	if err != nil {
		panic(err)
	}
	completedAt := time.Now()
	level := scores.MaturityLevel
	return &models.AssessmentSession{
		ID:            id,
		ProjectID:     1,
		Status:        models.SessionCompleted,
		StartedAt:     completedAt.Add(-10 * time.Minute),
		CompletedAt:   &completedAt,
		OverallScore:  &overall,
		MaturityLevel: &level,
		ScoreSet:      data,
	}
}

func TestProjectServiceCreate(t *testing.T) {
	service, repo, _, _ := newProjectServiceForTest()
	ctx := context.Background()

	repo.projects.On("ExistsByShareCode", ctx, mock.AnythingOfType("string")).Return(false, nil)
	repo.projects.On("Create", ctx, mock.AnythingOfType("*models.Project")).Return(nil)

	project, err := service.Create(ctx, &CreateProjectRequest{
		Name:       "AI Readiness 2026",
		ClientName: "Acme AB",
	}, "consultant-1")

	require.NoError(t, err)
	assert.Equal(t, "AI Readiness 2026", project.Name)
	assert.Equal(t, models.ProjectDraft, project.Status)
	assert.Equal(t, "sv", project.Locale)
	assert.Equal(t, "consultant-1", project.CreatedBy)
	assert.Len(t, project.ShareCode, shareCodeLength)
	repo.AssertExpectations(t)
}

func TestProjectServiceCreateValidation(t *testing.T) {
	service, _, _, _ := newProjectServiceForTest()

	_, err := service.Create(context.Background(), &CreateProjectRequest{
		Name:       "",
		ClientName: "Acme AB",
	}, "consultant-1")

	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestProjectServiceGetByIDNotOwner(t *testing.T) {
	service, repo, _, _ := newProjectServiceForTest()
	ctx := context.Background()

	repo.projects.On("GetByID", ctx, uint(1)).Return(&models.Project{
		ID:        1,
		CreatedBy: "consultant-1",
	}, nil)

	_, err := service.GetByID(ctx, 1, "someone-else")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestProjectServiceGetByIDNotFound(t *testing.T) {
	service, repo, _, _ := newProjectServiceForTest()
	ctx := context.Background()

	repo.projects.On("GetByID", ctx, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetByID(ctx, 42, "consultant-1")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectServiceDeleteWithCompletedSessions(t *testing.T) {
	service, repo, _, _ := newProjectServiceForTest()
	ctx := context.Background()

	repo.projects.On("GetByID", ctx, uint(1)).Return(&models.Project{
		ID:        1,
		CreatedBy: "consultant-1",
	}, nil)
	repo.sessions.On("CountByProject", ctx, uint(1), mock.Anything).Return(int64(3), nil)

	err := service.Delete(ctx, 1, "consultant-1")
	assert.ErrorIs(t, err, ErrProjectHasSessions)
}

func TestProjectServiceStatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("activate draft project", func(t *testing.T) {
		service, repo, _, _ := newProjectServiceForTest()
		repo.projects.On("GetByID", ctx, uint(1)).Return(&models.Project{
			ID:        1,
			Status:    models.ProjectDraft,
			CreatedBy: "consultant-1",
		}, nil)
		repo.projects.On("Update", ctx, mock.AnythingOfType("*models.Project")).Return(nil)

		project, err := service.Activate(ctx, 1, "consultant-1")
		require.NoError(t, err)
		assert.Equal(t, models.ProjectActive, project.Status)
	})

	t.Run("activate closed project fails", func(t *testing.T) {
		service, repo, _, _ := newProjectServiceForTest()
		repo.projects.On("GetByID", ctx, uint(1)).Return(&models.Project{
			ID:        1,
			Status:    models.ProjectClosed,
			CreatedBy: "consultant-1",
		}, nil)

		_, err := service.Activate(ctx, 1, "consultant-1")
		assert.ErrorIs(t, err, ErrProjectInvalidStatus)
	})

	t.Run("close publishes event", func(t *testing.T) {
		service, repo, _, publisher := newProjectServiceForTest()
		repo.projects.On("GetByID", ctx, uint(1)).Return(&models.Project{
			ID:        1,
			Name:      "AI Readiness 2026",
			Status:    models.ProjectActive,
			CreatedBy: "consultant-1",
		}, nil)
		repo.sessions.On("CountByProject", ctx, uint(1), mock.Anything).Return(int64(2), nil)
		repo.projects.On("Update", ctx, mock.AnythingOfType("*models.Project")).Return(nil)

		project, err := service.Close(ctx, 1, "consultant-1")
		require.NoError(t, err)
		assert.Equal(t, models.ProjectClosed, project.Status)

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventProjectClosed, published[0].Type)
	})

	t.Run("update closed project fails", func(t *testing.T) {
		service, repo, _, _ := newProjectServiceForTest()
		repo.projects.On("GetByID", ctx, uint(1)).Return(&models.Project{
			ID:        1,
			Status:    models.ProjectClosed,
			CreatedBy: "consultant-1",
		}, nil)

		name := "New name"
		_, err := service.Update(ctx, 1, &UpdateProjectRequest{Name: &name}, "consultant-1")
		assert.ErrorIs(t, err, ErrProjectClosed)
	})
}

func TestProjectServiceGetReport(t *testing.T) {
	service, repo, _, _ := newProjectServiceForTest()
	ctx := context.Background()

	project := &models.Project{
		ID:         1,
		Name:       "AI Readiness 2026",
		ClientName: "Acme AB",
		Locale:     "sv",
		Status:     models.ProjectActive,
		CreatedBy:  "consultant-1",
	}

	dimsHigh := map[assessment.Dimension]float64{}
	dimsLow := map[assessment.Dimension]float64{}
	for _, dim := range assessment.Dimensions {
		dimsHigh[dim] = 4.0
		dimsLow[dim] = 3.0
	}
	sessions := []*models.AssessmentSession{
		completedSession(10, 4.0, dimsHigh),
		completedSession(11, 3.0, dimsLow),
	}

	repo.projects.On("GetByID", ctx, uint(1)).Return(project, nil)
	repo.projects.On("GetStats", ctx, uint(1)).Return(&repositories.ProjectStats{
		TotalSessions:     3,
		CompletedSessions: 2,
		AverageScore:      3.5,
		CompletionRate:    66.7,
	}, nil).Once()
	repo.sessions.On("GetByProject", ctx, uint(1), mock.Anything).Return(sessions, int64(2), nil).Once()
	repo.sessions.On("GetCompletedByProject", ctx, uint(1)).Return(sessions, nil).Once()

	report, err := service.GetReport(ctx, 1, "consultant-1")
	require.NoError(t, err)

	// The project aggregate averages the per-session overalls.
	assert.InDelta(t, 3.5, report.OverallScore, 0.001)
	assert.Equal(t, 4, report.MaturityLevel)
	assert.Equal(t, "Avancerad", report.LevelName)
	assert.InDelta(t, 3.5, report.DimensionAverages[assessment.DimStrategiLedarskap], 0.001)
	assert.Len(t, report.Sessions, 2)
	assert.Equal(t, 2, report.Stats.CompletedSessions)
}

func TestProjectServiceGetReportCached(t *testing.T) {
	service, repo, _, _ := newProjectServiceForTest()
	ctx := context.Background()

	project := &models.Project{ID: 1, Locale: "sv", CreatedBy: "consultant-1"}

	repo.projects.On("GetByID", ctx, uint(1)).Return(project, nil)
	repo.projects.On("GetStats", ctx, uint(1)).Return(&repositories.ProjectStats{}, nil).Once()
	repo.sessions.On("GetByProject", ctx, uint(1), mock.Anything).Return([]*models.AssessmentSession{}, int64(0), nil).Once()
	repo.sessions.On("GetCompletedByProject", ctx, uint(1)).Return([]*models.AssessmentSession{}, nil).Once()

	_, err := service.GetReport(ctx, 1, "consultant-1")
	require.NoError(t, err)

	// The second read is served from the cache; the Once expectations above
	// fail if the repository is hit again.
	_, err = service.GetReport(ctx, 1, "consultant-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAggregateProjectScoresEmpty(t *testing.T) {
	repo := newMockRepository()
	repo.sessions.On("GetCompletedByProject", mock.Anything, uint(1)).Return([]*models.AssessmentSession{}, nil)

	_, ok, err := AggregateProjectScores(context.Background(), repo, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRandomShareCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := randomShareCode()
		require.NoError(t, err)
		assert.Len(t, code, shareCodeLength)
		for _, r := range code {
			assert.Contains(t, shareCodeAlphabet, string(r))
		}
		seen[code] = true
	}
	// 100 draws from a 32^10 space should never collide.
	assert.Len(t, seen, 100)
}
