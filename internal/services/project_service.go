package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	"github.com/Criterio-inc/mognadsmataren/internal/cache"
	"github.com/Criterio-inc/mognadsmataren/internal/events"
	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
	"github.com/Criterio-inc/mognadsmataren/internal/utils"
)

const (
	// Share codes avoid characters respondents confuse when typing them in.
	shareCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	shareCodeLength   = 10
	shareCodeAttempts = 5

	projectReportTTL = 10 * time.Minute
)

func projectReportCacheKey(projectID uint) string {
	return fmt.Sprintf("project_report:%d", projectID)
}

type projectService struct {
	repo           repositories.Repository
	cache          cache.CacheService
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *utils.Validator
}

func NewProjectService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) ProjectService {
	return &projectService{
		repo:           repo,
		cache:          cacheService,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *projectService) Create(ctx context.Context, req *CreateProjectRequest, userID string) (*models.Project, error) {
	s.logger.Info("Creating project", "user_id", userID, "name", req.Name)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	locale := req.Locale
	if locale == "" {
		locale = string(assessment.LocaleSwedish)
	}

	shareCode, err := s.generateShareCode(ctx)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        req.Name,
		ClientName:  req.ClientName,
		Description: req.Description,
		Locale:      locale,
		Status:      models.ProjectDraft,
		ShareCode:   shareCode,
		CreatedBy:   userID,
	}

	if err := s.repo.Project().Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project created", "project_id", project.ID, "share_code", project.ShareCode)
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id uint, userID string) (*models.Project, error) {
	project, err := s.getOwnedProject(ctx, id, userID, "read")
	if err != nil {
		return nil, err
	}

	if err := s.attachSessionCounts(ctx, project); err != nil {
		s.logger.Warn("Failed to load session counts", "project_id", id, "error", err)
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id uint, req *UpdateProjectRequest, userID string) (*models.Project, error) {
	s.logger.Info("Updating project", "project_id", id, "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	project, err := s.getOwnedProject(ctx, id, userID, "update")
	if err != nil {
		return nil, err
	}
	if project.Status == models.ProjectClosed {
		return nil, ErrProjectClosed
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.ClientName != nil {
		project.ClientName = *req.ClientName
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Locale != nil {
		project.Locale = *req.Locale
	}

	if err := s.repo.Project().Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.invalidateReport(ctx, id)
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id uint, userID string) error {
	s.logger.Info("Deleting project", "project_id", id, "user_id", userID)

	if _, err := s.getOwnedProject(ctx, id, userID, "delete"); err != nil {
		return err
	}

	completed, err := s.repo.Session().CountByProject(ctx, id, statusPtr(models.SessionCompleted))
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}
	if completed > 0 {
		return ErrProjectHasSessions
	}

	if err := s.repo.Project().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.invalidateReport(ctx, id)
	return nil
}

func (s *projectService) List(ctx context.Context, filters repositories.ProjectFilters, userID string) (*ProjectListResponse, error) {
	// Consultants only ever see their own projects.
	filters.CreatedBy = &userID

	projects, total, err := s.repo.Project().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return &ProjectListResponse{
		Projects: projects,
		Total:    total,
		Limit:    filters.Limit,
		Offset:   filters.Offset,
	}, nil
}

func (s *projectService) Search(ctx context.Context, query string, filters repositories.ProjectFilters, userID string) (*ProjectListResponse, error) {
	filters.CreatedBy = &userID

	projects, total, err := s.repo.Project().Search(ctx, query, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}

	return &ProjectListResponse{
		Projects: projects,
		Total:    total,
		Limit:    filters.Limit,
		Offset:   filters.Offset,
	}, nil
}

// ===== STATUS TRANSITIONS =====

func (s *projectService) Activate(ctx context.Context, id uint, userID string) (*models.Project, error) {
	s.logger.Info("Activating project", "project_id", id, "user_id", userID)

	project, err := s.getOwnedProject(ctx, id, userID, "activate")
	if err != nil {
		return nil, err
	}

	switch project.Status {
	case models.ProjectActive:
		return project, nil
	case models.ProjectClosed:
		return nil, ErrProjectInvalidStatus
	}

	project.Status = models.ProjectActive
	if err := s.repo.Project().Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to activate project: %w", err)
	}
	return project, nil
}

func (s *projectService) Close(ctx context.Context, id uint, userID string) (*models.Project, error) {
	s.logger.Info("Closing project", "project_id", id, "user_id", userID)

	project, err := s.getOwnedProject(ctx, id, userID, "close")
	if err != nil {
		return nil, err
	}
	if project.Status == models.ProjectClosed {
		return project, nil
	}

	completed, err := s.repo.Session().CountByProject(ctx, id, statusPtr(models.SessionCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	project.Status = models.ProjectClosed
	if err := s.repo.Project().Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to close project: %w", err)
	}

	event := events.NewAssessmentEvent(events.EventProjectClosed, events.ProjectClosedEvent{
		ProjectID:         project.ID,
		ProjectName:       project.Name,
		ClosedAt:          time.Now(),
		CompletedSessions: int(completed),
	})
	if err := s.eventPublisher.PublishAssessmentEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish project closed event", "project_id", id, "error", err)
	}

	return project, nil
}

func (s *projectService) RegenerateShareCode(ctx context.Context, id uint, userID string) (*models.Project, error) {
	s.logger.Info("Regenerating share code", "project_id", id, "user_id", userID)

	project, err := s.getOwnedProject(ctx, id, userID, "regenerate_share_code")
	if err != nil {
		return nil, err
	}
	if project.Status == models.ProjectClosed {
		return nil, ErrProjectClosed
	}

	shareCode, err := s.generateShareCode(ctx)
	if err != nil {
		return nil, err
	}

	project.ShareCode = shareCode
	if err := s.repo.Project().Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update share code: %w", err)
	}
	return project, nil
}

// ===== REPORTING =====

func (s *projectService) GetReport(ctx context.Context, id uint, userID string) (*ProjectReport, error) {
	project, err := s.getOwnedProject(ctx, id, userID, "report")
	if err != nil {
		return nil, err
	}

	cacheKey := projectReportCacheKey(id)
	var cached ProjectReport
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Report cache read failed", "project_id", id, "error", err)
	}

	report, err := s.buildReport(ctx, project)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, report, projectReportTTL); err != nil {
		s.logger.Warn("Report cache write failed", "project_id", id, "error", err)
	}
	return report, nil
}

func (s *projectService) buildReport(ctx context.Context, project *models.Project) (*ProjectReport, error) {
	stats, err := s.repo.Project().GetStats(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project stats: %w", err)
	}
	project.SessionCount = stats.TotalSessions
	project.CompletedCount = stats.CompletedSessions

	sessions, _, err := s.repo.Session().GetByProject(ctx, project.ID, repositories.SessionFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	report := &ProjectReport{
		Project:  project,
		Stats:    *stats,
		Sessions: make([]SessionSummary, 0, len(sessions)),
	}
	for _, sess := range sessions {
		report.Sessions = append(report.Sessions, SessionSummary{
			SessionID:      sess.ID,
			RespondentName: sess.RespondentName,
			Status:         string(sess.Status),
			StartedAt:      sess.StartedAt,
			CompletedAt:    sess.CompletedAt,
			OverallScore:   sess.OverallScore,
			MaturityLevel:  sess.MaturityLevel,
		})
	}

	aggregate, ok, err := AggregateProjectScores(ctx, s.repo, project.ID)
	if err != nil {
		return nil, err
	}
	if ok {
		report.OverallScore = aggregate.OverallScore
		report.MaturityLevel = aggregate.MaturityLevel
		report.DimensionAverages = aggregate.DimensionScores
		report.LevelName = assessment.LevelByNumber(aggregate.MaturityLevel).Name[assessment.ParseLocale(project.Locale)]
	}
	return report, nil
}

// AggregateProjectScores folds all completed sessions of a project into one
// score set. The overall is the mean of per-session overalls, not a re-average
// of the raw answers, so each respondent carries the same weight. Reports
// ok=false when the project has no completed sessions yet.
func AggregateProjectScores(ctx context.Context, repo repositories.Repository, projectID uint) (assessment.ScoreSet, bool, error) {
	sessions, err := repo.Session().GetCompletedByProject(ctx, projectID)
	if err != nil {
		return assessment.ScoreSet{}, false, fmt.Errorf("failed to load completed sessions: %w", err)
	}
	if len(sessions) == 0 {
		return assessment.ScoreSet{}, false, nil
	}

	dimTotals := make(map[assessment.Dimension]float64, len(assessment.Dimensions))
	dimCounts := make(map[assessment.Dimension]int, len(assessment.Dimensions))
	overallTotal := 0.0
	overallCount := 0

	for _, sess := range sessions {
		if sess.OverallScore != nil {
			overallTotal += *sess.OverallScore
			overallCount++
		}
		scores, err := unmarshalScoreSet(sess.ScoreSet)
		if err != nil {
			return assessment.ScoreSet{}, false, fmt.Errorf("session %d has a corrupt score set: %w", sess.ID, err)
		}
		for dim, score := range scores.DimensionScores {
			dimTotals[dim] += score
			dimCounts[dim]++
		}
	}
	if overallCount == 0 {
		return assessment.ScoreSet{}, false, nil
	}

	aggregate := assessment.ScoreSet{
		DimensionScores: make(map[assessment.Dimension]float64, len(assessment.Dimensions)),
	}
	for _, dim := range assessment.Dimensions {
		if n := dimCounts[dim]; n > 0 {
			aggregate.DimensionScores[dim] = assessment.Round2(dimTotals[dim] / float64(n))
		} else {
			aggregate.DimensionScores[dim] = 0
		}
	}
	aggregate.OverallScore = assessment.Round2(overallTotal / float64(overallCount))
	aggregate.MaturityLevel = assessment.ResolveMaturityLevel(aggregate.OverallScore)
	return aggregate, true, nil
}

// ===== HELPERS =====

func (s *projectService) getOwnedProject(ctx context.Context, id uint, userID, action string) (*models.Project, error) {
	project, err := s.repo.Project().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project.CreatedBy != userID {
		return nil, NewPermissionError(userID, id, "project", action, "not the project owner")
	}
	return project, nil
}

func (s *projectService) attachSessionCounts(ctx context.Context, project *models.Project) error {
	total, err := s.repo.Session().CountByProject(ctx, project.ID, nil)
	if err != nil {
		return err
	}
	completed, err := s.repo.Session().CountByProject(ctx, project.ID, statusPtr(models.SessionCompleted))
	if err != nil {
		return err
	}
	project.SessionCount = int(total)
	project.CompletedCount = int(completed)
	return nil
}

func (s *projectService) generateShareCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < shareCodeAttempts; attempt++ {
		code, err := randomShareCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate share code: %w", err)
		}
		exists, err := s.repo.Project().ExistsByShareCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check share code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrShareCodeExhausted
}

func randomShareCode() (string, error) {
	buf := make([]byte, shareCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = shareCodeAlphabet[int(b)%len(shareCodeAlphabet)]
	}
	return string(buf), nil
}

func (s *projectService) invalidateReport(ctx context.Context, projectID uint) {
	if err := s.cache.Delete(ctx, projectReportCacheKey(projectID)); err != nil {
		s.logger.Warn("Failed to invalidate report cache", "project_id", projectID, "error", err)
	}
}

func statusPtr(status models.SessionStatus) *models.SessionStatus {
	return &status
}
