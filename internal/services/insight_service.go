package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	"github.com/Criterio-inc/mognadsmataren/internal/events"
	"github.com/Criterio-inc/mognadsmataren/internal/insights"
	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
)

type insightService struct {
	repo           repositories.Repository
	generator      insights.Generator
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewInsightService(
	repo repositories.Repository,
	generator insights.Generator,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
) InsightService {
	return &insightService{
		repo:           repo,
		generator:      generator,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// GetSessionInsights returns the session's insight bundle, generating and
// persisting it on first request. Sessions are immutable once completed, so
// the cached bundle never goes stale.
func (s *insightService) GetSessionInsights(ctx context.Context, sessionID uint) (*insights.Bundle, error) {
	session, err := s.repo.Session().GetByID(ctx, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.Status != models.SessionCompleted {
		return nil, ErrSessionNotCompleted
	}

	if len(session.InsightBundle) > 0 {
		bundle, err := unmarshalBundle(session.InsightBundle)
		if err == nil {
			return &bundle, nil
		}
		s.logger.Warn("Stored session bundle is corrupt, regenerating", "session_id", sessionID, "error", err)
	}

	scores, err := unmarshalScoreSet(session.ScoreSet)
	if err != nil {
		return nil, err
	}
	locale := assessment.ParseLocale(session.Project.Locale)

	bundle, err := s.generator.Generate(ctx, scores, locale)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session insights: %w", err)
	}

	bundleJSON, err := marshalBundle(bundle)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Session().SaveInsights(ctx, sessionID, bundleJSON); err != nil {
		return nil, fmt.Errorf("failed to save session insights: %w", err)
	}

	s.publishGenerated(ctx, session.ProjectID, &sessionID, locale)
	return &bundle, nil
}

// GetProjectInsights returns the aggregate bundle across all completed
// sessions. The cached copy is cleared whenever another session completes.
func (s *insightService) GetProjectInsights(ctx context.Context, projectID uint, userID string) (*insights.Bundle, error) {
	project, err := s.repo.Project().GetByID(ctx, projectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project.CreatedBy != userID {
		return nil, NewPermissionError(userID, projectID, "project", "insights", "not the project owner")
	}

	if len(project.InsightBundle) > 0 {
		bundle, err := unmarshalBundle(project.InsightBundle)
		if err == nil {
			return &bundle, nil
		}
		s.logger.Warn("Stored project bundle is corrupt, regenerating", "project_id", projectID, "error", err)
	}

	aggregate, ok, err := AggregateProjectScores(ctx, s.repo, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProjectReportNotReady
	}
	locale := assessment.ParseLocale(project.Locale)

	bundle, err := s.generator.Generate(ctx, aggregate, locale)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project insights: %w", err)
	}

	bundleJSON, err := marshalBundle(bundle)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Project().SaveInsights(ctx, projectID, bundleJSON); err != nil {
		return nil, fmt.Errorf("failed to save project insights: %w", err)
	}

	s.publishGenerated(ctx, projectID, nil, locale)
	return &bundle, nil
}

func (s *insightService) publishGenerated(ctx context.Context, projectID uint, sessionID *uint, locale assessment.Locale) {
	event := events.NewAssessmentEvent(events.EventInsightsGenerated, events.InsightsGeneratedEvent{
		ProjectID:   projectID,
		SessionID:   sessionID,
		Locale:      string(locale),
		GeneratedAt: time.Now(),
	})
	if err := s.eventPublisher.PublishAssessmentEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish insights generated event", "project_id", projectID, "error", err)
	}
}
