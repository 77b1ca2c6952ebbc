package services

import (
	"context"
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

type surveyService struct {
	repo           repositories.Repository
	cache          cache.CacheService
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *utils.Validator
}

func NewSurveyService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) SurveyService {
	return &surveyService{
		repo:           repo,
		cache:          cacheService,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
	}
}

// ===== SURVEY ACCESS =====

func (s *surveyService) GetSurvey(ctx context.Context, shareCode string, locale string) (*SurveyResponse, error) {
	project, err := s.getActiveProject(ctx, shareCode)
	if err != nil {
		return nil, err
	}

	// The project locale is the default; respondents may switch to the
	// secondary language.
	effective := project.Locale
	if locale != "" {
		effective = locale
	}
	loc := assessment.ParseLocale(effective)

	return &SurveyResponse{
		ProjectName: project.Name,
		ClientName:  project.ClientName,
		Locale:      string(loc),
		Questions:   assessment.LocalizedQuestions(loc),
	}, nil
}

func (s *surveyService) StartSession(ctx context.Context, shareCode string, req *StartSessionRequest) (*models.AssessmentSession, error) {
	if req != nil {
		if err := s.validator.Validate(req); err != nil {
			return nil, err
		}
	}

	project, err := s.getActiveProject(ctx, shareCode)
	if err != nil {
		return nil, err
	}

	session := &models.AssessmentSession{
		ProjectID: project.ID,
		Status:    models.SessionInProgress,
		StartedAt: time.Now(),
	}
	if req != nil {
		session.RespondentName = req.RespondentName
		session.RespondentEmail = req.RespondentEmail
	}

	if err := s.repo.Session().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Session started", "session_id", session.ID, "project_id", project.ID)

	event := events.NewAssessmentEvent(events.EventSessionStarted, events.SessionStartedEvent{
		SessionID:   session.ID,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		StartedAt:   session.StartedAt,
	})
	if err := s.eventPublisher.PublishAssessmentEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish session started event", "session_id", session.ID, "error", err)
	}

	return session, nil
}

// ===== ANSWER SUBMISSION =====

func (s *surveyService) SubmitAnswer(ctx context.Context, sessionID uint, req *SubmitAnswerRequest) error {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status == models.SessionCompleted {
		return ErrSessionCompleted
	}

	if err := validateAnswer(req.QuestionID, req.Value); err != nil {
		return err
	}

	if err := s.repo.Session().UpsertResponse(ctx, sessionID, req.QuestionID, req.Value); err != nil {
		return fmt.Errorf("failed to save response: %w", err)
	}
	return nil
}

func (s *surveyService) SubmitAnswers(ctx context.Context, sessionID uint, req *SubmitAnswersRequest) error {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status == models.SessionCompleted {
		return ErrSessionCompleted
	}

	// Validate the whole batch before writing anything.
	for _, answer := range req.Answers {
		if err := validateAnswer(answer.QuestionID, answer.Value); err != nil {
			return err
		}
	}

	return s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		for _, answer := range req.Answers {
			if err := txRepo.Session().UpsertResponse(ctx, sessionID, answer.QuestionID, answer.Value); err != nil {
				return fmt.Errorf("failed to save response for question %d: %w", answer.QuestionID, err)
			}
		}
		return nil
	})
}

// ===== COMPLETION AND RESULTS =====

func (s *surveyService) CompleteSession(ctx context.Context, sessionID uint) (*SessionResult, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionCompleted {
		return nil, ErrSessionCompleted
	}

	responses, err := s.repo.Session().GetResponses(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	answers := make(map[int]int, len(responses))
	for _, resp := range responses {
		answers[resp.QuestionID] = resp.Value
	}
	// Rows outside the catalog or value range are dropped on seeding, so a
	// corrupt response surfaces as an incomplete assessment rather than a
	// scoring failure.
	responseSet := assessment.NewResponseSetFrom(answers)
	if !responseSet.IsComplete() {
		return nil, &IncompleteAssessmentError{
			Answered: responseSet.Answered(),
			Total:    assessment.QuestionCount,
		}
	}

	scores := responseSet.Scores()
	scoreJSON, err := marshalScoreSet(scores)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now()
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Session().SaveResult(ctx, sessionID, scoreJSON, scores.OverallScore, scores.MaturityLevel, completedAt); err != nil {
			return fmt.Errorf("failed to save session result: %w", err)
		}
		// A new completed session changes the project aggregate, so any cached
		// project bundle is stale.
		if err := txRepo.Project().ClearInsights(ctx, session.ProjectID); err != nil {
			return fmt.Errorf("failed to clear project insights: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, projectReportCacheKey(session.ProjectID)); err != nil {
		s.logger.Warn("Failed to invalidate report cache", "project_id", session.ProjectID, "error", err)
	}

	s.logger.Info("Session completed",
		"session_id", sessionID,
		"overall_score", scores.OverallScore,
		"maturity_level", scores.MaturityLevel)

	event := events.NewAssessmentEvent(events.EventSessionCompleted, events.SessionCompletedEvent{
		SessionID:     sessionID,
		ProjectID:     session.ProjectID,
		ProjectName:   session.Project.Name,
		CompletedAt:   completedAt,
		OverallScore:  scores.OverallScore,
		MaturityLevel: scores.MaturityLevel,
	})
	if err := s.eventPublisher.PublishAssessmentEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish session completed event", "session_id", sessionID, "error", err)
	}

	return s.buildResult(session, completedAt, scores), nil
}

func (s *surveyService) GetResult(ctx context.Context, sessionID uint) (*SessionResult, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionCompleted || session.CompletedAt == nil {
		return nil, ErrSessionNotCompleted
	}

	scores, err := unmarshalScoreSet(session.ScoreSet)
	if err != nil {
		return nil, err
	}
	return s.buildResult(session, *session.CompletedAt, scores), nil
}

func (s *surveyService) buildResult(session *models.AssessmentSession, completedAt time.Time, scores assessment.ScoreSet) *SessionResult {
	locale := assessment.ParseLocale(session.Project.Locale)
	level := assessment.LevelByNumber(scores.MaturityLevel)

	return &SessionResult{
		SessionID:    session.ID,
		ProjectID:    session.ProjectID,
		CompletedAt:  completedAt,
		Scores:       scores,
		LevelName:    level.Name[locale],
		LevelSummary: level.Description[locale],
		TypicalNeeds: level.TypicalNeeds[locale],
	}
}

// ===== HELPERS =====

func (s *surveyService) getActiveProject(ctx context.Context, shareCode string) (*models.Project, error) {
	project, err := s.repo.Project().GetByShareCode(ctx, shareCode)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project by share code: %w", err)
	}

	switch project.Status {
	case models.ProjectActive:
		return project, nil
	case models.ProjectClosed:
		return nil, ErrProjectClosed
	default:
		return nil, ErrProjectNotActive
	}
}

func (s *surveyService) getSession(ctx context.Context, sessionID uint) (*models.AssessmentSession, error) {
	session, err := s.repo.Session().GetByID(ctx, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func validateAnswer(questionID, value int) error {
	probe := assessment.NewResponseSet()
	if err := probe.Set(questionID, value); err != nil {
		switch {
		case errors.Is(err, assessment.ErrUnknownQuestion):
			return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
		case errors.Is(err, assessment.ErrValueOutOfRange):
			return fmt.Errorf("%w: got %d", ErrAnswerValueOutOfRange, value)
		default:
			return err
		}
	}
	return nil
}
