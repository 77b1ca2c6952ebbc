package services

import (
	"context"
	"time"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	"github.com/Criterio-inc/mognadsmataren/internal/insights"
	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
)

// ===== SERVICE INTERFACES =====

// ProjectService manages assessment projects on behalf of consultants.
type ProjectService interface {
	Create(ctx context.Context, req *CreateProjectRequest, userID string) (*models.Project, error)
	GetByID(ctx context.Context, id uint, userID string) (*models.Project, error)
	Update(ctx context.Context, id uint, req *UpdateProjectRequest, userID string) (*models.Project, error)
	Delete(ctx context.Context, id uint, userID string) error

	List(ctx context.Context, filters repositories.ProjectFilters, userID string) (*ProjectListResponse, error)
	Search(ctx context.Context, query string, filters repositories.ProjectFilters, userID string) (*ProjectListResponse, error)

	Activate(ctx context.Context, id uint, userID string) (*models.Project, error)
	Close(ctx context.Context, id uint, userID string) (*models.Project, error)
	RegenerateShareCode(ctx context.Context, id uint, userID string) (*models.Project, error)

	GetReport(ctx context.Context, id uint, userID string) (*ProjectReport, error)
}

// SurveyService is the respondent-facing flow: no authentication, access is
// through the project's share code only.
type SurveyService interface {
	GetSurvey(ctx context.Context, shareCode string, locale string) (*SurveyResponse, error)
	StartSession(ctx context.Context, shareCode string, req *StartSessionRequest) (*models.AssessmentSession, error)
	SubmitAnswer(ctx context.Context, sessionID uint, req *SubmitAnswerRequest) error
	SubmitAnswers(ctx context.Context, sessionID uint, req *SubmitAnswersRequest) error
	CompleteSession(ctx context.Context, sessionID uint) (*SessionResult, error)
	GetResult(ctx context.Context, sessionID uint) (*SessionResult, error)
}

// InsightService serves narrative insight bundles. Bundles are generated at
// most once and cached on the owning row afterwards.
type InsightService interface {
	GetSessionInsights(ctx context.Context, sessionID uint) (*insights.Bundle, error)
	GetProjectInsights(ctx context.Context, projectID uint, userID string) (*insights.Bundle, error)
}

// ExportService renders project results as downloadable files.
type ExportService interface {
	ExportProjectResults(ctx context.Context, projectID uint, userID string) ([]byte, string, error)
}

// ===== REQUEST DTOS =====

type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	ClientName  string  `json:"client_name" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Locale      string  `json:"locale" validate:"omitempty,survey_locale"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	ClientName  *string `json:"client_name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Locale      *string `json:"locale" validate:"omitempty,survey_locale"`
}

type StartSessionRequest struct {
	RespondentName  *string `json:"respondent_name" validate:"omitempty,max=100"`
	RespondentEmail *string `json:"respondent_email" validate:"omitempty,email"`
}

type SubmitAnswerRequest struct {
	QuestionID int `json:"question_id" validate:"required,min=1"`
	Value      int `json:"value" validate:"required"`
}

type SubmitAnswersRequest struct {
	Answers []SubmitAnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

// ===== RESPONSE DTOS =====

type ProjectListResponse struct {
	Projects []*models.Project `json:"projects"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type SurveyResponse struct {
	ProjectName string                         `json:"project_name"`
	ClientName  string                         `json:"client_name"`
	Locale      string                         `json:"locale"`
	Questions   []assessment.LocalizedQuestion `json:"questions"`
}

// SessionResult is the respondent-facing outcome of a completed session.
type SessionResult struct {
	SessionID    uint                `json:"session_id"`
	ProjectID    uint                `json:"project_id"`
	CompletedAt  time.Time           `json:"completed_at"`
	Scores       assessment.ScoreSet `json:"scores"`
	LevelName    string              `json:"level_name"`
	LevelSummary string              `json:"level_summary"`
	TypicalNeeds string              `json:"typical_needs"`
}

// ProjectReport aggregates all completed sessions of a project. The overall
// score is the mean of per-session overall scores, so every respondent weighs
// equally regardless of which questions drove their result.
type ProjectReport struct {
	Project *models.Project           `json:"project"`
	Stats   repositories.ProjectStats `json:"stats"`

	OverallScore      float64                          `json:"overall_score"`
	MaturityLevel     int                              `json:"maturity_level"`
	LevelName         string                           `json:"level_name"`
	DimensionAverages map[assessment.Dimension]float64 `json:"dimension_averages"`

	Sessions []SessionSummary `json:"sessions"`
}

type SessionSummary struct {
	SessionID      uint       `json:"session_id"`
	RespondentName *string    `json:"respondent_name,omitempty"`
	Status         string     `json:"status"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	OverallScore   *float64   `json:"overall_score,omitempty"`
	MaturityLevel  *int       `json:"maturity_level,omitempty"`
}
