package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Repository is the aggregate access point to all persistence operations.
type Repository interface {
	Project() ProjectRepository
	Session() SessionRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
}

// ===== SHARED FILTER STRUCTS =====

type ProjectFilters struct {
	Status    *models.ProjectStatus `json:"status"`
	CreatedBy *string               `json:"created_by"`
	DateFrom  *time.Time            `json:"date_from"`
	DateTo    *time.Time            `json:"date_to"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`    // "created_at", "name", "client_name"
	SortOrder string                `json:"sort_order"` // "asc", "desc"
}

type SessionFilters struct {
	Status *models.SessionStatus `json:"status"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetByShareCode(ctx context.Context, shareCode string) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ProjectFilters) ([]*models.Project, int64, error)
	Search(ctx context.Context, query string, filters ProjectFilters) ([]*models.Project, int64, error)

	ExistsByShareCode(ctx context.Context, shareCode string) (bool, error)
	SaveInsights(ctx context.Context, id uint, bundle datatypes.JSON) error
	ClearInsights(ctx context.Context, id uint) error

	GetStats(ctx context.Context, id uint) (*ProjectStats, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.AssessmentSession) error
	GetByID(ctx context.Context, id uint) (*models.AssessmentSession, error)
	Update(ctx context.Context, session *models.AssessmentSession) error

	GetByProject(ctx context.Context, projectID uint, filters SessionFilters) ([]*models.AssessmentSession, int64, error)
	GetCompletedByProject(ctx context.Context, projectID uint) ([]*models.AssessmentSession, error)
	CountByProject(ctx context.Context, projectID uint, status *models.SessionStatus) (int64, error)

	UpsertResponse(ctx context.Context, sessionID uint, questionID, value int) error
	GetResponses(ctx context.Context, sessionID uint) ([]*models.Response, error)

	SaveResult(ctx context.Context, id uint, scoreSet datatypes.JSON, overall float64, level int, completedAt time.Time) error
	SaveInsights(ctx context.Context, id uint, bundle datatypes.JSON) error
}

// ===== SHARED STATISTICS STRUCTS =====

type ProjectStats struct {
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	AverageScore      float64 `json:"average_score"`
	CompletionRate    float64 `json:"completion_rate"`
}

// IsNotFoundError reports whether err is the store's "no rows" condition.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
