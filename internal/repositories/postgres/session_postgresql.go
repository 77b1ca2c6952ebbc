package postgres

import (
	"context"
	"time"

	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionPostgreSQL struct {
	db *gorm.DB
}

func NewSessionPostgreSQL(db *gorm.DB) repositories.SessionRepository {
	return &SessionPostgreSQL{db: db}
}

func (s SessionPostgreSQL) Create(ctx context.Context, session *models.AssessmentSession) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s SessionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.AssessmentSession, error) {
	var session models.AssessmentSession
	if err := s.db.WithContext(ctx).
		Preload("Project").
		First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s SessionPostgreSQL) Update(ctx context.Context, session *models.AssessmentSession) error {
	return s.db.WithContext(ctx).Save(session).Error
}

func (s SessionPostgreSQL) GetByProject(ctx context.Context, projectID uint, filters repositories.SessionFilters) ([]*models.AssessmentSession, int64, error) {
	var sessions []*models.AssessmentSession
	var total int64

	query := s.db.WithContext(ctx).
		Model(&models.AssessmentSession{}).
		Where("project_id = ?", projectID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("started_at desc")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (s SessionPostgreSQL) GetCompletedByProject(ctx context.Context, projectID uint) ([]*models.AssessmentSession, error) {
	var sessions []*models.AssessmentSession
	if err := s.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, models.SessionCompleted).
		Order("completed_at asc").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s SessionPostgreSQL) CountByProject(ctx context.Context, projectID uint, status *models.SessionStatus) (int64, error) {
	var count int64
	query := s.db.WithContext(ctx).
		Model(&models.AssessmentSession{}).
		Where("project_id = ?", projectID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertResponse writes one answer with upsert semantics on the
// (session, question) key: a later write overwrites the earlier value.
func (s SessionPostgreSQL) UpsertResponse(ctx context.Context, sessionID uint, questionID, value int) error {
	response := &models.Response{
		SessionID:  sessionID,
		QuestionID: questionID,
		Value:      value,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(response).Error
}

func (s SessionPostgreSQL) GetResponses(ctx context.Context, sessionID uint) ([]*models.Response, error) {
	var responses []*models.Response
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("question_id asc").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (s SessionPostgreSQL) SaveResult(ctx context.Context, id uint, scoreSet datatypes.JSON, overall float64, level int, completedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&models.AssessmentSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         models.SessionCompleted,
			"completed_at":   completedAt,
			"score_set":      scoreSet,
			"overall_score":  overall,
			"maturity_level": level,
		}).Error
}

func (s SessionPostgreSQL) SaveInsights(ctx context.Context, id uint, bundle datatypes.JSON) error {
	return s.db.WithContext(ctx).Model(&models.AssessmentSession{}).
		Where("id = ?", id).
		Update("insight_bundle", bundle).Error
}
