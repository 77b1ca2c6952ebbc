package postgres

import (
	"context"

	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectPostgreSQL struct {
	db *gorm.DB
}

func NewProjectPostgreSQL(db *gorm.DB) repositories.ProjectRepository {
	return &ProjectPostgreSQL{db: db}
}

func (p ProjectPostgreSQL) Create(ctx context.Context, project *models.Project) error {
	return p.db.WithContext(ctx).Create(project).Error
}

func (p ProjectPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := p.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (p ProjectPostgreSQL) GetByShareCode(ctx context.Context, shareCode string) (*models.Project, error) {
	var project models.Project
	if err := p.db.WithContext(ctx).
		Where("share_code = ?", shareCode).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (p ProjectPostgreSQL) Update(ctx context.Context, project *models.Project) error {
	return p.db.WithContext(ctx).Save(project).Error
}

func (p ProjectPostgreSQL) Delete(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}

func (p ProjectPostgreSQL) List(ctx context.Context, filters repositories.ProjectFilters) ([]*models.Project, int64, error) {
	var projects []*models.Project
	var total int64

	// apply filter first
	query := p.db.WithContext(ctx).Model(&models.Project{})
	query = p.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = p.applyPaginationAndSort(query, filters)

	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (p ProjectPostgreSQL) Search(ctx context.Context, search string, filters repositories.ProjectFilters) ([]*models.Project, int64, error) {
	var projects []*models.Project
	var total int64

	pattern := "%" + search + "%"
	query := p.db.WithContext(ctx).Model(&models.Project{}).
		Where("name ILIKE ? OR client_name ILIKE ?", pattern, pattern)
	query = p.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = p.applyPaginationAndSort(query, filters)

	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (p ProjectPostgreSQL) ExistsByShareCode(ctx context.Context, shareCode string) (bool, error) {
	var count int64
	if err := p.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("share_code = ?", shareCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (p ProjectPostgreSQL) SaveInsights(ctx context.Context, id uint, bundle datatypes.JSON) error {
	return p.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		Update("insight_bundle", bundle).Error
}

func (p ProjectPostgreSQL) ClearInsights(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		Update("insight_bundle", nil).Error
}

func (p ProjectPostgreSQL) GetStats(ctx context.Context, id uint) (*repositories.ProjectStats, error) {
	var total, completed int64
	var avgScore *float64

	if err := p.db.WithContext(ctx).
		Model(&models.AssessmentSession{}).
		Where("project_id = ?", id).
		Count(&total).Error; err != nil {
		return nil, err
	}

	if err := p.db.WithContext(ctx).
		Model(&models.AssessmentSession{}).
		Where("project_id = ? AND status = ?", id, models.SessionCompleted).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	// Cross-respondent average is the mean of per-session overall scores.
	if err := p.db.WithContext(ctx).
		Model(&models.AssessmentSession{}).
		Where("project_id = ? AND status = ?", id, models.SessionCompleted).
		Select("AVG(overall_score)").Scan(&avgScore).Error; err != nil {
		return nil, err
	}

	stats := &repositories.ProjectStats{
		TotalSessions:     int(total),
		CompletedSessions: int(completed),
	}
	if avgScore != nil {
		stats.AverageScore = *avgScore
	}
	if total > 0 {
		stats.CompletionRate = float64(completed) / float64(total)
	}
	return stats, nil
}

// applyFilters applies common filters to a query
func (p ProjectPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ProjectFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}

// applyPaginationAndSort applies pagination and sorting to a query
func (p ProjectPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.ProjectFilters) *gorm.DB {
	sortBy := filters.SortBy
	switch sortBy {
	case "name", "client_name", "created_at":
	default:
		sortBy = "created_at"
	}
	order := "desc"
	if filters.SortOrder == "asc" {
		order = "asc"
	}
	query = query.Order(sortBy + " " + order)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
