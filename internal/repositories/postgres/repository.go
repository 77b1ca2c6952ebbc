package postgres

import (
	"context"

	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	db      *gorm.DB
	project repositories.ProjectRepository
	session repositories.SessionRepository
}

// NewRepository builds the aggregate repository over one gorm connection.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		db:      db,
		project: NewProjectPostgreSQL(db),
		session: NewSessionPostgreSQL(db),
	}
}

func (r *gormRepository) Project() repositories.ProjectRepository { return r.project }
func (r *gormRepository) Session() repositories.SessionRepository { return r.session }

func (r *gormRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.WithContext(ctx).DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
