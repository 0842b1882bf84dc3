package repository

import (
	"context"

	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/models"
	"github.com/imtti/imtti-api/internal/patch"
)

// ApplicationRepository persists enrollment applications.
type ApplicationRepository interface {
	List(ctx context.Context) ([]models.ApplicationRow, error)
	Create(ctx context.Context, application *models.Application) error
	Update(ctx context.Context, id uint, p *patch.Patch) error
	Delete(ctx context.Context, id uint) error
}

type applicationRepository struct {
	store *database.Store
}

// NewApplicationRepository constructs the application repository.
func NewApplicationRepository(store *database.Store) ApplicationRepository {
	return &applicationRepository{store: store}
}

func (r *applicationRepository) List(ctx context.Context) ([]models.ApplicationRow, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ApplicationRow, 0)
	err = db.Table("applications AS a").
		Select("a.*, s.name AS student_name, c.name AS center_name").
		Joins("LEFT JOIN students s ON a.student_id = s.id").
		Joins("LEFT JOIN centers c ON a.center_id = c.id").
		Order("a.created_at DESC, a.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	return create(ctx, r.store, application)
}

func (r *applicationRepository) Update(ctx context.Context, id uint, p *patch.Patch) error {
	return updateByID(ctx, r.store, &models.Application{}, id, p)
}

func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.store, &models.Application{}, id)
}
