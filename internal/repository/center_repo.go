package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/models"
	"github.com/imtti/imtti-api/internal/patch"
)

// CenterRepository persists training centers.
type CenterRepository interface {
	List(ctx context.Context) ([]models.Center, error)
	Create(ctx context.Context, center *models.Center) error
	Update(ctx context.Context, id uint, p *patch.Patch) error
	Delete(ctx context.Context, id uint) error
	FindActiveByCredentials(ctx context.Context, email, password string) (models.Center, error)
}

type centerRepository struct {
	store *database.Store
}

// NewCenterRepository constructs the center repository.
func NewCenterRepository(store *database.Store) CenterRepository {
	return &centerRepository{store: store}
}

func (r *centerRepository) List(ctx context.Context) ([]models.Center, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return nil, err
	}

	centers := make([]models.Center, 0)
	if err := db.Order(newestFirst).Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *centerRepository) Create(ctx context.Context, center *models.Center) error {
	return create(ctx, r.store, center)
}

func (r *centerRepository) Update(ctx context.Context, id uint, p *patch.Patch) error {
	return updateByID(ctx, r.store, &models.Center{}, id, p)
}

func (r *centerRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.store, &models.Center{}, id)
}

// FindActiveByCredentials returns ErrNotFound for unknown, mismatched and suspended centers alike.
func (r *centerRepository) FindActiveByCredentials(ctx context.Context, email, password string) (models.Center, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return models.Center{}, err
	}

	var center models.Center
	err = db.Where("email = ? AND password = ? AND is_active = ?", email, password, true).First(&center).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Center{}, ErrNotFound
	}
	if err != nil {
		return models.Center{}, err
	}
	return center, nil
}
