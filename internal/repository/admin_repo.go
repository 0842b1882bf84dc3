package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/models"
)

// AdminRepository persists administrator accounts.
type AdminRepository interface {
	List(ctx context.Context) ([]models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id uint) error
	FindByCredentials(ctx context.Context, email, password string) (models.Admin, error)
}

type adminRepository struct {
	store *database.Store
}

// NewAdminRepository constructs the admin repository.
func NewAdminRepository(store *database.Store) AdminRepository {
	return &adminRepository{store: store}
}

func (r *adminRepository) List(ctx context.Context) ([]models.Admin, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return nil, err
	}

	admins := make([]models.Admin, 0)
	if err := db.Order(newestFirst).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return create(ctx, r.store, admin)
}

func (r *adminRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.store, &models.Admin{}, id)
}

func (r *adminRepository) FindByCredentials(ctx context.Context, email, password string) (models.Admin, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return models.Admin{}, err
	}

	var admin models.Admin
	err = db.Where("email = ? AND password = ?", email, password).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Admin{}, ErrNotFound
	}
	if err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}
