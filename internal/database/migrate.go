package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/imtti/imtti-api/internal/models"
)

// DefaultAdmin describes the administrator row seeded on first boot.
type DefaultAdmin struct {
	Name     string
	Email    string
	Password string
}

// Migrate creates the tables and seeds the default administrator when it is missing.
func (s *Store) Migrate(ctx context.Context, admin DefaultAdmin) error {
	db, err := s.Conn(ctx)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&models.Center{}, &models.Student{}, &models.Application{}, &models.Mark{}, &models.Admin{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if admin.Email == "" {
		return nil
	}

	var existing models.Admin
	err = db.Where("email = ?", admin.Email).First(&existing).Error
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to look up default admin: %w", err)
	}

	seed := models.Admin{Name: admin.Name, Email: admin.Email, Password: admin.Password}
	if err := db.Create(&seed).Error; err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}
	s.logger.Info().Str("email", admin.Email).Msg("default admin created")
	return nil
}
