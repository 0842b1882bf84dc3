package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/imtti/imtti-api/internal/dto"
	"github.com/imtti/imtti-api/internal/models"
	"github.com/imtti/imtti-api/internal/repository"
)

// AdminService exposes administrator account maintenance.
type AdminService interface {
	List(ctx context.Context) ([]models.Admin, error)
	Create(ctx context.Context, req dto.AdminCreateRequest) (dto.AdminCreatedResponse, error)
	Delete(ctx context.Context, id uint) error
}

type adminService struct {
	repo      repository.AdminRepository
	validator *validator.Validate
	cache     *ListCache
	logger    zerolog.Logger
}

// NewAdminService constructs the admin service.
func NewAdminService(repo repository.AdminRepository, validator *validator.Validate, cache *ListCache, logger zerolog.Logger) AdminService {
	return &adminService{
		repo:      repo,
		validator: validator,
		cache:     cache,
		logger:    logger.With().Str("component", "admin_service").Logger(),
	}
}

func (s *adminService) List(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	generation, hit := s.cache.get(ctx, "admins", &admins)
	if hit {
		return admins, nil
	}

	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, "admins", generation, admins)
	return admins, nil
}

func (s *adminService) Create(ctx context.Context, req dto.AdminCreateRequest) (dto.AdminCreatedResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AdminCreatedResponse{}, err
	}

	admin := models.Admin{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}
	if err := s.repo.Create(ctx, &admin); err != nil {
		return dto.AdminCreatedResponse{}, err
	}
	s.cache.invalidate(ctx)

	return dto.AdminCreatedResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email}, nil
}

func (s *adminService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}
