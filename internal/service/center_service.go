package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/imtti/imtti-api/internal/dto"
	"github.com/imtti/imtti-api/internal/models"
	"github.com/imtti/imtti-api/internal/patch"
	"github.com/imtti/imtti-api/internal/repository"
)

// CenterService exposes center registration and maintenance.
type CenterService interface {
	List(ctx context.Context) ([]models.Center, error)
	Create(ctx context.Context, req dto.CenterCreateRequest) (dto.CenterCreatedResponse, error)
	Update(ctx context.Context, id uint, req dto.CenterUpdateRequest) error
	Delete(ctx context.Context, id uint) error
}

type centerService struct {
	repo      repository.CenterRepository
	validator *validator.Validate
	cache     *ListCache
	logger    zerolog.Logger
}

// NewCenterService constructs the center service.
func NewCenterService(repo repository.CenterRepository, validator *validator.Validate, cache *ListCache, logger zerolog.Logger) CenterService {
	return &centerService{
		repo:      repo,
		validator: validator,
		cache:     cache,
		logger:    logger.With().Str("component", "center_service").Logger(),
	}
}

func (s *centerService) List(ctx context.Context) ([]models.Center, error) {
	var centers []models.Center
	generation, hit := s.cache.get(ctx, "centers", &centers)
	if hit {
		return centers, nil
	}

	centers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, "centers", generation, centers)
	return centers, nil
}

func (s *centerService) Create(ctx context.Context, req dto.CenterCreateRequest) (dto.CenterCreatedResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CenterCreatedResponse{}, err
	}

	center := models.Center{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Password:      req.Password,
		Location:      req.Location,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, &center); err != nil {
		return dto.CenterCreatedResponse{}, err
	}
	s.cache.invalidate(ctx)

	s.logger.Info().Uint("center_id", center.ID).Msg("center registered")

	return dto.CenterCreatedResponse{
		ID:       center.ID,
		Name:     center.Name,
		Email:    center.Email,
		Location: center.Location,
		IsActive: center.IsActive,
	}, nil
}

func (s *centerService) Update(ctx context.Context, id uint, req dto.CenterUpdateRequest) error {
	p := patch.New()
	patch.Add(p, "name", req.Name)
	patch.Add(p, "email", req.Email)
	patch.Add(p, "location", req.Location)
	patch.Add(p, "contact_person", req.ContactPerson)
	patch.Add(p, "phone", req.Phone)
	patch.Add(p, "is_active", req.IsActive)

	if err := s.repo.Update(ctx, id, p); err != nil {
		return err
	}
	s.cache.invalidate(ctx)

	if p.Has("is_active") {
		s.logger.Info().Uint("center_id", id).Interface("is_active", req.IsActive.Interface()).Msg("center activation changed")
	}
	return nil
}

func (s *centerService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}
