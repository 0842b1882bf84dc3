package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/imtti/imtti-api/internal/dto"
	"github.com/imtti/imtti-api/internal/models"
	"github.com/imtti/imtti-api/internal/patch"
	"github.com/imtti/imtti-api/internal/repository"
)

// ApplicationService exposes application submission and review.
type ApplicationService interface {
	List(ctx context.Context) ([]models.ApplicationRow, error)
	Create(ctx context.Context, req dto.ApplicationCreateRequest) (dto.ApplicationCreatedResponse, error)
	Update(ctx context.Context, id uint, req dto.ApplicationUpdateRequest) error
	Delete(ctx context.Context, id uint) error
}

type applicationService struct {
	repo      repository.ApplicationRepository
	validator *validator.Validate
	cache     *ListCache
	logger    zerolog.Logger
}

// NewApplicationService constructs the application service.
func NewApplicationService(repo repository.ApplicationRepository, validator *validator.Validate, cache *ListCache, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		repo:      repo,
		validator: validator,
		cache:     cache,
		logger:    logger.With().Str("component", "application_service").Logger(),
	}
}

func (s *applicationService) List(ctx context.Context) ([]models.ApplicationRow, error) {
	var rows []models.ApplicationRow
	generation, hit := s.cache.get(ctx, "applications", &rows)
	if hit {
		return rows, nil
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, "applications", generation, rows)
	return rows, nil
}

func (s *applicationService) Create(ctx context.Context, req dto.ApplicationCreateRequest) (dto.ApplicationCreatedResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ApplicationCreatedResponse{}, err
	}

	data := req.ApplicationData
	if data.Course == nil || strings.TrimSpace(*data.Course) == "" {
		course := models.DefaultCourse
		data.Course = &course
	}
	if data.Education == nil {
		data.Education = []interface{}{}
	}

	document, err := json.Marshal(data)
	if err != nil {
		return dto.ApplicationCreatedResponse{}, fmt.Errorf("failed to encode application data: %w", err)
	}

	application := models.Application{
		ApplicationNumber: strings.TrimSpace(req.ApplicationNumber),
		StudentID:         req.StudentID,
		CenterID:          req.CenterID,
		Data:              datatypes.JSON(document),
		Status:            stringOr(req.Status, models.ApplicationStatusPending),
	}
	if err := s.repo.Create(ctx, &application); err != nil {
		return dto.ApplicationCreatedResponse{}, err
	}
	s.cache.invalidate(ctx)

	s.logger.Info().Str("application_number", application.ApplicationNumber).Msg("application submitted")

	return dto.ApplicationCreatedResponse{
		ID:                application.ID,
		ApplicationNumber: application.ApplicationNumber,
		StudentID:         application.StudentID,
		CenterID:          application.CenterID,
		Status:            application.Status,
	}, nil
}

func (s *applicationService) Update(ctx context.Context, id uint, req dto.ApplicationUpdateRequest) error {
	p := patch.New()
	patch.Add(p, "status", req.Status)

	if req.Data.Present {
		if req.Data.Value == nil {
			p.Put("data", nil)
		} else {
			if err := validateApplicationData(*req.Data.Value); err != nil {
				return err
			}
			p.Put("data", datatypes.JSON(*req.Data.Value))
		}
	}

	if err := s.repo.Update(ctx, id, p); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

func (s *applicationService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}
