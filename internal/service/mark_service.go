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

// MarkService exposes subject mark entry.
type MarkService interface {
	List(ctx context.Context) ([]models.MarkRow, error)
	Create(ctx context.Context, req dto.MarkCreateRequest) (models.Mark, error)
	Delete(ctx context.Context, id uint) error
}

type markService struct {
	repo      repository.MarkRepository
	validator *validator.Validate
	cache     *ListCache
	logger    zerolog.Logger
}

// NewMarkService constructs the mark service.
func NewMarkService(repo repository.MarkRepository, validator *validator.Validate, cache *ListCache, logger zerolog.Logger) MarkService {
	return &markService{
		repo:      repo,
		validator: validator,
		cache:     cache,
		logger:    logger.With().Str("component", "mark_service").Logger(),
	}
}

func (s *markService) List(ctx context.Context) ([]models.MarkRow, error) {
	var rows []models.MarkRow
	generation, hit := s.cache.get(ctx, "marks", &rows)
	if hit {
		return rows, nil
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, "marks", generation, rows)
	return rows, nil
}

func (s *markService) Create(ctx context.Context, req dto.MarkCreateRequest) (models.Mark, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Mark{}, err
	}

	mark := models.Mark{
		StudentID: req.StudentID,
		Subject:   strings.TrimSpace(req.Subject),
		Marks:     req.Marks,
		Grade:     req.Grade,
		CenterID:  req.CenterID,
	}
	if err := s.repo.Create(ctx, &mark); err != nil {
		return models.Mark{}, err
	}
	s.cache.invalidate(ctx)
	return mark, nil
}

func (s *markService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}
