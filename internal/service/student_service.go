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

var dateSeparators = strings.NewReplacer("-", "", "/", "", ".", "")

// StudentPassword derives a student's password from the date of birth by stripping separators.
func StudentPassword(dateOfBirth string) string {
	return dateSeparators.Replace(strings.TrimSpace(dateOfBirth))
}

// StudentService exposes student registration and maintenance.
type StudentService interface {
	List(ctx context.Context) ([]models.StudentRow, error)
	Create(ctx context.Context, req dto.StudentCreateRequest) (dto.StudentCreatedResponse, error)
	Update(ctx context.Context, id uint, req dto.StudentUpdateRequest) error
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	cache     *ListCache
	logger    zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, validator *validator.Validate, cache *ListCache, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: validator,
		cache:     cache,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context) ([]models.StudentRow, error) {
	var rows []models.StudentRow
	generation, hit := s.cache.get(ctx, "students", &rows)
	if hit {
		return rows, nil
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, "students", generation, rows)
	return rows, nil
}

func (s *studentService) Create(ctx context.Context, req dto.StudentCreateRequest) (dto.StudentCreatedResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentCreatedResponse{}, err
	}

	student := models.Student{
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		Phone:          req.Phone,
		DateOfBirth:    req.DateOfBirth,
		CenterID:       req.CenterID,
		Photo:          req.Photo,
		RegistrationID: req.RegistrationID,
		Course:         stringOr(req.Course, models.DefaultCourse),
		Address:        req.Address,
		Status:         stringOr(req.Status, models.StudentStatusRegistered),
		Password:       req.Password,
	}
	if student.Password == nil && student.DateOfBirth != nil {
		password := StudentPassword(*student.DateOfBirth)
		student.Password = &password
	}

	if err := s.repo.Create(ctx, &student); err != nil {
		return dto.StudentCreatedResponse{}, err
	}
	s.cache.invalidate(ctx)

	return dto.StudentCreatedResponse{
		ID:             student.ID,
		Name:           student.Name,
		Email:          student.Email,
		RegistrationID: student.RegistrationID,
		CenterID:       student.CenterID,
		Course:         student.Course,
		Status:         student.Status,
	}, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req dto.StudentUpdateRequest) error {
	p := patch.New()
	patch.Add(p, "name", req.Name)
	patch.Add(p, "email", req.Email)
	patch.Add(p, "phone", req.Phone)
	patch.Add(p, "date_of_birth", req.DateOfBirth)
	patch.Add(p, "photo", req.Photo)
	patch.Add(p, "course", req.Course)
	patch.Add(p, "status", req.Status)

	// The derived password follows the date of birth.
	if req.DateOfBirth.Present && req.DateOfBirth.Value != nil {
		p.Put("password", StudentPassword(*req.DateOfBirth.Value))
	}

	if err := s.repo.Update(ctx, id, p); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

func stringOr(value *string, fallback string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return fallback
	}
	return *value
}
