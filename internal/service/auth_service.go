package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/imtti/imtti-api/internal/models"
	"github.com/imtti/imtti-api/internal/observability"
	"github.com/imtti/imtti-api/internal/repository"
)

// AuthService validates credentials for the three principal kinds. Passwords are compared as the
// plain stored strings; no token or session is issued.
type AuthService interface {
	AuthenticateAdmin(ctx context.Context, email, password string) (models.Admin, error)
	AuthenticateCenter(ctx context.Context, email, password string) (models.Center, error)
	AuthenticateStudent(ctx context.Context, registrationID, dateOfBirth string) (models.Student, error)
}

type authService struct {
	admins   repository.AdminRepository
	centers  repository.CenterRepository
	students repository.StudentRepository
	logger   zerolog.Logger
}

// NewAuthService constructs the authentication service.
func NewAuthService(admins repository.AdminRepository, centers repository.CenterRepository, students repository.StudentRepository, logger zerolog.Logger) AuthService {
	return &authService{
		admins:   admins,
		centers:  centers,
		students: students,
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) AuthenticateAdmin(ctx context.Context, email, password string) (models.Admin, error) {
	admin, err := s.admins.FindByCredentials(ctx, email, password)
	return admin, s.outcome("admin", err)
}

// AuthenticateCenter only matches active centers, so a suspended center looks exactly like an
// unknown one.
func (s *authService) AuthenticateCenter(ctx context.Context, email, password string) (models.Center, error) {
	center, err := s.centers.FindActiveByCredentials(ctx, email, password)
	return center, s.outcome("center", err)
}

func (s *authService) AuthenticateStudent(ctx context.Context, registrationID, dateOfBirth string) (models.Student, error) {
	student, err := s.students.FindByCredentials(ctx, registrationID, dateOfBirth)
	return student, s.outcome("student", err)
}

func (s *authService) outcome(principal string, err error) error {
	switch {
	case err == nil:
		observability.AuthAttempts().WithLabelValues(principal, "success").Inc()
		return nil
	case errors.Is(err, repository.ErrNotFound):
		observability.AuthAttempts().WithLabelValues(principal, "rejected").Inc()
		s.logger.Debug().Str("principal", principal).Msg("credentials rejected")
		return ErrUnauthorized
	default:
		observability.AuthAttempts().WithLabelValues(principal, "error").Inc()
		return err
	}
}
