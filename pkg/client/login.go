package client

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when no account matches.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCenterSuspended is returned by the cached center check for an inactive center.
	ErrCenterSuspended = errors.New("this center account has been suspended, please contact the administrator")
	// ErrMalformedDate is returned when a student date of birth is not DD-MM-YYYY.
	ErrMalformedDate = errors.New("please enter date in DD-MM-YYYY format")
)

// LoginAdmin authenticates against the server. If the call fails for any reason the fallback
// administrator pair is accepted instead.
func (s *Session) LoginAdmin(ctx context.Context, email, password string) (Admin, error) {
	ctx, span := s.tracer.Start(ctx, "session.login_admin")
	defer span.End()

	admin, err := s.client.AuthenticateAdmin(ctx, email, password)
	if err == nil {
		return admin, nil
	}

	s.logger.Warn().Err(err).Msg("admin login failed remotely, checking fallback credentials")
	if email == s.fallbackEmail && password == s.fallbackPassword {
		return Admin{Email: email}, nil
	}
	return Admin{}, ErrInvalidCredentials
}

// LoginCenter authenticates against the server and falls back to the cached centers. Only the
// cached check can tell a suspended center apart.
func (s *Session) LoginCenter(ctx context.Context, email, password string) (Center, error) {
	ctx, span := s.tracer.Start(ctx, "session.login_center")
	defer span.End()

	center, err := s.client.AuthenticateCenter(ctx, email, password)
	if err == nil {
		return center, nil
	}

	s.logger.Warn().Err(err).Msg("center login failed remotely, checking cached centers")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cached := range s.centers {
		if cached.Email != email || cached.Password != password {
			continue
		}
		if !cached.IsActive {
			return Center{}, ErrCenterSuspended
		}
		return cached, nil
	}
	return Center{}, ErrInvalidCredentials
}

// LoginStudent checks a registration id and a DD-MM-YYYY date of birth against the cached
// students. It never calls the server.
func (s *Session) LoginStudent(registrationID, dateOfBirth string) (Student, error) {
	parts := strings.Split(dateOfBirth, "-")
	if len(parts) != 3 {
		return Student{}, ErrMalformedDate
	}
	formatted := parts[2] + "-" + parts[1] + "-" + parts[0]

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, student := range s.students {
		if student.RegistrationID == nil || *student.RegistrationID != registrationID {
			continue
		}
		if student.DateOfBirth != nil && *student.DateOfBirth == formatted {
			return student, nil
		}
	}
	return Student{}, ErrInvalidCredentials
}
