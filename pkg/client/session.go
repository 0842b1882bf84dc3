package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// State is the connectivity state of a Session.
type State int

const (
	// Connected sessions read and write through the server.
	Connected State = iota
	// Degraded sessions use the local store only. A session never leaves this state.
	Degraded
)

func (s State) String() string {
	if s == Degraded {
		return "degraded"
	}
	return "connected"
}

const (
	defaultCourse    = "Diploma Program"
	statusRegistered = "registered"
	statusPending    = "pending"
)

// ErrDuplicateEmail is returned when a degraded session registers a center whose email is
// already cached.
var ErrDuplicateEmail = errors.New("center with this email already exists")

// Session caches the center, student and application collections for one user session and
// falls back to a LocalStore once the server is unreachable.
type Session struct {
	mu           sync.Mutex
	client       *Client
	store        LocalStore
	state        State
	centers      []Center
	students     []Student
	applications []Application

	fallbackEmail    string
	fallbackPassword string
	now              func() time.Time
	logger           zerolog.Logger
	tracer           trace.Tracer
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger.With().Str("component", "client_session").Logger()
	}
}

// WithFallbackAdmin overrides the credentials accepted when the admin login endpoint fails.
func WithFallbackAdmin(email, password string) SessionOption {
	return func(s *Session) {
		s.fallbackEmail = email
		s.fallbackPassword = password
	}
}

// WithClock overrides the time source used for generated timestamps and registration ids.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession starts a Connected session.
func NewSession(client *Client, store LocalStore, opts ...SessionOption) *Session {
	s := &Session{
		client:           client,
		store:            store,
		state:            Connected,
		fallbackEmail:    "admin@imtti.com",
		fallbackPassword: "admin123",
		now:              time.Now,
		logger:           zerolog.Nop(),
		tracer:           otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current connectivity state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Centers returns a copy of the cached centers.
func (s *Session) Centers() []Center {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Center(nil), s.centers...)
}

// Students returns a copy of the cached students.
func (s *Session) Students() []Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Student(nil), s.students...)
}

// Applications returns a copy of the cached applications.
func (s *Session) Applications() []Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Application(nil), s.applications...)
}

// Load refreshes the cache. While Connected it fetches all three collections from the server and
// mirrors them locally; any failure degrades the session and the cache is read from the local
// store instead.
func (s *Session) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.load")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Connected {
		err := s.loadRemote(ctx)
		if err == nil {
			s.persistAll(ctx)
			span.SetAttributes(attribute.String("session.state", s.state.String()))
			return nil
		}
		s.degrade(err)
	}

	span.SetAttributes(attribute.String("session.state", s.state.String()))
	return s.loadLocal(ctx)
}

func (s *Session) loadRemote(ctx context.Context) error {
	if _, err := s.client.Test(ctx); err != nil {
		return err
	}
	centers, err := s.client.Centers(ctx)
	if err != nil {
		return err
	}
	students, err := s.client.Students(ctx)
	if err != nil {
		return err
	}
	applications, err := s.client.Applications(ctx)
	if err != nil {
		return err
	}

	s.centers = centers
	s.students = students
	s.applications = applications
	return nil
}

func (s *Session) loadLocal(ctx context.Context) error {
	var centers []Center
	var students []Student
	var applications []Application

	if err := s.readLocal(ctx, KeyCenters, &centers); err != nil {
		return err
	}
	if err := s.readLocal(ctx, KeyStudents, &students); err != nil {
		return err
	}
	if err := s.readLocal(ctx, KeyApplications, &applications); err != nil {
		return err
	}

	s.centers = centers
	s.students = students
	s.applications = applications
	s.logger.Info().
		Int("centers", len(centers)).
		Int("students", len(students)).
		Int("applications", len(applications)).
		Msg("data loaded from local store")
	return nil
}

func (s *Session) readLocal(ctx context.Context, key string, dest interface{}) error {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode local %s: %w", key, err)
	}
	return nil
}

func (s *Session) writeLocal(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode local %s: %w", key, err)
	}
	return s.store.Set(ctx, key, raw)
}

func (s *Session) persistAll(ctx context.Context) {
	for key, value := range map[string]interface{}{
		KeyCenters:      s.centers,
		KeyStudents:     s.students,
		KeyApplications: s.applications,
	} {
		if err := s.writeLocal(ctx, key, value); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to mirror data locally")
		}
	}
}

func (s *Session) degrade(cause error) {
	if s.state == Degraded {
		return
	}
	s.state = Degraded
	s.logger.Warn().Err(cause).Msg("server unavailable, switching to local store")
}

// remoteFailure reports whether err means the server could not serve the request, as opposed to
// rejecting it.
func remoteFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return err != nil
}

// RegisterCenter creates a center remotely, or locally once degraded.
func (s *Session) RegisterCenter(ctx context.Context, center Center) (Center, error) {
	ctx, span := s.tracer.Start(ctx, "session.register_center")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Connected {
		created, err := s.client.CreateCenter(ctx, center)
		switch {
		case err == nil:
			center.ID = created.ID
			center.IsActive = true
			s.centers = append(s.centers, center)
			return center, s.writeLocal(ctx, KeyCenters, s.centers)
		case !remoteFailure(err):
			return Center{}, err
		}
		s.degrade(err)
	}

	for _, existing := range s.centers {
		if strings.EqualFold(existing.Email, center.Email) {
			return Center{}, ErrDuplicateEmail
		}
	}

	now := s.now().UTC()
	center.ID = ID(uuid.NewString())
	center.IsActive = true
	center.CreatedAt = &now
	s.centers = append(s.centers, center)
	return center, s.writeLocal(ctx, KeyCenters, s.centers)
}

// RegisterStudent creates a student remotely, or locally once degraded. A registration id is
// generated when missing in both modes since it is the student's login name. Local registrations
// also get a status and a date-of-birth password.
func (s *Session) RegisterStudent(ctx context.Context, student Student) (Student, error) {
	ctx, span := s.tracer.Start(ctx, "session.register_student")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if student.RegistrationID == nil || *student.RegistrationID == "" {
		registrationID := NewRegistrationID(now)
		student.RegistrationID = &registrationID
	}
	if student.Password == nil {
		password := ""
		if student.DateOfBirth != nil {
			password = DerivePassword(*student.DateOfBirth)
		}
		student.Password = &password
	}
	span.SetAttributes(attribute.String("student.registration_id", *student.RegistrationID))

	if s.state == Connected {
		created, err := s.client.CreateStudent(ctx, student)
		switch {
		case err == nil:
			student.ID = created.ID
			if created.RegistrationID != nil && *created.RegistrationID != "" {
				student.RegistrationID = created.RegistrationID
			}
			student.Course = created.Course
			student.Status = created.Status
			student.CreatedAt = &now
			s.students = append(s.students, student)
			return student, s.writeLocal(ctx, KeyStudents, s.students)
		case !remoteFailure(err):
			return Student{}, err
		}
		s.degrade(err)
	}

	student.ID = ID(uuid.NewString())
	if student.Course == "" {
		student.Course = defaultCourse
	}
	student.Status = statusRegistered
	student.CreatedAt = &now

	s.students = append(s.students, student)
	return student, s.writeLocal(ctx, KeyStudents, s.students)
}

// SubmitApplication creates an application remotely, or locally once degraded.
func (s *Session) SubmitApplication(ctx context.Context, form ApplicationForm) (Application, error) {
	ctx, span := s.tracer.Start(ctx, "session.submit_application")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if form.ApplicationNumber == "" {
		form.ApplicationNumber = "APP" + NewRegistrationID(now)[len("IMTTI"):]
	}

	data, err := applicantDocument(form.Applicant)
	if err != nil {
		return Application{}, err
	}
	application := Application{
		ApplicationNumber: form.ApplicationNumber,
		StudentID:         form.StudentID,
		CenterID:          form.CenterID,
		Data:              data,
		Status:            statusPending,
		CreatedAt:         &now,
	}

	if s.state == Connected {
		created, err := s.client.CreateApplication(ctx, form)
		switch {
		case err == nil:
			application.ID = created.ID
			if created.Status != "" {
				application.Status = created.Status
			}
			s.applications = append(s.applications, application)
			return application, s.writeLocal(ctx, KeyApplications, s.applications)
		case !remoteFailure(err):
			return Application{}, err
		}
		s.degrade(err)
	}

	application.ID = ID(uuid.NewString())
	s.applications = append(s.applications, application)
	return application, s.writeLocal(ctx, KeyApplications, s.applications)
}

func applicantDocument(applicant map[string]interface{}) (json.RawMessage, error) {
	doc := make(map[string]interface{}, len(applicant)+2)
	for key, value := range applicant {
		doc[key] = value
	}
	if course, ok := doc["course"].(string); !ok || course == "" {
		doc["course"] = defaultCourse
	}
	if doc["education"] == nil {
		doc["education"] = []interface{}{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode applicant document: %w", err)
	}
	return raw, nil
}

// NewRegistrationID returns an id of the form IMTTI<yy><8 uppercase characters>.
func NewRegistrationID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("IMTTI%02d%s", now.Year()%100, suffix)
}

// DerivePassword strips date separators from a date of birth.
func DerivePassword(dateOfBirth string) string {
	return strings.NewReplacer("-", "", "/", "", ".", "").Replace(dateOfBirth)
}
