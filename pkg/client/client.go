package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/imtti/imtti-api/pkg/client"

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client calls the IMTTI REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New builds a client for the server at baseURL, for example "http://localhost:3000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	ctx, span := c.tracer.Start(ctx, "imtti."+strings.ToLower(method), trace.WithAttributes(
		attribute.String("http.route", endpoint),
	))
	defer span.End()

	err := c.roundTrip(ctx, method, endpoint, payload, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) error {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	message := "Something went wrong"
	if err := json.Unmarshal(raw, &envelope); err == nil {
		switch {
		case envelope.Error != "":
			message = envelope.Error
		case envelope.Message != "":
			message = envelope.Message
		}
	}
	return &APIError{Status: status, Message: message}
}

type ack struct {
	Success bool `json:"success"`
}

type principal[T any] struct {
	Success bool `json:"success"`
	User    T    `json:"user"`
}

// Test calls the connectivity check.
func (c *Client) Test(ctx context.Context) (Status, error) {
	var out Status
	err := c.do(ctx, http.MethodGet, "test", nil, &out)
	return out, err
}

// Health calls the health endpoint.
func (c *Client) Health(ctx context.Context) (Status, error) {
	var out Status
	err := c.do(ctx, http.MethodGet, "health", nil, &out)
	return out, err
}

// Centers lists all centers, newest first.
func (c *Client) Centers(ctx context.Context) ([]Center, error) {
	var out []Center
	err := c.do(ctx, http.MethodGet, "centers", nil, &out)
	return out, err
}

// CreateCenter registers a center and returns the accepted fields.
func (c *Client) CreateCenter(ctx context.Context, center Center) (Center, error) {
	var out Center
	err := c.do(ctx, http.MethodPost, "centers", center, &out)
	return out, err
}

// UpdateCenter sends a partial update. Keys absent from fields are left untouched; nil values clear.
func (c *Client) UpdateCenter(ctx context.Context, id ID, fields map[string]interface{}) error {
	return c.do(ctx, http.MethodPut, "centers/"+string(id), fields, &ack{})
}

// DeleteCenter removes a center.
func (c *Client) DeleteCenter(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "centers/"+string(id), nil, &ack{})
}

// Students lists all students with their center names.
func (c *Client) Students(ctx context.Context) ([]Student, error) {
	var out []Student
	err := c.do(ctx, http.MethodGet, "students", nil, &out)
	return out, err
}

// CreateStudent registers a student.
func (c *Client) CreateStudent(ctx context.Context, student Student) (Student, error) {
	var out Student
	err := c.do(ctx, http.MethodPost, "students", student, &out)
	return out, err
}

// UpdateStudent sends a partial update.
func (c *Client) UpdateStudent(ctx context.Context, id ID, fields map[string]interface{}) error {
	return c.do(ctx, http.MethodPut, "students/"+string(id), fields, &ack{})
}

// DeleteStudent removes a student.
func (c *Client) DeleteStudent(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "students/"+string(id), nil, &ack{})
}

// Applications lists all applications with student and center names.
func (c *Client) Applications(ctx context.Context) ([]Application, error) {
	var out []Application
	err := c.do(ctx, http.MethodGet, "applications", nil, &out)
	return out, err
}

// CreateApplication submits an application.
func (c *Client) CreateApplication(ctx context.Context, form ApplicationForm) (Application, error) {
	var out Application
	err := c.do(ctx, http.MethodPost, "applications", form, &out)
	return out, err
}

// UpdateApplication sends a partial update of status and/or data.
func (c *Client) UpdateApplication(ctx context.Context, id ID, fields map[string]interface{}) error {
	return c.do(ctx, http.MethodPut, "applications/"+string(id), fields, &ack{})
}

// DeleteApplication removes an application.
func (c *Client) DeleteApplication(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "applications/"+string(id), nil, &ack{})
}

// Marks lists all marks.
func (c *Client) Marks(ctx context.Context) ([]Mark, error) {
	var out []Mark
	err := c.do(ctx, http.MethodGet, "marks", nil, &out)
	return out, err
}

// CreateMark records a mark.
func (c *Client) CreateMark(ctx context.Context, mark Mark) (Mark, error) {
	var out Mark
	err := c.do(ctx, http.MethodPost, "marks", mark, &out)
	return out, err
}

// DeleteMark removes a mark.
func (c *Client) DeleteMark(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "marks/"+string(id), nil, &ack{})
}

// Admins lists administrator accounts.
func (c *Client) Admins(ctx context.Context) ([]Admin, error) {
	var out []Admin
	err := c.do(ctx, http.MethodGet, "admins", nil, &out)
	return out, err
}

// CreateAdmin adds an administrator.
func (c *Client) CreateAdmin(ctx context.Context, admin Admin) (Admin, error) {
	var out Admin
	err := c.do(ctx, http.MethodPost, "admins", admin, &out)
	return out, err
}

// DeleteAdmin removes an administrator.
func (c *Client) DeleteAdmin(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "admins/"+string(id), nil, &ack{})
}

// AuthenticateAdmin checks administrator credentials.
func (c *Client) AuthenticateAdmin(ctx context.Context, email, password string) (Admin, error) {
	var out principal[Admin]
	err := c.do(ctx, http.MethodPost, "auth/admin", map[string]string{"email": email, "password": password}, &out)
	return out.User, err
}

// AuthenticateCenter checks center credentials. Suspended centers are rejected like unknown ones.
func (c *Client) AuthenticateCenter(ctx context.Context, email, password string) (Center, error) {
	var out principal[Center]
	err := c.do(ctx, http.MethodPost, "auth/center", map[string]string{"email": email, "password": password}, &out)
	return out.User, err
}

// AuthenticateStudent checks a registration id against the stored date of birth.
func (c *Client) AuthenticateStudent(ctx context.Context, registrationID, dateOfBirth string) (Student, error) {
	var out principal[Student]
	err := c.do(ctx, http.MethodPost, "auth/student", map[string]string{
		"registration_id": registrationID,
		"date_of_birth":   dateOfBirth,
	}, &out)
	return out.User, err
}
