package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/imtti/imtti-api/internal/config"
	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/handler"
	"github.com/imtti/imtti-api/internal/middleware"
	"github.com/imtti/imtti-api/internal/repository"
	"github.com/imtti/imtti-api/internal/router"
	"github.com/imtti/imtti-api/internal/service"
)

func testConfig(t *testing.T) config.Config {
	return config.Config{
		AppName:        "IMTTI",
		AppEnv:         "test",
		StaticDir:      t.TempDir(),
		AuthRateLimit:  100,
		AuthRateWindow: time.Minute,
	}
}

func newApp(t *testing.T, store *database.Store) *fiber.App {
	t.Helper()
	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())
	cache := service.NewListCache(nil, time.Minute, logger)

	centerRepo := repository.NewCenterRepository(store)
	studentRepo := repository.NewStudentRepository(store)
	applicationRepo := repository.NewApplicationRepository(store)
	markRepo := repository.NewMarkRepository(store)
	adminRepo := repository.NewAdminRepository(store)

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, testConfig(t), router.Dependencies{
		Store:              store,
		CenterHandler:      handler.NewCenterHandler(service.NewCenterService(centerRepo, validate, cache, logger), logger),
		StudentHandler:     handler.NewStudentHandler(service.NewStudentService(studentRepo, validate, cache, logger), logger),
		ApplicationHandler: handler.NewApplicationHandler(service.NewApplicationService(applicationRepo, validate, cache, logger), logger),
		MarkHandler:        handler.NewMarkHandler(service.NewMarkService(markRepo, validate, cache, logger), logger),
		AdminHandler:       handler.NewAdminHandler(service.NewAdminService(adminRepo, validate, cache, logger), logger),
		AuthHandler:        handler.NewAuthHandler(service.NewAuthService(adminRepo, centerRepo, studentRepo, logger), logger),
	})
	return app
}

func newConnectedStore(t *testing.T) *database.Store {
	t.Helper()
	store := database.Open(context.Background(), sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), "sqlite", database.Options{MaxOpenConns: 1, ProbeTimeout: time.Second}, zerolog.Nop())
	require.True(t, store.Available())
	require.NoError(t, store.Migrate(context.Background(), database.DefaultAdmin{
		Name: "IMTTI Administrator", Email: "admin@imtti.com", Password: "admin123",
	}))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func call(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestCenterSuspensionBlocksLogin(t *testing.T) {
	app := newApp(t, newConnectedStore(t))

	status, created := call(t, app, http.MethodPost, "/api/centers", map[string]string{
		"name": "X", "email": "x@y", "password": "p",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, created["is_active"])
	id := int(created["id"].(float64))
	require.Positive(t, id)

	status, body := call(t, app, http.MethodPost, "/api/auth/center", map[string]string{"email": "x@y", "password": "p"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])

	status, body = call(t, app, http.MethodPut, "/api/centers/"+strconv.Itoa(id), map[string]interface{}{"is_active": false})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])

	status, body = call(t, app, http.MethodPost, "/api/auth/center", map[string]string{"email": "x@y", "password": "p"})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Invalid credentials", body["message"])
}

func TestEmptyUpdateIsRejected(t *testing.T) {
	app := newApp(t, newConnectedStore(t))

	status, body := call(t, app, http.MethodPut, "/api/centers/1", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "No valid fields to update", body["message"])

	status, _ = call(t, app, http.MethodPut, "/api/students/1", nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestSeededAdminCanLogIn(t *testing.T) {
	app := newApp(t, newConnectedStore(t))

	status, body := call(t, app, http.MethodPost, "/api/auth/admin", map[string]string{"email": "admin@imtti.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]interface{})
	require.Equal(t, "admin@imtti.com", user["email"])

	status, _ = call(t, app, http.MethodPost, "/api/auth/admin", map[string]string{"email": "admin@imtti.com", "password": "nope"})
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestStudentRegistrationAndLogin(t *testing.T) {
	app := newApp(t, newConnectedStore(t))

	status, created := call(t, app, http.MethodPost, "/api/students", map[string]interface{}{
		"name":            "Asha",
		"date_of_birth":   "2001-04-09",
		"registration_id": "IMTTI2400000001",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "IMTTI2400000001", created["registration_id"])

	status, body := call(t, app, http.MethodPost, "/api/auth/student", map[string]string{
		"registration_id": "IMTTI2400000001",
		"date_of_birth":   "2001-04-09",
	})
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]interface{})
	require.Equal(t, "20010409", user["password"])
	require.Equal(t, "Diploma Program", user["course"])
}

func TestRoutesWithoutStore(t *testing.T) {
	store := database.NewStore(nil, "mysql", zerolog.Nop())
	app := newApp(t, store)

	status, body := call(t, app, http.MethodGet, "/api/centers", nil)
	require.Equal(t, http.StatusServiceUnavailable, status)
	require.Equal(t, "Database not connected", body["message"])

	status, _ = call(t, app, http.MethodPost, "/api/auth/admin", map[string]string{"email": "a", "password": "b"})
	require.Equal(t, http.StatusServiceUnavailable, status)

	status, body = call(t, app, http.MethodGet, "/api/test", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "disconnected", body["database"])

	status, body = call(t, app, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "healthy", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp(t, newConnectedStore(t))
	call(t, app, http.MethodGet, "/api/centers", nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), "imtti_api_requests_total")
	require.Contains(t, string(raw), "imtti_store_up 1")
}
