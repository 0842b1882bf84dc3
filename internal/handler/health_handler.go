package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/imtti/imtti-api/internal/config"
)

// StoreStatus reports relational store connectivity.
type StoreStatus interface {
	Status() string
}

// TestResponse is returned by the connectivity test endpoint.
type TestResponse struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Database    string `json:"database"`
	Service     string `json:"service"`
	Environment string `json:"environment"`
}

// TestConnection returns a handler reporting that the server runs and whether the store is
// connected.
func TestConnection(cfg config.Config, store StoreStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(TestResponse{
			Message:   cfg.AppName + " server is running!",
			Status:    "success",
			Database:  store.Status(),
			Timestamp: time.Now().UTC(),
		})
	}
}

// HealthCheck returns a handler that reports application health information. The process is
// healthy even without a store; the database field carries that flag.
func HealthCheck(cfg config.Config, store StoreStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(HealthResponse{
			Status:      "healthy",
			Message:     "Server is running properly",
			Database:    store.Status(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		})
	}
}
