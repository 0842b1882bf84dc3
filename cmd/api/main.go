package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/imtti/imtti-api/internal/config"
	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/handler"
	"github.com/imtti/imtti-api/internal/middleware"
	"github.com/imtti/imtti-api/internal/repository"
	"github.com/imtti/imtti-api/internal/router"
	"github.com/imtti/imtti-api/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	ctx := context.Background()

	store := openStore(ctx, cfg, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL, 5*time.Second)
	if err != nil {
		logger.Warn().Err(err).Msg("list cache disabled")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	cache := service.NewListCache(redisClient, cfg.ListCacheTTL, logger)

	centerRepo := repository.NewCenterRepository(store)
	studentRepo := repository.NewStudentRepository(store)
	applicationRepo := repository.NewApplicationRepository(store)
	markRepo := repository.NewMarkRepository(store)
	adminRepo := repository.NewAdminRepository(store)

	centerService := service.NewCenterService(centerRepo, validate, cache, logger)
	studentService := service.NewStudentService(studentRepo, validate, cache, logger)
	applicationService := service.NewApplicationService(applicationRepo, validate, cache, logger)
	markService := service.NewMarkService(markRepo, validate, cache, logger)
	adminService := service.NewAdminService(adminRepo, validate, cache, logger)
	authService := service.NewAuthService(adminRepo, centerRepo, studentRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AccessLogging: cfg.AppEnv != "production"})
	router.Register(app, cfg, router.Dependencies{
		Store:              store,
		CenterHandler:      handler.NewCenterHandler(centerService, logger),
		StudentHandler:     handler.NewStudentHandler(studentService, logger),
		ApplicationHandler: handler.NewApplicationHandler(applicationService, logger),
		MarkHandler:        handler.NewMarkHandler(markService, logger),
		AdminHandler:       handler.NewAdminHandler(adminService, logger),
		AuthHandler:        handler.NewAuthHandler(authService, logger),
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Str("database", store.Status()).Msg("server starting")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

// openStore connects and migrates the relational store. Any failure leaves the process running
// in no-store mode.
func openStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) *database.Store {
	if !cfg.StoreConfigured() {
		return database.Open(ctx, nil, cfg.DBDriver, database.Options{}, logger)
	}

	dialector, err := database.Dialector(cfg.DBDriver, database.MySQLConfig{
		Host:     cfg.MySQLHost,
		Port:     cfg.MySQLPort,
		User:     cfg.MySQLUser,
		Password: cfg.MySQLPassword,
		Database: cfg.MySQLDatabase,
		TLS:      cfg.MySQLTLS,
		Timeout:  cfg.DBProbeTimeout,
	}, cfg.DatabaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("invalid database configuration")
		dialector = nil
	}

	store := database.Open(ctx, dialector, cfg.DBDriver, database.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		ProbeTimeout: cfg.DBProbeTimeout,
	}, logger)

	if store.Available() {
		if err := store.Migrate(ctx, database.DefaultAdmin{
			Name:     cfg.AdminName,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		}); err != nil {
			logger.Error().Err(err).Msg("failed to prepare schema")
		}
	}

	return store
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
