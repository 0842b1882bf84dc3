package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	LogLevel       string
	StaticDir      string
	BodyLimitMB    int
	DBDriver       string
	MySQLHost      string
	MySQLPort      string
	MySQLUser      string
	MySQLPassword  string
	MySQLDatabase  string
	MySQLTLS       string
	DatabaseURL    string
	DBMaxOpenConns int
	DBProbeTimeout time.Duration
	RedisURL       string
	ListCacheTTL   time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
	AdminName      string
	AdminEmail     string
	AdminPassword  string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// StoreConfigured reports whether enough settings exist to attempt a store connection.
func (c Config) StoreConfigured() bool {
	switch c.DBDriver {
	case "postgres", "postgresql":
		return c.DatabaseURL != ""
	default:
		return c.MySQLHost != "" && c.MySQLUser != "" && c.MySQLDatabase != ""
	}
}

// Load reads configuration values from environment variables and optional .env file. Store
// credentials have no defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "IMTTI")
	v.SetDefault("app.env", "development")
	v.SetDefault("port", "3000")
	v.SetDefault("log.level", "info")
	v.SetDefault("static.dir", ".")
	v.SetDefault("body.limit_mb", 50)
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("mysql.port", "3306")
	v.SetDefault("mysql.tls", "skip-verify")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.probe_timeout", "10s")
	v.SetDefault("list.cache_ttl", "1m")
	v.SetDefault("auth.rate_limit", 20)
	v.SetDefault("auth.rate_window", "1m")
	v.SetDefault("admin.name", "IMTTI Administrator")
	v.SetDefault("admin.email", "admin@imtti.com")
	v.SetDefault("admin.password", "admin123")

	probeTimeout, err := parseDuration(v.GetString("db.probe_timeout"), 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid database probe timeout: %w", err)
	}

	cacheTTL, err := parseDuration(v.GetString("list.cache_ttl"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid list cache ttl: %w", err)
	}

	rateWindow, err := parseDuration(v.GetString("auth.rate_window"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid auth rate window: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("port"),
		LogLevel:       strings.ToLower(v.GetString("log.level")),
		StaticDir:      v.GetString("static.dir"),
		BodyLimitMB:    v.GetInt("body.limit_mb"),
		DBDriver:       strings.ToLower(strings.TrimSpace(v.GetString("db.driver"))),
		MySQLHost:      v.GetString("mysql.host"),
		MySQLPort:      v.GetString("mysql.port"),
		MySQLUser:      v.GetString("mysql.user"),
		MySQLPassword:  v.GetString("mysql.password"),
		MySQLDatabase:  v.GetString("mysql.database"),
		MySQLTLS:       v.GetString("mysql.tls"),
		DatabaseURL:    v.GetString("database.url"),
		DBMaxOpenConns: v.GetInt("db.max_open_conns"),
		DBProbeTimeout: probeTimeout,
		RedisURL:       v.GetString("redis.url"),
		ListCacheTTL:   cacheTTL,
		AuthRateLimit:  v.GetInt("auth.rate_limit"),
		AuthRateWindow: rateWindow,
		AdminName:      v.GetString("admin.name"),
		AdminEmail:     v.GetString("admin.email"),
		AdminPassword:  v.GetString("admin.password"),
	}

	if cfg.BodyLimitMB <= 0 {
		cfg.BodyLimitMB = 50
	}

	if cfg.DBMaxOpenConns <= 0 {
		cfg.DBMaxOpenConns = 10
	}

	switch cfg.DBDriver {
	case "mysql", "postgres", "postgresql":
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
