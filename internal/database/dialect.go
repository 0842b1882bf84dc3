package database

import (
	"fmt"
	"net"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MySQLConfig carries the connection settings read from the MYSQL_* environment.
type MySQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	TLS      string
	Timeout  time.Duration
}

// MySQLDSN formats the go-sql-driver DSN for the given settings.
func MySQLDSN(cfg MySQLConfig) (string, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Database == "" {
		return "", fmt.Errorf("mysql host, user and database must be provided")
	}

	port := cfg.Port
	if port == "" {
		port = "3306"
	}

	dsn := mysqldriver.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, port)
	dsn.DBName = cfg.Database
	dsn.ParseTime = true
	dsn.Timeout = cfg.Timeout
	if tls := strings.TrimSpace(cfg.TLS); tls != "" && tls != "false" {
		dsn.TLSConfig = tls
	}

	return dsn.FormatDSN(), nil
}

// Dialector picks the gorm dialector for the configured driver.
func Dialector(driver string, mysqlCfg MySQLConfig, postgresURL string) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "mysql":
		dsn, err := MySQLDSN(mysqlCfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		if postgresURL == "" {
			return nil, fmt.Errorf("postgres dsn must not be empty")
		}
		return postgres.Open(postgresURL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
