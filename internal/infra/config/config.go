package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// AppConfig holds everything the process reads from the environment.
type AppConfig struct {
	Port          string
	StorageDriver string // postgres | sqlite
	DatabaseURL   string
	SQLitePath    string

	AMQPURL string // empty disables the event producer

	MailHost        string // empty disables conversion alerts
	MailPort        int
	MailUser        string
	MailPass        string
	SalesAlertEmail string

	LogLevel    string
	Environment string
	CORSOrigins []string
}

// Load reads configuration from environment variables and a .env file if
// one is present. Existing env variables win over the file.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.StorageDriver = strings.ToLower(os.Getenv("STORAGE_DRIVER"))
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = DriverPostgres
	}
	switch cfg.StorageDriver {
	case DriverPostgres:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
	case DriverSQLite:
		cfg.SQLitePath = os.Getenv("SQLITE_PATH")
		if cfg.SQLitePath == "" {
			cfg.SQLitePath = "./restroiq.db"
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want postgres or sqlite)", cfg.StorageDriver)
	}

	cfg.AMQPURL = os.Getenv("AMQP_URL")

	cfg.MailHost = os.Getenv("MAIL_HOST")
	if cfg.MailHost != "" {
		portStr := os.Getenv("MAIL_PORT")
		if portStr == "" {
			portStr = "587"
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid MAIL_PORT: %w", err)
		}
		cfg.MailPort = port
		cfg.MailUser = os.Getenv("MAIL_USER")
		cfg.MailPass = os.Getenv("MAIL_PASS")
		cfg.SalesAlertEmail = os.Getenv("SALES_ALERT_EMAIL")
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}
