package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"favorites-server/internal/shared/utils"

	"github.com/joho/godotenv"
)

const DefaultDatabaseURL = "sqlite:////tmp/test.db"

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DeletePolicy decides what happens to favorites when a person or planet they
// point to is deleted.
type DeletePolicy string

const (
	DeletePolicyRestrict DeletePolicy = "restrict"
	DeletePolicyCascade  DeletePolicy = "cascade"
)

func (p DeletePolicy) IsValid() bool {
	return p == DeletePolicyRestrict || p == DeletePolicyCascade
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Logging  LoggingConfig
	Catalog  CatalogConfig
}

type ServerConfig struct {
	Port            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	Dialect         Dialect
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type CORSConfig struct {
	AllowedOrigins []string
	Debug          bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type CatalogConfig struct {
	DeletePolicy DeletePolicy
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using system environment variables")
	}

	config := &Config{
		Server:   loadServerConfig(),
		Database: loadDatabaseConfig(),
		CORS:     loadCORSConfig(),
		Logging:  loadLoggingConfig(),
		Catalog:  loadCatalogConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            utils.GetEnv("PORT", "3000"),
		Environment:     utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:     time.Duration(utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout:    time.Duration(utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
		IdleTimeout:     time.Duration(utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
		ShutdownTimeout: time.Duration(utils.GetEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5)) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	url := utils.GetEnv("DATABASE_URL", DefaultDatabaseURL)
	dialect := DetectDialect(url)

	return DatabaseConfig{
		URL:             url,
		Dialect:         dialect,
		MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(utils.GetEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		AutoMigrate:     utils.GetEnvBool("DB_AUTO_MIGRATE", dialect == DialectSQLite),
	}
}

func loadCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: utils.SplitList(utils.GetEnv("CORS_ALLOWED_ORIGINS", "*")),
		Debug:          utils.GetEnvBool("CORS_DEBUG", false),
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: environment == "production",
	}
}

func loadCatalogConfig() CatalogConfig {
	return CatalogConfig{
		DeletePolicy: DeletePolicy(strings.ToLower(utils.GetEnv("CATALOG_DELETE_POLICY", string(DeletePolicyRestrict)))),
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if !c.Catalog.DeletePolicy.IsValid() {
		return fmt.Errorf("CATALOG_DELETE_POLICY must be %q or %q, got %q",
			DeletePolicyRestrict, DeletePolicyCascade, c.Catalog.DeletePolicy)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}

	return nil
}

// DetectDialect picks the store from the URL scheme. Anything that is not a
// postgres URL is treated as a SQLite file.
func DetectDialect(url string) Dialect {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// DataSourceName returns the driver-specific DSN for sql.Open.
func (c DatabaseConfig) DataSourceName() string {
	switch c.Dialect {
	case DialectPostgres:
		// Heroku style postgres:// URLs are accepted as is by lib/pq,
		// postgresql:// is the canonical form.
		if strings.HasPrefix(c.URL, "postgres://") {
			return "postgresql://" + strings.TrimPrefix(c.URL, "postgres://")
		}
		return c.URL
	default:
		return "file:" + c.SQLitePath() + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
}

// SQLitePath reads SQLAlchemy-style URLs: sqlite:///app.db is relative to the
// working directory and sqlite:////srv/app.db is absolute. Bare paths pass
// through unchanged.
func (c DatabaseConfig) SQLitePath() string {
	path := c.URL
	if strings.HasPrefix(path, "sqlite:///") {
		path = strings.TrimPrefix(path, "sqlite:///")
	} else {
		path = strings.TrimPrefix(path, "sqlite://")
	}
	path = strings.TrimPrefix(path, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}

// Redacted hides the password of a postgres URL for logging.
func (c DatabaseConfig) Redacted() string {
	if c.Dialect != DialectPostgres {
		return c.URL
	}
	scheme, rest, ok := strings.Cut(c.URL, "://")
	if !ok {
		return c.URL
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return c.URL
	}
	user, _, _ := strings.Cut(userinfo, ":")
	return scheme + "://" + user + ":***@" + host
}
