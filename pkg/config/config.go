package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avidian/mvc/pkg/db"
	"github.com/avidian/mvc/pkg/logger"
	"github.com/avidian/mvc/pkg/storage"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MVC_"

// Config is the application configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Database db.Config      `yaml:"database"`
	Storage  storage.Config `yaml:"storage"`
	Views    ViewsConfig    `yaml:"views"`
	Input    InputConfig    `yaml:"input"`
	Logging  LoggingConfig  `yaml:"logging"`
	Sentry   SentryConfig   `yaml:"sentry"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`

	// BaseURL is used to build absolute asset URLs outside a request.
	BaseURL string `yaml:"base_url"`
}

type ServerConfig struct {
	Address         string        `yaml:"address"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type ViewsConfig struct {
	Dir   string `yaml:"dir"`
	Cache bool   `yaml:"cache"`
}

type InputConfig struct {
	// Sanitize strips HTML from every string input value.
	Sanitize bool `yaml:"sanitize"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads a YAML file, expands ${VAR} references, applies MVC_*
// environment overrides and defaults, then validates the result.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Join(ErrRead, err)
		}
		data = []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Join(ErrParse, err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file and no environment is present.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() slog.Level {
	level, _ := logger.ParseLevel(c.Logging.Level)
	return level
}

func applyEnvOverrides(cfg *Config) {
	str := func(name string, dst *string) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}
	boolean := func(name string, dst *bool) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*dst = parseBool(v)
		}
	}

	str("APP_NAME", &cfg.App.Name)
	str("APP_ENV", &cfg.App.Env)
	str("APP_BASE_URL", &cfg.App.BaseURL)

	str("SERVER_ADDRESS", &cfg.Server.Address)
	dur("SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	str("DB_DRIVER", &cfg.Database.Driver)
	str("DB_HOST", &cfg.Database.Host)
	if v := os.Getenv(EnvPrefix + "DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	str("DB_NAME", &cfg.Database.Name)
	str("DB_USERNAME", &cfg.Database.Username)
	str("DB_PASSWORD", &cfg.Database.Password)
	str("DB_SSLMODE", &cfg.Database.SSLMode)

	str("STORAGE_DRIVER", &cfg.Storage.Driver)
	str("STORAGE_DIR", &cfg.Storage.Dir)
	str("STORAGE_S3_BUCKET", &cfg.Storage.S3.Bucket)
	str("STORAGE_S3_REGION", &cfg.Storage.S3.Region)
	str("STORAGE_S3_ENDPOINT", &cfg.Storage.S3.Endpoint)
	str("STORAGE_S3_ACCESS_KEY", &cfg.Storage.S3.AccessKey)
	str("STORAGE_S3_SECRET_KEY", &cfg.Storage.S3.SecretKey)
	boolean("STORAGE_S3_PATH_STYLE", &cfg.Storage.S3.PathStyle)

	str("VIEWS_DIR", &cfg.Views.Dir)
	boolean("INPUT_SANITIZE", &cfg.Input.Sanitize)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("SENTRY_DSN", &cfg.Sentry.DSN)
	str("SENTRY_ENVIRONMENT", &cfg.Sentry.Environment)
	boolean("METRICS_ENABLED", &cfg.Metrics.Enabled)
	str("METRICS_PATH", &cfg.Metrics.Path)
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "mvc"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "production"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	dbDefaults := db.DefaultConfig()
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = dbDefaults.Driver
		if cfg.Database.Name == "" {
			cfg.Database.Name = dbDefaults.Name
		}
	}
	if cfg.Database.MigrationsTable == "" {
		cfg.Database.MigrationsTable = dbDefaults.MigrationsTable
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = dbDefaults.SSLMode
	}
	if cfg.Database.RetryAttempts == 0 {
		cfg.Database.RetryAttempts = dbDefaults.RetryAttempts
	}
	if cfg.Database.RetryInterval == 0 {
		cfg.Database.RetryInterval = dbDefaults.RetryInterval
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = dbDefaults.MaxOpenConns
	}
	if cfg.Database.MinConns == 0 {
		cfg.Database.MinConns = dbDefaults.MinConns
	}
	if cfg.Database.HealthCheckPeriod == 0 {
		cfg.Database.HealthCheckPeriod = dbDefaults.HealthCheckPeriod
	}
	if cfg.Database.MaxConnIdleTime == 0 {
		cfg.Database.MaxConnIdleTime = dbDefaults.MaxConnIdleTime
	}
	if cfg.Database.MaxConnLifetime == 0 {
		cfg.Database.MaxConnLifetime = dbDefaults.MaxConnLifetime
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = storage.DriverLocal
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = storage.DefaultDir
	}

	if cfg.Views.Dir == "" {
		cfg.Views.Dir = "views"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Sentry.Environment == "" {
		cfg.Sentry.Environment = cfg.App.Env
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func validate(cfg *Config) error {
	if _, err := db.NormalizeDriver(cfg.Database.Driver); err != nil {
		return fmt.Errorf("%w: database.driver: %v", ErrInvalid, err)
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("%w: database.name is required", ErrInvalid)
	}

	switch cfg.Storage.Driver {
	case storage.DriverLocal:
	case storage.DriverS3:
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("%w: storage.s3.bucket is required when storage.driver is 's3'", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: storage.driver must be 'local' or 's3', got %q", ErrInvalid, cfg.Storage.Driver)
	}

	if _, err := logger.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalid, err)
	}
	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with '/'", ErrInvalid)
	}
	return nil
}
