package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// 支持的数据库驱动
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// reservedPathPrefixes 是已被探针和页面接口占用的路径，metrics 不能挂在它们上面。
var reservedPathPrefixes = []string{"/ping", "/healthz", "/addPage", "/readPage", "/updatePage", "/deletePage"}

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ListenAddr      string        `yaml:"listen_addr"`
	GinMode         string        `yaml:"gin_mode"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// ValidationErrorStatus is the status returned for rejected page payloads.
	ValidationErrorStatus int `yaml:"validation_error_status"`
}

// DatabaseConfig describes the storage backend and its connection pool.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Path            string        `yaml:"path"`
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default 返回未经任何覆盖的默认配置。
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Port:                  "5000",
			GinMode:               "release",
			ShutdownTimeout:       10 * time.Second,
			ValidationErrorStatus: 400,
		},
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			Path:         "page.db",
			MaxOpenConns: 10,
			MaxIdleConns: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load 先读取 CONFIG_PATH 指向的 YAML 文件（可选），再用环境变量覆盖，最后校验。
func Load() (AppConfig, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return AppConfig{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return AppConfig{}, err
	}

	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = fmt.Sprintf(":%s", cfg.Server.Port)
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.Server.GinMode, "GIN_MODE")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.Path, "DATABASE_PATH")
	setString(&cfg.Database.DSN, "DATABASE_DSN")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")
	setString(&cfg.Metrics.Path, "METRICS_PATH")

	if err := setInt(&cfg.Server.ValidationErrorStatus, "VALIDATION_ERROR_STATUS"); err != nil {
		return err
	}
	if err := setInt(&cfg.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS"); err != nil {
		return err
	}
	if err := setInt(&cfg.Database.MaxIdleConns, "DB_MAX_IDLE_CONNS"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Server.ShutdownTimeout, "SHUTDOWN_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Database.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME"); err != nil {
		return err
	}
	if raw := strings.TrimSpace(os.Getenv("METRICS_ENABLED")); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = enabled
	}
	return nil
}

func setString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = value
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = value
	return nil
}

// Validate checks if the configuration is usable.
func (c AppConfig) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
	case DriverMySQL, DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database dsn is required for driver %s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Database.MaxOpenConns <= 0 {
		return errors.New("max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return errors.New("max_idle_conns must not be negative")
	}

	switch c.Server.ValidationErrorStatus {
	case 400, 422, 500:
	default:
		return fmt.Errorf("validation_error_status must be 400, 422 or 500, got %d", c.Server.ValidationErrorStatus)
	}

	switch c.Server.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("gin_mode must be %s, %s or %s, got %q", gin.DebugMode, gin.ReleaseMode, gin.TestMode, c.Server.GinMode)
	}

	if c.Metrics.Enabled {
		if err := validateMetricsPath(c.Metrics.Path); err != nil {
			return err
		}
	}

	return nil
}

func validateMetricsPath(path string) error {
	if !strings.HasPrefix(path, "/") || path == "/" {
		return fmt.Errorf("metrics path must start with / and name a route, got %q", path)
	}
	if strings.ContainsAny(path, ":*") {
		return fmt.Errorf("metrics path must not contain wildcards, got %q", path)
	}
	for _, reserved := range reservedPathPrefixes {
		if path == reserved || strings.HasPrefix(path, reserved+"/") {
			return fmt.Errorf("metrics path %q collides with %s", path, reserved)
		}
	}
	return nil
}
