package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Переменные окружения, переопределяющие секреты из файла
const (
	EnvDatabasePassword = "SALON_DB_PASSWORD"
	EnvClientToken      = "SALONCTL_TOKEN"
	EnvClientBaseURL    = "SALONCTL_BASE_URL"
)

// Config корневая конфигурация сервиса и консольного клиента
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Salon    SalonConfig    `toml:"salon"`
	Client   ClientConfig   `toml:"client"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SalonConfig общие настройки салонов
type SalonConfig struct {
	DefaultTimezone string `toml:"default_timezone"`
}

// Location возвращает часовой пояс по умолчанию
func (s SalonConfig) Location() (*time.Location, error) {
	if s.DefaultTimezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.DefaultTimezone)
}

// ClientConfig настройки консольного клиента salonctl
type ClientConfig struct {
	BaseURL        string `toml:"base_url"`
	Timeout        int    `toml:"timeout"`        // секунды
	CommitTimeout  int    `toml:"commit_timeout"` // секунды
	Token          string `toml:"token"`
	UserID         int64  `toml:"user_id"`
	Role           string `toml:"role"`
	SalonID        int64  `toml:"salon_id"`
	MutationPolicy string `toml:"mutation_policy"` // queue | reject

	BreakerMaxFailures uint32 `toml:"breaker_max_failures"`
	BreakerOpenTimeout int    `toml:"breaker_open_timeout"` // секунды
}

// Load читает TOML файл, подмешивает переменные окружения (и .env, если есть),
// проставляет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabasePassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvClientToken); v != "" {
		c.Client.Token = v
	}
	if v := os.Getenv(EnvClientBaseURL); v != "" {
		c.Client.BaseURL = v
	}
	if v := os.Getenv("SALONCTL_USER_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Client.UserID = id
		}
	}
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 15)
	setInt(&c.Server.WriteTimeout, 15)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setString(&c.Database.Host, "localhost")
	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "salon-console")

	setString(&c.Salon.DefaultTimezone, "UTC")

	setString(&c.Client.BaseURL, "http://localhost:8080")
	setInt(&c.Client.Timeout, 5)
	setInt(&c.Client.CommitTimeout, 10)
	setString(&c.Client.Role, "admin")
	setString(&c.Client.MutationPolicy, "queue")
	if c.Client.BreakerMaxFailures == 0 {
		c.Client.BreakerMaxFailures = 5
	}
	setInt(&c.Client.BreakerOpenTimeout, 30)
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("%w: database.max_idle_conns (%d) exceeds max_open_conns (%d)",
			ErrInvalidConfig, c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	switch c.Logs.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logs.level must be one of debug|info|warn|error, got %q", ErrInvalidConfig, c.Logs.Level)
	}
	if _, err := c.Salon.Location(); err != nil {
		return fmt.Errorf("%w: salon.default_timezone: %v", ErrInvalidConfig, err)
	}
	switch c.Client.MutationPolicy {
	case "queue", "reject":
	default:
		return fmt.Errorf("%w: client.mutation_policy must be queue or reject, got %q", ErrInvalidConfig, c.Client.MutationPolicy)
	}
	switch c.Client.Role {
	case "admin", "stylist", "customer":
	default:
		return fmt.Errorf("%w: client.role must be admin, stylist or customer, got %q", ErrInvalidConfig, c.Client.Role)
	}
	return nil
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
