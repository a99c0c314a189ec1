package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvBookingAPIBaseURL переменная окружения, переопределяющая адрес booking API
const EnvBookingAPIBaseURL = "BOOKING_API_BASE_URL"

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	BookingAPI BookingAPIConfig `toml:"booking_api"`
	Redis      RedisConfig      `toml:"redis"`
	Database   DatabaseConfig   `toml:"database"`
	Sessions   SessionsConfig   `toml:"sessions"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingAPIConfig настройки клиента upstream booking API
type BookingAPIConfig struct {
	BaseURL           string  `toml:"base_url"`
	Timeout           int     `toml:"timeout"`
	MaxRetries        int     `toml:"max_retries"`
	InitialBackoffMs  int     `toml:"initial_backoff_ms"`
	MaxBackoffMs      int     `toml:"max_backoff_ms"`
	BackoffMultiplier float64 `toml:"backoff_multiplier"`
	BackoffJitter     float64 `toml:"backoff_jitter"`
	DateWindowDays    int     `toml:"date_window_days"`
}

// RedisConfig настройки хранилища токенов
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TokenTTL int    `toml:"token_ttl"`
}

// DatabaseConfig настройки журнала заявок в PostgreSQL
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// SessionsConfig настройки сессий мастера (в секундах)
type SessionsConfig struct {
	TTL           int `toml:"ttl"`
	SweepInterval int `toml:"sweep_interval"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RequestTimeout таймаут одного запроса к booking API
func (b BookingAPIConfig) RequestTimeout() time.Duration {
	return time.Duration(b.Timeout) * time.Second
}

// InitialBackoff первая пауза перед повтором
func (b BookingAPIConfig) InitialBackoff() time.Duration {
	return time.Duration(b.InitialBackoffMs) * time.Millisecond
}

// MaxBackoff верхняя граница паузы между повторами
func (b BookingAPIConfig) MaxBackoff() time.Duration {
	return time.Duration(b.MaxBackoffMs) * time.Millisecond
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "recovery-booking",
		},
		BookingAPI: BookingAPIConfig{
			BaseURL:           "http://localhost:3000/api",
			Timeout:           15,
			MaxRetries:        3,
			InitialBackoffMs:  300,
			MaxBackoffMs:      5000,
			BackoffMultiplier: 2,
			BackoffJitter:     0.5,
			DateWindowDays:    30,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			TokenTTL: 3600,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Sessions: SessionsConfig{
			TTL:           1800,
			SweepInterval: 60,
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBookingAPIBaseURL)); v != "" {
		c.BookingAPI.BaseURL = v
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535:
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	case c.BookingAPI.BaseURL == "":
		return fmt.Errorf("%w: booking_api.base_url is empty", ErrInvalidConfig)
	case c.BookingAPI.Timeout <= 0:
		return fmt.Errorf("%w: booking_api.timeout must be positive", ErrInvalidConfig)
	case c.BookingAPI.MaxRetries < 0:
		return fmt.Errorf("%w: booking_api.max_retries must not be negative", ErrInvalidConfig)
	case c.BookingAPI.BackoffJitter < 0 || c.BookingAPI.BackoffJitter > 1:
		return fmt.Errorf("%w: booking_api.backoff_jitter must be within [0, 1]", ErrInvalidConfig)
	case c.Sessions.TTL <= 0:
		return fmt.Errorf("%w: sessions.ttl must be positive", ErrInvalidConfig)
	case c.Sessions.SweepInterval <= 0:
		return fmt.Errorf("%w: sessions.sweep_interval must be positive", ErrInvalidConfig)
	}
	return nil
}
