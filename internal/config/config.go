package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig    `yaml:"server"`
	Auth        AuthConfig      `yaml:"auth"`
	Store       StoreConfig     `yaml:"store"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Logging     LoggingConfig   `yaml:"logging"`
	Environment string          `yaml:"environment"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type AuthConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	// SessionTTLHours bounds both the server-side session lifetime and the
	// cookie max age; a single knob keeps the two expiry windows in sync.
	SessionTTLHours int `yaml:"session_ttl_hours"`
}

// SessionTTL returns the configured session lifetime as a duration.
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLHours) * time.Hour
}

type StoreConfig struct {
	// EventsFile is the JSON document holding the event sequence. Its
	// directory is created on first write.
	EventsFile string `yaml:"events_file"`
}

type RateLimitConfig struct {
	PublicPerMinute   int `yaml:"public_per_minute"`
	AdminPerMinute    int `yaml:"admin_per_minute"`
	LoginPer15Minutes int `yaml:"login_per_15_minutes"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load builds configuration from environment variables alone.
func Load() (Config, error) {
	return LoadWithFile("")
}

// LoadWithFile starts from defaults, overlays an optional YAML config file,
// then lets environment variables win. ADMIN_PASSWORD (or the file
// equivalent) is the only required setting.
func LoadWithFile(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.Auth.AdminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if cfg.Auth.SessionTTLHours <= 0 {
		return Config{}, fmt.Errorf("session TTL must be positive")
	}
	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Auth: AuthConfig{
			AdminUsername:   "admin",
			SessionTTLHours: 24,
		},
		Store: StoreConfig{
			EventsFile: "data/events.json",
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute:   120,
			AdminPerMinute:    0,
			LoginPer15Minutes: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Environment: "development",
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("SERVER_PORT", cfg.Server.Port)

	cfg.Auth.AdminUsername = getEnv("ADMIN_USERNAME", cfg.Auth.AdminUsername)
	cfg.Auth.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.Auth.AdminPassword)
	cfg.Auth.SessionTTLHours = getEnvInt("SESSION_TTL_HOURS", cfg.Auth.SessionTTLHours)

	cfg.Store.EventsFile = getEnv("EVENTS_FILE", cfg.Store.EventsFile)

	cfg.RateLimit.PublicPerMinute = getEnvInt("RATE_LIMIT_PUBLIC", cfg.RateLimit.PublicPerMinute)
	cfg.RateLimit.AdminPerMinute = getEnvInt("RATE_LIMIT_ADMIN", cfg.RateLimit.AdminPerMinute)
	cfg.RateLimit.LoginPer15Minutes = getEnvInt("RATE_LIMIT_LOGIN", cfg.RateLimit.LoginPer15Minutes)

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
}

// IsProduction reports whether the server runs in production, which controls
// the Secure flag on session cookies.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
