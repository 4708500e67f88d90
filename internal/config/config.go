package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds client preferences and the demo server settings
type Config struct {
	APIBaseURL string `yaml:"api_base_url" json:"api_base_url"` // Community API root (…/api/v1)
	UseMock    bool   `yaml:"use_mock" json:"use_mock"`         // Mode flag default when none is persisted
	DemoURL    string `yaml:"demo_url" json:"demo_url"`         // Demo backend root

	// Persisted client state (token, mode flag, theme)
	StateBackend string `yaml:"state_backend" json:"state_backend"` // sqlite, redis or memory
	StatePath    string `yaml:"state_path" json:"state_path"`
	RedisURL     string `yaml:"redis_url" json:"redis_url"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	Server ServerConfig `yaml:"server" json:"server"`
}

// ServerConfig configures the demo backend
type ServerConfig struct {
	Port          string  `yaml:"port" json:"port"`
	DataDir       string  `yaml:"data_dir" json:"data_dir"`
	DatabaseURL   string  `yaml:"database_url" json:"database_url"` // postgres instead of the JSON file when set
	JWTSecret     string  `yaml:"jwt_secret" json:"jwt_secret"`
	TokenTTL      string  `yaml:"token_ttl" json:"token_ttl"`
	AdminEmail    string  `yaml:"admin_email" json:"admin_email"`
	AdminPassword string  `yaml:"admin_password" json:"admin_password"`
	RateLimit     float64 `yaml:"rate_limit" json:"rate_limit"` // requests per second per IP, 0 disables
}

// TokenLifetime parses TokenTTL, falling back to 30 days
func (s ServerConfig) TokenLifetime() time.Duration {
	d, err := time.ParseDuration(s.TokenTTL)
	if err != nil || d <= 0 {
		return 30 * 24 * time.Hour
	}
	return d
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	statePath := ""
	if home != "" {
		logPath = filepath.Join(home, ".angple", "logs", "angple.log")
		statePath = filepath.Join(home, ".angple", "state.db")
	}

	return &Config{
		APIBaseURL:   getEnv("ANGPLE_API_URL", "https://api.ang.dev/api/v1"),
		UseMock:      getEnvBool("ANGPLE_USE_MOCK", false),
		DemoURL:      getEnv("ANGPLE_DEMO_URL", "http://localhost:8001"),
		StateBackend: getEnv("ANGPLE_STATE_BACKEND", "sqlite"),
		StatePath:    getEnv("ANGPLE_STATE_PATH", statePath),
		RedisURL:     getEnv("REDIS_URL", ""),
		LogLevel:     getEnv("ANGPLE_LOG_LEVEL", "INFO"),
		LogFile:      getEnv("ANGPLE_LOG_FILE", logPath),
		LogConsole:   getEnvBool("ANGPLE_LOG_CONSOLE", false),
		Server:       DefaultServerConfig(),
	}
}

// DefaultServerConfig returns demo backend defaults with env overrides
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:          getEnv("PORT", "8001"),
		DataDir:       getEnv("DATA_DIR", "data"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", "angple-dev-secret"),
		TokenTTL:      getEnv("TOKEN_TTL", "720h"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@damoang.dev"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "damoang123"),
		RateLimit:     getEnvFloat("RATE_LIMIT", 20),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// DefaultPath returns ~/.angple/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".angple", "config.yaml"), nil
}

// Load loads config from ~/.angple/config.yaml
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads config from path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.angple/config.yaml
func (c *Config) Save() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes config to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
