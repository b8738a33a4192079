package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	API        APIConfig        `yaml:"api"`
	Session    SessionConfig    `yaml:"session"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Validation ValidationConfig `yaml:"validation"`
	Exports    ExportConfig     `yaml:"exports"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type APIConfig struct {
	BaseURL        string             `yaml:"base_url"`
	TimeoutSeconds int                `yaml:"timeout_seconds"`
	RateLimit      APIRateLimitConfig `yaml:"rate_limit"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

const (
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
)

type SessionConfig struct {
	Backend  string `yaml:"backend"`
	FilePath string `yaml:"file_path"`
	// Fallback keeps the session usable in memory when the redis
	// backend is unreachable.
	Fallback bool `yaml:"fallback"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type ValidationConfig struct {
	MinPasswordLen     int  `yaml:"min_password_len"`
	RequirePrice       bool `yaml:"require_price"`
	RequireDescription bool `yaml:"require_description"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

// Load reads the YAML config at configPath with environment expansion.
// A missing file yields the defaults, so the CLI works out of the box.
func Load(configPath string) (*Config, error) {
	// .env is optional; it only seeds os.ExpandEnv below.
	_ = godotenv.Load()

	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		expanded := []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(expanded, &config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api base_url is required")
	}

	switch c.Session.Backend {
	case SessionBackendFile:
		if c.Session.FilePath == "" {
			return errors.New("session file_path is required for the file backend")
		}
	case SessionBackendRedis:
		if c.Redis.Address == "" {
			return errors.New("redis address is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}

	if c.Validation.MinPasswordLen < 1 {
		return errors.New("min_password_len must be positive")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "bookctl"
	}
	if c.App.Environment == "" {
		c.App.Environment = "local"
	}

	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:5000"
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 10
	}
	if c.API.RateLimit.RPS == 0 {
		c.API.RateLimit.RPS = 5
	}
	if c.API.RateLimit.Burst == 0 {
		c.API.RateLimit.Burst = 10
	}

	if c.Session.Backend == "" {
		c.Session.Backend = SessionBackendFile
	}
	if c.Session.FilePath == "" {
		c.Session.FilePath = defaultSessionPath()
	}

	if c.Validation.MinPasswordLen == 0 {
		c.Validation.MinPasswordLen = 6
	}

	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bookctl/session.json"
	}
	return home + "/.bookctl/session.json"
}
