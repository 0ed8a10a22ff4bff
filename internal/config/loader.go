package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emocam/emocam/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultBackendURL     = "http://localhost:8080"
	DefaultRequestTimeout = 10 * time.Second
	DefaultPollInterval   = time.Second
	DefaultLogLevel       = "warn"

	// EnvPrefix is prepended to environment overrides, e.g. EMOCAM_BACKEND_URL.
	EnvPrefix = "EMOCAM"
)

// Dir is the per-project configuration directory.
const Dir = ".emocam"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Backend: Backend{
			URL:            DefaultBackendURL,
			RequestTimeout: DefaultRequestTimeout,
		},
		Poll: Poll{
			Interval: DefaultPollInterval,
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// ConfigPath returns the config file location under basePath.
func ConfigPath(basePath string) string {
	return filepath.Join(basePath, Dir, "config.yaml")
}

// EnvFilePath returns the .env file location under basePath.
func EnvFilePath(basePath string) string {
	return filepath.Join(basePath, Dir, ".env")
}

// Loader layers defaults, the config file, the .env file, EMOCAM_* environment
// variables and bound command-line flags, in increasing precedence.
type Loader struct {
	basePath string
	v        *viper.Viper
}

// NewLoader creates a Loader for the config directory under basePath.
func NewLoader(basePath string) *Loader {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults := DefaultConfig()
	v.SetDefault("backend.url", defaults.Backend.URL)
	v.SetDefault("backend.request_timeout", defaults.Backend.RequestTimeout)
	v.SetDefault("poll.interval", defaults.Poll.Interval)
	v.SetDefault("display.open_browser", defaults.Display.OpenBrowser)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.timestamps", defaults.Log.Timestamps)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{basePath: basePath, v: v}
}

// BindFlag makes a command-line flag override the given config key when set.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for %s", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads and validates the configuration.
// A missing config file or .env file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := ApplyEnvFile(l.basePath); err != nil {
		return nil, err
	}

	configPath := ConfigPath(l.basePath)
	if _, err := os.Stat(configPath); err == nil {
		l.v.SetConfigFile(configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfig reads configuration for basePath without flag overrides.
func LoadConfig(basePath string) (*Config, error) {
	return NewLoader(basePath).Load()
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	u, err := url.Parse(cfg.Backend.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ValidationError{Field: "backend.url", Message: "must be an absolute http or https URL"}
	}
	if cfg.Backend.RequestTimeout <= 0 {
		return ValidationError{Field: "backend.request_timeout", Message: "must be positive"}
	}
	if cfg.Poll.Interval <= 0 {
		return ValidationError{Field: "poll.interval", Message: "must be positive"}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: "must be one of debug, info, warn, error"}
	}
	return nil
}

// SaveConfig writes cfg to .emocam/config.yaml under basePath.
func SaveConfig(basePath string, cfg *Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := ConfigPath(basePath)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadEnvFile parses .emocam/.env into a map of key-value pairs.
// Returns an empty map if the file does not exist.
func LoadEnvFile(basePath string) (map[string]string, error) {
	env, err := godotenv.Read(EnvFilePath(basePath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return env, nil
}

// ApplyEnvFile exports the .env entries into the process environment.
// Variables that are already set keep their values.
func ApplyEnvFile(basePath string) error {
	err := godotenv.Load(EnvFilePath(basePath))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
