// Package config loads the application configuration from an optional YAML
// file, applies environment overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"text-viewer/internal/apperr"
	"text-viewer/internal/logger"
	"text-viewer/internal/storage"
)

// Read modes for the file-open workflow.
const (
	// ReadModeLenient logs read failures and shows empty content.
	ReadModeLenient = "lenient"
	// ReadModeStrict reports read failures to the user and aborts the open.
	ReadModeStrict = "strict"
)

// RecentFilesKey is the preferences key holding the recent file references.
const RecentFilesKey = "recent_files"

// Config represents the application configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Workflow WorkflowConfig `yaml:"workflow"`
	Watch    WatchConfig    `yaml:"watch"`
}

// AppConfig holds window and identity settings.
type AppConfig struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Width, validation.Required, validation.Min(float32(200))),
		validation.Field(&c.Height, validation.Required, validation.Min(float32(200))),
	)
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In(levelNames()...)),
		validation.Field(&c.Format, validation.Required, validation.In("console", "json")),
	)
}

func levelNames() []interface{} {
	names := make([]interface{}, len(logger.LevelNames))
	for i, n := range logger.LevelNames {
		names[i] = n
	}
	return names
}

// StorageConfig selects where the recent files are kept.
//
// Path is only used by the file and sqlite backends. When empty the file is
// placed in the app's storage root.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"TEXTVIEWER_STORAGE_BACKEND"`
	Path    string `yaml:"path" env:"TEXTVIEWER_STORAGE_PATH"`
	Key     string `yaml:"key"`
}

func (c *StorageConfig) Validate() error {
	backends := make([]interface{}, 0, len(storage.Backends))
	for _, b := range storage.Backends {
		backends = append(backends, b)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(backends...)),
		validation.Field(&c.Key, validation.Required),
	)
}

// WorkflowConfig tunes the file-open workflow.
type WorkflowConfig struct {
	ReadMode string `yaml:"read_mode" env:"TEXTVIEWER_READ_MODE"`
}

func (c *WorkflowConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ReadMode, validation.Required, validation.In(ReadModeLenient, ReadModeStrict)),
	)
}

// Strict reports whether read failures abort the workflow.
func (c WorkflowConfig) Strict() bool {
	return c.ReadMode == ReadModeStrict
}

// WatchConfig controls live reload of the displayed file.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled" env:"TEXTVIEWER_WATCH"`
	Debounce time.Duration `yaml:"debounce"`
}

func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	sections := []validation.Validatable{&c.App, &c.Log, &c.Storage, &c.Workflow, &c.Watch}
	names := []string{"app", "log", "storage", "workflow", "watch"}
	for i, s := range sections {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", apperr.ErrInvalidConfig, names[i], err)
		}
	}
	return nil
}

// NewDefaultConfig returns a Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			ID:     "com.textviewer.app",
			Name:   "Text Viewer",
			Width:  900,
			Height: 700,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			Backend: storage.BackendPreferences,
			Key:     RecentFilesKey,
		},
		Workflow: WorkflowConfig{
			ReadMode: ReadModeLenient,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Load reads filename over target, expanding ${VAR} references, then applies
// environment overrides and validates. A missing file is not an error when
// optional is true.
func Load(filename string, optional bool, target *Config) error {
	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", filename, err)
		}
	case errors.Is(err, os.ErrNotExist) && optional:
	default:
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	return Finish(target)
}

// Finish applies environment overrides and validates target.
func Finish(target *Config) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	if os.Getenv("DEBUG") == "1" {
		target.Log.Level = "debug"
	}
	target.Log.Level = strings.ToLower(target.Log.Level)

	if err := target.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
