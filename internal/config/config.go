// Package config loads the service configuration: config.toml, an optional
// config.<env>.toml overlay, then BRIEF_* environment variables, with each
// subsystem finalizing and validating its own section.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/database"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/llm"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvBriefEnv             = "BRIEF_ENV"
	EnvBriefShutdownTimeout = "BRIEF_SHUTDOWN_TIMEOUT"
	EnvBriefVersion         = "BRIEF_VERSION"
	EnvBriefLogLevel        = "BRIEF_LOG_LEVEL"
	EnvBriefLogFormat       = "BRIEF_LOG_FORMAT"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var databaseEnv = &database.Env{
	Host:            "BRIEF_DB_HOST",
	Port:            "BRIEF_DB_PORT",
	Name:            "BRIEF_DB_NAME",
	User:            "BRIEF_DB_USER",
	Password:        "BRIEF_DB_PASSWORD",
	SSLMode:         "BRIEF_DB_SSL_MODE",
	ApplicationName: "BRIEF_DB_APPLICATION_NAME",
	MaxOpenConns:    "BRIEF_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "BRIEF_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "BRIEF_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "BRIEF_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "BRIEF_STORAGE_CONTAINER_NAME",
	ConnectionString: "BRIEF_STORAGE_CONNECTION_STRING",
}

var llmEnv = &llm.Env{
	Provider:          "BRIEF_LLM_PROVIDER",
	Model:             "BRIEF_LLM_MODEL",
	APIKey:            "BRIEF_LLM_API_KEY",
	BaseURL:           "BRIEF_LLM_BASE_URL",
	Temperature:       "BRIEF_LLM_TEMPERATURE",
	Timeout:           "BRIEF_LLM_TIMEOUT",
	RateLimit:         "BRIEF_LLM_RATE_LIMIT",
	Burst:             "BRIEF_LLM_BURST",
	MaxRetries:        "BRIEF_LLM_MAX_RETRIES",
	InitialBackoff:    "BRIEF_LLM_INITIAL_BACKOFF",
	MaxBackoff:        "BRIEF_LLM_MAX_BACKOFF",
	BackoffMultiplier: "BRIEF_LLM_BACKOFF_MULTIPLIER",
}

var engineEnv = &engine.Env{
	MaxRewrites: "BRIEF_ENGINE_MAX_REWRITES",
	CleanPolicy: "BRIEF_ENGINE_CLEAN_POLICY",
	StepTimeout: "BRIEF_ENGINE_STEP_TIMEOUT",
	AuditMode:   "BRIEF_ENGINE_AUDIT_MODE",
}

// Config is the root of config.toml.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	LLM             llm.Config      `toml:"llm"`
	Engine          engine.Config   `toml:"engine"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
	LogLevel        string          `toml:"log_level"`
	LogFormat       string          `toml:"log_format"`
}

// Env names the deployment environment selected by BRIEF_ENV, "local" when unset.
func (c *Config) Env() string {
	if env := os.Getenv(EnvBriefEnv); env != "" {
		return env
	}
	return "local"
}

// SlogLevel parses LogLevel case-insensitively; unknown levels mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load resolves the configuration from the working directory. A missing
// config.toml is not an error.
func Load() (*Config, error) {
	cfg := &Config{}

	base, err := load(BaseConfigFile)
	switch {
	case err == nil:
		cfg = base
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge applies every non-zero value of overlay.
func (c *Config) Merge(overlay *Config) {
	from := overlay.rootFields()
	for key, field := range c.rootFields() {
		if v := *from[key]; v != "" {
			*field = v
		}
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.LLM.Merge(&overlay.LLM)
	c.Engine.Merge(&overlay.Engine)
}

// rootFields keys the top-level string settings by their environment variable.
func (c *Config) rootFields() map[string]*string {
	return map[string]*string{
		EnvBriefShutdownTimeout: &c.ShutdownTimeout,
		EnvBriefVersion:         &c.Version,
		EnvBriefLogLevel:        &c.LogLevel,
		EnvBriefLogFormat:       &c.LogFormat,
	}
}

var rootDefaults = map[string]string{
	EnvBriefShutdownTimeout: "30s",
	EnvBriefVersion:         "0.1.0",
	EnvBriefLogLevel:        "info",
	EnvBriefLogFormat:       LogFormatText,
}

func (c *Config) finalize() error {
	for key, field := range c.rootFields() {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
		if *field == "" {
			*field = rootDefaults[key]
		}
	}
	if err := c.validate(); err != nil {
		return err
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"api", c.API.Finalize},
		{"llm", func() error { return c.LLM.Finalize(llmEnv) }},
		{"engine", func() error { return c.Engine.Finalize(engineEnv) }},
	}
	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	if write, budget := c.Server.WriteTimeoutDuration(), c.Engine.RunBudget(); write < budget {
		return fmt.Errorf("server write_timeout (%s) must cover a full engine run: (2*max_rewrites+2) * step_timeout = %s", write, budget)
	}
	return nil
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if !slices.Contains([]string{LogFormatText, LogFormatJSON}, c.LogFormat) {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}
	return nil
}

// load decodes path strictly so misspelled keys fail instead of being ignored.
func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("parse %s: unknown keys:\n%s", path, strict.String())
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func overlayPath() string {
	env := os.Getenv(EnvBriefEnv)
	if env == "" {
		return ""
	}
	path := fmt.Sprintf(OverlayConfigPattern, env)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
