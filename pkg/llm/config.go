package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds language model provider and client policy settings.
type Config struct {
	Provider          string  `toml:"provider"`
	Model             string  `toml:"model"`
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`
	Temperature       float64 `toml:"temperature"`
	Timeout           string  `toml:"timeout"`
	RateLimit         float64 `toml:"rate_limit"`
	Burst             int     `toml:"burst"`
	MaxRetries        int     `toml:"max_retries"`
	InitialBackoff    string  `toml:"initial_backoff"`
	MaxBackoff        string  `toml:"max_backoff"`
	BackoffMultiplier float64 `toml:"backoff_multiplier"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider          string
	Model             string
	APIKey            string
	BaseURL           string
	Temperature       string
	Timeout           string
	RateLimit         string
	Burst             string
	MaxRetries        string
	InitialBackoff    string
	MaxBackoff        string
	BackoffMultiplier string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// InitialBackoffDuration returns InitialBackoff as a time.Duration.
func (c *Config) InitialBackoffDuration() time.Duration {
	d, _ := time.ParseDuration(c.InitialBackoff)
	return d
}

// MaxBackoffDuration returns MaxBackoff as a time.Duration.
func (c *Config) MaxBackoffDuration() time.Duration {
	d, _ := time.ParseDuration(c.MaxBackoff)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.RateLimit != 0 {
		c.RateLimit = overlay.RateLimit
	}
	if overlay.Burst != 0 {
		c.Burst = overlay.Burst
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.InitialBackoff != "" {
		c.InitialBackoff = overlay.InitialBackoff
	}
	if overlay.MaxBackoff != "" {
		c.MaxBackoff = overlay.MaxBackoff
	}
	if overlay.BackoffMultiplier != 0 {
		c.BackoffMultiplier = overlay.BackoffMultiplier
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.Model == "" {
		switch c.Provider {
		case ProviderGemini:
			c.Model = "gemini-1.5-flash"
		default:
			c.Model = "gpt-4o-mini"
		}
	}
	if c.Temperature == 0 {
		c.Temperature = 0.3
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
	if c.RateLimit == 0 {
		c.RateLimit = 5
	}
	if c.Burst == 0 {
		c.Burst = 2
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.InitialBackoff == "" {
		c.InitialBackoff = "1s"
	}
	if c.MaxBackoff == "" {
		c.MaxBackoff = "10s"
	}
	if c.BackoffMultiplier == 0 {
		c.BackoffMultiplier = 2
	}
}

func (c *Config) loadEnv(env *Env) {
	for key, field := range map[string]*string{
		env.Provider:       &c.Provider,
		env.Model:          &c.Model,
		env.APIKey:         &c.APIKey,
		env.BaseURL:        &c.BaseURL,
		env.Timeout:        &c.Timeout,
		env.InitialBackoff: &c.InitialBackoff,
		env.MaxBackoff:     &c.MaxBackoff,
	} {
		if v := lookup(key); v != "" {
			*field = v
		}
	}
	for key, field := range map[string]*float64{
		env.Temperature:       &c.Temperature,
		env.RateLimit:         &c.RateLimit,
		env.BackoffMultiplier: &c.BackoffMultiplier,
	} {
		if f, err := strconv.ParseFloat(lookup(key), 64); err == nil {
			*field = f
		}
	}
	for key, field := range map[string]*int{
		env.Burst:      &c.Burst,
		env.MaxRetries: &c.MaxRetries,
	} {
		if n, err := strconv.Atoi(lookup(key)); err == nil {
			*field = n
		}
	}
}

// lookup reads key from the environment; an empty key is never set.
func lookup(key string) string {
	if key == "" {
		return ""
	}
	return os.Getenv(key)
}

func (c *Config) validate() error {
	if c.Provider != ProviderOpenAI && c.Provider != ProviderGemini {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive")
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}
	if c.BackoffMultiplier < 1 {
		return fmt.Errorf("backoff_multiplier must be at least 1")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.InitialBackoff); err != nil {
		return fmt.Errorf("invalid initial_backoff: %w", err)
	}
	if _, err := time.ParseDuration(c.MaxBackoff); err != nil {
		return fmt.Errorf("invalid max_backoff: %w", err)
	}
	return nil
}
