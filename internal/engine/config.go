package engine

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultMaxRewrites is the rewrite ceiling applied when none is configured.
const DefaultMaxRewrites = 3

// Config holds the generation loop policy.
type Config struct {
	MaxRewrites int         `toml:"max_rewrites"`
	CleanPolicy CleanPolicy `toml:"clean_policy"`
	StepTimeout string      `toml:"step_timeout"`
	AuditMode   AuditMode   `toml:"audit_mode"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	MaxRewrites string
	CleanPolicy string
	StepTimeout string
	AuditMode   string
}

// StepTimeoutDuration returns StepTimeout as a time.Duration.
func (c *Config) StepTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.StepTimeout)
	return d
}

// RunBudget is the longest a run can take when every model call uses its
// full step timeout: one draft, MaxRewrites rewrites and an audit after the
// draft and after each rewrite.
func (c *Config) RunBudget() time.Duration {
	return time.Duration(2*c.MaxRewrites+2) * c.StepTimeoutDuration()
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.MaxRewrites != 0 {
		c.MaxRewrites = overlay.MaxRewrites
	}
	if overlay.CleanPolicy != "" {
		c.CleanPolicy = overlay.CleanPolicy
	}
	if overlay.StepTimeout != "" {
		c.StepTimeout = overlay.StepTimeout
	}
	if overlay.AuditMode != "" {
		c.AuditMode = overlay.AuditMode
	}
}

func (c *Config) loadDefaults() {
	if c.MaxRewrites == 0 {
		c.MaxRewrites = DefaultMaxRewrites
	}
	if c.CleanPolicy == "" {
		c.CleanPolicy = CleanAll
	}
	if c.StepTimeout == "" {
		c.StepTimeout = "2m"
	}
	if c.AuditMode == "" {
		c.AuditMode = AuditComposite
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MaxRewrites != "" {
		if v := os.Getenv(env.MaxRewrites); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxRewrites = n
			}
		}
	}
	if env.CleanPolicy != "" {
		if v := os.Getenv(env.CleanPolicy); v != "" {
			c.CleanPolicy = CleanPolicy(v)
		}
	}
	if env.StepTimeout != "" {
		if v := os.Getenv(env.StepTimeout); v != "" {
			c.StepTimeout = v
		}
	}
	if env.AuditMode != "" {
		if v := os.Getenv(env.AuditMode); v != "" {
			c.AuditMode = AuditMode(v)
		}
	}
}

func (c *Config) validate() error {
	if c.MaxRewrites < 1 {
		return fmt.Errorf("%w: max_rewrites must be at least 1", ErrInvalidConfig)
	}
	if !c.CleanPolicy.valid() {
		return fmt.Errorf("%w: clean_policy must be all or critical, got %q", ErrInvalidConfig, c.CleanPolicy)
	}
	switch c.AuditMode {
	case AuditLLM, AuditPattern, AuditComposite:
	default:
		return fmt.Errorf("%w: audit_mode must be llm, pattern, or composite, got %q", ErrInvalidConfig, c.AuditMode)
	}
	d, err := time.ParseDuration(c.StepTimeout)
	if err != nil {
		return fmt.Errorf("%w: invalid step_timeout: %w", ErrInvalidConfig, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: step_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
