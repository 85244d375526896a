package openapi

import "os"

const (
	defaultTitle       = "Brand Engine API"
	defaultDescription = "Governed generation of executive briefs: draft, audit against brand rules, bounded rewrite."
)

// Config carries the document metadata exposed at the spec endpoint.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	Title       string
	Description string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	if env != nil {
		override(&c.Title, env.Title)
		override(&c.Description, env.Description)
	}
	fallback(&c.Title, defaultTitle)
	fallback(&c.Description, defaultDescription)
	return nil
}

func (c *Config) Merge(overlay *Config) {
	mergeString(&c.Title, overlay.Title)
	mergeString(&c.Description, overlay.Description)
}

func override(field *string, key string) {
	if key == "" {
		return
	}
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*field = v
	}
}

func fallback(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

func mergeString(field *string, overlay string) {
	if overlay != "" {
		*field = overlay
	}
}
