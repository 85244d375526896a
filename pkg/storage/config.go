package storage

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const defaultContainer = "briefs"

// Azure container naming: lowercase letters, digits and single hyphens,
// starting and ending with a letter or digit.
var containerName = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Config points at an Azure Blob Storage account. Leaving ConnectionString
// empty turns archiving off.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
}

type Env struct {
	ContainerName    string
	ConnectionString string
}

func (c *Config) Enabled() bool { return c.ConnectionString != "" }

func (c *Config) Finalize(env *Env) error {
	if env != nil {
		overrideFromEnv(&c.ContainerName, env.ContainerName)
		overrideFromEnv(&c.ConnectionString, env.ConnectionString)
	}
	if c.ContainerName == "" {
		c.ContainerName = defaultContainer
	}

	if n := len(c.ContainerName); n < 3 || n > 63 {
		return fmt.Errorf("container_name must be 3-63 characters: %q", c.ContainerName)
	}
	if !containerName.MatchString(c.ContainerName) {
		return fmt.Errorf("container_name must be lowercase alphanumeric or hyphen: %q", c.ContainerName)
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	c.ContainerName = cmpOr(overlay.ContainerName, c.ContainerName)
	c.ConnectionString = cmpOr(overlay.ConnectionString, c.ConnectionString)
}

func cmpOr(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func overrideFromEnv(dst *string, key string) {
	if key == "" {
		return
	}
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
