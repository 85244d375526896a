package config

import (
	"fmt"
	"os"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/formatting"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/middleware"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/openapi"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
)

// DefaultMaxBodySize caps generation request bodies when max_body_size is unset or invalid.
const DefaultMaxBodySize int64 = 64 * 1024

var corsEnv = &middleware.CORSEnv{
	Enabled:          "BRIEF_CORS_ENABLED",
	Origins:          "BRIEF_CORS_ORIGINS",
	AllowedMethods:   "BRIEF_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "BRIEF_CORS_ALLOWED_HEADERS",
	AllowCredentials: "BRIEF_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "BRIEF_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "BRIEF_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "BRIEF_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "BRIEF_OPENAPI_TITLE",
	Description: "BRIEF_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes, falling back to DefaultMaxBodySize.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil || size <= 0 {
		return DefaultMaxBodySize
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "64KB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("BRIEF_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("BRIEF_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
