// Package prompts manages instruction overrides for the model-facing stages
// of the generation engine. At most one override per stage is active; a stage
// without an active override uses the engine's built-in instructions. Output
// contracts are never overridable.
package prompts

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
)

// Prompt is a named instruction override for an engine stage.
type Prompt struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Stage        engine.Stage `json:"stage"`
	Instructions string       `json:"instructions"`
	Description  *string      `json:"description"`
	Active       bool         `json:"active"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Command carries the data needed to create or update a prompt override.
type Command struct {
	Name         string       `json:"name"`
	Stage        engine.Stage `json:"stage"`
	Instructions string       `json:"instructions"`
	Description  *string      `json:"description"`
}

// Validate checks required fields. Stage is validated when decoded.
func (c *Command) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return missing("name")
	}
	if c.Stage == "" {
		return engine.ErrInvalidStage
	}
	if strings.TrimSpace(c.Instructions) == "" {
		return missing("instructions")
	}
	return nil
}

// StageContent is the response type for stage-scoped content endpoints.
type StageContent struct {
	Stage   engine.Stage `json:"stage"`
	Content string       `json:"content"`
	Source  string       `json:"source,omitempty"`
}
