package governance

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Persona is a brand voice profile folded into the draft prompt.
// VoiceMode holds free-form tone attributes stored as a JSON object.
type Persona struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	CoreIdentity string         `json:"core_identity"`
	VoiceMode    map[string]any `json:"voice_mode"`
	Mantra       *string        `json:"mantra"`
	Directives   *string        `json:"directives"`
	Active       bool           `json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
}

// PersonaCommand carries the data needed to create or update a persona.
type PersonaCommand struct {
	Name         string         `json:"name" yaml:"name"`
	CoreIdentity string         `json:"core_identity" yaml:"core_identity"`
	VoiceMode    map[string]any `json:"voice_mode" yaml:"voice_mode"`
	Mantra       *string        `json:"mantra" yaml:"mantra"`
	Directives   *string        `json:"directives" yaml:"directives"`
}

// Validate checks required fields.
func (c *PersonaCommand) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.CoreIdentity = strings.TrimSpace(c.CoreIdentity)
	if c.Name == "" {
		return missing("name")
	}
	if c.CoreIdentity == "" {
		return missing("core_identity")
	}
	return nil
}
