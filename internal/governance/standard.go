// Package governance implements the rule store for governed generation:
// the hard deck of standard definitions, the red-line rules a draft must
// never cross, and the brand personas that shape voice.
package governance

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StandardDefinition is an approved fact the generator may assert verbatim.
// When GuaranteeText is set, any reference to the concept must use it unmodified.
type StandardDefinition struct {
	ID            uuid.UUID `json:"id"`
	Term          string    `json:"term"`
	Definition    string    `json:"definition"`
	GuaranteeText *string   `json:"guarantee_text"`
	Category      string    `json:"category"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasGuarantee reports whether the definition carries non-empty guarantee text.
func (s StandardDefinition) HasGuarantee() bool {
	return s.GuaranteeText != nil && strings.TrimSpace(*s.GuaranteeText) != ""
}

// StandardCommand carries the data needed to create or update a standard definition.
type StandardCommand struct {
	Term          string  `json:"term" yaml:"term"`
	Definition    string  `json:"definition" yaml:"definition"`
	GuaranteeText *string `json:"guarantee_text" yaml:"guarantee_text"`
	Category      string  `json:"category" yaml:"category"`
}

// Validate checks required fields and applies the default category.
func (c *StandardCommand) Validate() error {
	c.Term = strings.TrimSpace(c.Term)
	c.Definition = strings.TrimSpace(c.Definition)
	if c.Term == "" {
		return missing("term")
	}
	if c.Definition == "" {
		return missing("definition")
	}
	if c.Category == "" {
		c.Category = DefaultCategory
	}
	return nil
}
