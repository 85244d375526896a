package engine

import (
	"encoding/json"
	"slices"
	"strings"
)

// Stage is a model-facing step whose instructions can be overridden.
type Stage string

// Overridable stages.
const (
	StageDraft   Stage = "draft"
	StageRewrite Stage = "rewrite"
)

var stages = []Stage{
	StageDraft,
	StageRewrite,
}

// Stages returns the list of overridable stages.
func Stages() []Stage {
	return stages
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseStage(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}

// Instructions holds per-stage instruction overrides.
// Stages without an override use the built-in default.
type Instructions map[Stage]string

// For returns the override for stage, or the default when none is set.
func (i Instructions) For(stage Stage) string {
	if text, ok := i[stage]; ok && strings.TrimSpace(text) != "" {
		return text
	}
	return defaultInstructions[stage]
}

// DefaultInstructions returns the built-in instructions for a stage.
// Returns ErrInvalidStage if the stage is not recognized.
func DefaultInstructions(stage Stage) (string, error) {
	text, ok := defaultInstructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}

// Spec returns the immutable output contract for a stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
