package governance

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/repository"
)

//go:embed defaults.yaml
var defaultSeed []byte

// Seed is a declarative governance rule set loaded from YAML.
type Seed struct {
	Standards []StandardCommand `yaml:"standards"`
	RedLines  []RedLineCommand  `yaml:"red_lines"`
	Personas  []PersonaCommand  `yaml:"personas"`
}

// SeedReport counts the records written by a seed run.
type SeedReport struct {
	Standards int `json:"standards"`
	RedLines  int `json:"red_lines"`
	Personas  int `json:"personas"`
}

// DefaultSeed returns the embedded baseline rule set.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads and validates a seed document.
func LoadSeed(r io.Reader) (*Seed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates a YAML seed document.
func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every command in the seed.
func (s *Seed) Validate() error {
	for i := range s.Standards {
		if err := s.Standards[i].Validate(); err != nil {
			return fmt.Errorf("standards[%d]: %w", i, err)
		}
	}
	for i := range s.RedLines {
		if err := s.RedLines[i].Validate(); err != nil {
			return fmt.Errorf("red_lines[%d]: %w", i, err)
		}
	}
	for i := range s.Personas {
		if err := s.Personas[i].Validate(); err != nil {
			return fmt.Errorf("personas[%d]: %w", i, err)
		}
	}
	return nil
}

// Seed upserts every record in a single transaction. Standards are keyed by
// term, personas by name, and red lines by rule content.
func (r *repo) Seed(ctx context.Context, seed *Seed) (*SeedReport, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}

	report, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (SeedReport, error) {
		var rep SeedReport

		for _, c := range seed.Standards {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO standard_definitions(term, definition, guarantee_text, category)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (term) DO UPDATE
				SET definition = EXCLUDED.definition,
					guarantee_text = EXCLUDED.guarantee_text,
					category = EXCLUDED.category,
					active = true`,
				c.Term, c.Definition, c.GuaranteeText, c.Category,
			); err != nil {
				return rep, fmt.Errorf("seed standard %q: %w", c.Term, err)
			}
			rep.Standards++
		}

		for _, c := range seed.RedLines {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO governance_red_lines(rule_content, violation_category, correction_instruction, severity, pattern)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (rule_content) DO UPDATE
				SET violation_category = EXCLUDED.violation_category,
					correction_instruction = EXCLUDED.correction_instruction,
					severity = EXCLUDED.severity,
					pattern = EXCLUDED.pattern,
					active = true`,
				c.RuleContent, c.ViolationCategory, c.CorrectionInstruction, c.Severity, c.Pattern,
			); err != nil {
				return rep, fmt.Errorf("seed red line %q: %w", c.RuleContent, err)
			}
			rep.RedLines++
		}

		for _, c := range seed.Personas {
			voice, err := encodeVoice(c.VoiceMode)
			if err != nil {
				return rep, err
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO brand_personas(name, core_identity, voice_mode, mantra, directives)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (name) DO UPDATE
				SET core_identity = EXCLUDED.core_identity,
					voice_mode = EXCLUDED.voice_mode,
					mantra = EXCLUDED.mantra,
					directives = EXCLUDED.directives,
					active = true,
					updated_at = now()`,
				c.Name, c.CoreIdentity, voice, c.Mantra, c.Directives,
			); err != nil {
				return rep, fmt.Errorf("seed persona %q: %w", c.Name, err)
			}
			rep.Personas++
		}

		return rep, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"governance seeded",
		"standards", report.Standards,
		"red_lines", report.RedLines,
		"personas", report.Personas,
	)
	return &report, nil
}
