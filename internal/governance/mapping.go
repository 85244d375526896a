package governance

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/query"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/repository"
)

var standardProjection = query.
	NewProjectionMap("public", "standard_definitions", "s").
	Project("id", "ID").
	Project("term", "Term").
	Project("definition", "Definition").
	Project("guarantee_text", "GuaranteeText").
	Project("category", "Category").
	Project("active", "Active").
	Project("created_at", "CreatedAt")

var redLineProjection = query.
	NewProjectionMap("public", "governance_red_lines", "r").
	Project("id", "ID").
	Project("rule_content", "RuleContent").
	Project("violation_category", "ViolationCategory").
	Project("correction_instruction", "CorrectionInstruction").
	Project("severity", "Severity").
	Project("pattern", "Pattern").
	Project("active", "Active").
	Project("created_at", "CreatedAt")

var personaProjection = query.
	NewProjectionMap("public", "brand_personas", "p").
	Project("id", "ID").
	Project("name", "Name").
	Project("core_identity", "CoreIdentity").
	Project("voice_mode", "VoiceMode").
	Project("mantra", "Mantra").
	Project("directives", "Directives").
	Project("active", "Active").
	Project("created_at", "CreatedAt")

var (
	standardSort = query.SortField{Field: "Term"}
	redLineSort  = []query.SortField{
		{Field: "Severity", Descending: true},
		{Field: "CreatedAt"},
	}
	personaSort = query.SortField{Field: "Name"}
)

// StandardFilters contains optional filtering criteria for standard definition queries.
type StandardFilters struct {
	Category *string `json:"category,omitempty"`
	Term     *string `json:"term,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f StandardFilters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereContains("Term", f.Term).
		WhereEquals("Active", f.Active)
}

// StandardFiltersFromQuery extracts filter values from URL query parameters.
func StandardFiltersFromQuery(values url.Values) StandardFilters {
	var f StandardFilters
	if c := values.Get("category"); c != "" {
		f.Category = &c
	}
	if t := values.Get("term"); t != "" {
		f.Term = &t
	}
	f.Active = boolParam(values, "active")
	return f
}

// RedLineFilters contains optional filtering criteria for red-line queries.
type RedLineFilters struct {
	Category *string `json:"violation_category,omitempty"`
	Severity *int    `json:"severity,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f RedLineFilters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ViolationCategory", f.Category).
		WhereEquals("Severity", f.Severity).
		WhereEquals("Active", f.Active)
}

// RedLineFiltersFromQuery extracts filter values from URL query parameters.
func RedLineFiltersFromQuery(values url.Values) RedLineFilters {
	var f RedLineFilters
	if c := values.Get("violation_category"); c != "" {
		f.Category = &c
	}
	if s := values.Get("severity"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			f.Severity = &v
		}
	}
	f.Active = boolParam(values, "active")
	return f
}

// PersonaFilters contains optional filtering criteria for persona queries.
type PersonaFilters struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f PersonaFilters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("Active", f.Active)
}

// PersonaFiltersFromQuery extracts filter values from URL query parameters.
func PersonaFiltersFromQuery(values url.Values) PersonaFilters {
	var f PersonaFilters
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	f.Active = boolParam(values, "active")
	return f
}

func boolParam(values url.Values, key string) *bool {
	if a := values.Get(key); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			return &v
		}
	}
	return nil
}

func scanStandard(s repository.Scanner) (StandardDefinition, error) {
	var d StandardDefinition
	err := s.Scan(
		&d.ID,
		&d.Term,
		&d.Definition,
		&d.GuaranteeText,
		&d.Category,
		&d.Active,
		&d.CreatedAt,
	)
	return d, err
}

func scanRedLine(s repository.Scanner) (RedLineRule, error) {
	var r RedLineRule
	err := s.Scan(
		&r.ID,
		&r.RuleContent,
		&r.ViolationCategory,
		&r.CorrectionInstruction,
		&r.Severity,
		&r.Pattern,
		&r.Active,
		&r.CreatedAt,
	)
	return r, err
}

func scanPersona(s repository.Scanner) (Persona, error) {
	var (
		p     Persona
		voice []byte
	)
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.CoreIdentity,
		&voice,
		&p.Mantra,
		&p.Directives,
		&p.Active,
		&p.CreatedAt,
	)
	if err != nil {
		return p, err
	}
	if len(voice) > 0 {
		if err := json.Unmarshal(voice, &p.VoiceMode); err != nil {
			return p, fmt.Errorf("decode voice_mode: %w", err)
		}
	}
	return p, nil
}

func encodeVoice(voice map[string]any) (*string, error) {
	if len(voice) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(voice)
	if err != nil {
		return nil, fmt.Errorf("encode voice_mode: %w", err)
	}
	s := string(data)
	return &s, nil
}
