package governance

import "github.com/CPTV27/Scan2Plan-OS-sub002/pkg/openapi"

// resourceSpec documents the CRUD endpoints shared by every governance resource.
type resourceSpec struct {
	List   *openapi.Operation
	Active *openapi.Operation
	Find   *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

func newResourceSpec(noun, schema string, filters ...*openapi.Parameter) resourceSpec {
	id := openapi.PathParam("id", noun+" ID")
	command := schema + "Command"

	return resourceSpec{
		List: &openapi.Operation{
			Summary:    "List " + noun + "s",
			Parameters: append(openapi.PageParams(), filters...),
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Paginated " + noun + "s",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: openapi.PageSchema(schema)},
					},
				},
			},
		},
		Active: &openapi.Operation{
			Summary: "List active " + noun + "s as the engine sees them",
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Active " + noun + "s",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef(schema)}},
					},
				},
			},
		},
		Find: &openapi.Operation{
			Summary:    "Find a " + noun,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON(noun, schema),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Create: &openapi.Operation{
			Summary:     "Create a " + noun,
			RequestBody: openapi.RequestBodyJSON(command, true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created", schema),
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
		Update: &openapi.Operation{
			Summary:     "Update a " + noun,
			Parameters:  []*openapi.Parameter{id},
			RequestBody: openapi.RequestBodyJSON(command, true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Updated", schema),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a " + noun,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

type spec struct {
	Standards  resourceSpec
	RedLines   resourceSpec
	Personas   resourceSpec
	Activate   *openapi.Operation
	Deactivate *openapi.Operation
	Snapshot   *openapi.Operation
}

// Spec documents the governance endpoints.
var Spec = spec{
	Standards: newResourceSpec("standard definition", "StandardDefinition",
		openapi.QueryParam("category", "string", "Filter by category", false),
		openapi.QueryParam("term", "string", "Filter by term (contains)", false),
		openapi.QueryParam("active", "boolean", "Filter by active flag", false),
	),
	RedLines: newResourceSpec("red-line rule", "RedLineRule",
		openapi.QueryParam("violation_category", "string", "Filter by category", false),
		openapi.QueryParam("severity", "integer", "Filter by severity", false),
		openapi.QueryParam("active", "boolean", "Filter by active flag", false),
	),
	Personas: newResourceSpec("persona", "Persona",
		openapi.QueryParam("name", "string", "Filter by name (contains)", false),
		openapi.QueryParam("active", "boolean", "Filter by active flag", false),
	),
	Activate: &openapi.Operation{
		Summary:    "Activate a red-line rule",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "red-line rule ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Activated", "RedLineRule"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Deactivate: &openapi.Operation{
		Summary:    "Deactivate a red-line rule",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "red-line rule ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Deactivated", "RedLineRule"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Snapshot: &openapi.Operation{
		Summary:     "Active rule snapshot",
		Description: "The rule set a generation would load right now.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Rule snapshot", "RuleSet"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
}

// Schemas returns the component schemas of the governance endpoints.
func (spec) Schemas() map[string]*openapi.Schema {
	str := func(desc string) *openapi.Schema { return &openapi.Schema{Type: "string", Description: desc} }
	minSev, maxSev := float64(MinSeverity), float64(CriticalSeverity)
	severity := &openapi.Schema{Type: "integer", Minimum: &minSev, Maximum: &maxSev, Default: MinSeverity}
	record := func(props map[string]*openapi.Schema) *openapi.Schema {
		all := map[string]*openapi.Schema{
			"id":         {Type: "string", Format: "uuid"},
			"active":     {Type: "boolean"},
			"created_at": {Type: "string", Format: "date-time"},
		}
		for k, v := range props {
			all[k] = v
		}
		return &openapi.Schema{Type: "object", Properties: all}
	}

	standard := map[string]*openapi.Schema{
		"term":           str("Short identifier"),
		"definition":     str("Canonical factual statement"),
		"guarantee_text": str("Exact phrase required when the concept is referenced"),
		"category":       {Type: "string", Default: DefaultCategory},
	}
	redLine := map[string]*openapi.Schema{
		"rule_content":           str("Forbidden pattern or claim"),
		"violation_category":     str("Reporting category"),
		"correction_instruction": str("How to fix a violation"),
		"severity":               severity,
		"pattern":                str("Optional regular expression for deterministic matching"),
	}
	persona := map[string]*openapi.Schema{
		"name":          str("Matched case-insensitively against the author mode"),
		"core_identity": str(""),
		"voice_mode":    {Type: "object"},
		"mantra":        str(""),
		"directives":    str(""),
	}

	return map[string]*openapi.Schema{
		"StandardDefinition":        record(standard),
		"StandardDefinitionCommand": {Type: "object", Required: []string{"term", "definition"}, Properties: standard},
		"RedLineRule":               record(redLine),
		"RedLineRuleCommand":        {Type: "object", Required: []string{"rule_content", "violation_category", "correction_instruction"}, Properties: redLine},
		"Persona":                   record(persona),
		"PersonaCommand":            {Type: "object", Required: []string{"name", "core_identity"}, Properties: persona},
		"RuleSet": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"standards": {Type: "array", Items: openapi.SchemaRef("StandardDefinition")},
				"red_lines": {Type: "array", Items: openapi.SchemaRef("RedLineRule")},
				"personas":  {Type: "array", Items: openapi.SchemaRef("Persona")},
			},
		},
	}
}
