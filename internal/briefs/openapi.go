package briefs

import (
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/openapi"
)

type spec struct {
	Options   *openapi.Operation
	Executive *openapi.Operation
}

// Spec documents the brief endpoints.
var Spec = spec{
	Options: &openapi.Operation{
		Summary:     "List generation options",
		Description: "Buyer types, pain points, and author modes with display labels.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Generation options", "Catalog"),
		},
	},
	Executive: &openapi.Operation{
		Summary:     "Generate an executive brief",
		Description: "Drafts a brief, audits it against the active governance rules, and rewrites it until clean or the rewrite ceiling is reached.",
		Parameters: []*openapi.Parameter{
			openapi.HeaderParam(UserHeader, "Caller identity recorded in the audit log"),
		},
		RequestBody: openapi.RequestBodyJSON("GenerationRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Generation result", "GenerationResult"),
			400: openapi.ResponseRef("BadRequest"),
			502: openapi.ResponseRef("BadGateway"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
}

func values(opts []engine.Option) []any {
	out := make([]any, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// Schemas returns the component schemas of the brief endpoints.
func (spec) Schemas() map[string]*openapi.Schema {
	catalog := engine.Options()
	minLen := engine.MinContextLength

	option := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"value": {Type: "string"},
			"label": {Type: "string"},
			"mode":  {Type: "string", Description: "Buyer mode a buyer type resolves to"},
		},
	}

	return map[string]*openapi.Schema{
		"GenerationRequest": {
			Type:     "object",
			Required: []string{"buyerType", "painPoint", "projectContext"},
			Properties: map[string]*openapi.Schema{
				"buyerType":      {Type: "string", Enum: values(catalog.BuyerTypes)},
				"painPoint":      {Type: "string", Enum: values(catalog.PainPoints)},
				"projectContext": {Type: "string", MinLength: &minLen, Description: "Factual substrate the brief is grounded in"},
				"authorMode":     {Type: "string", Enum: values(catalog.AuthorModes), Default: string(engine.DefaultAuthorMode)},
				"situation":      {Type: "string", Description: "Deal situation recorded in the audit log"},
			},
		},
		"Violation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"category":   {Type: "string"},
				"rule":       {Type: "string"},
				"correction": {Type: "string"},
				"severity":   {Type: "integer"},
				"attempt":    {Type: "integer", Description: "0 for the initial draft, k after rewrite k"},
			},
		},
		"GenerationResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"finalOutput":      {Type: "string"},
				"initialDraft":     {Type: "string"},
				"violationCount":   {Type: "integer"},
				"violationsFound":  {Type: "array", Items: openapi.SchemaRef("Violation")},
				"rewriteAttempts":  {Type: "integer"},
				"processingTimeMs": {Type: "integer"},
				"buyerMode":        {Type: "string"},
				"authorMode":       {Type: "string"},
				"personaUsed":      {Type: "string"},
				"clean":            {Type: "boolean"},
				"rewriteError":     {Type: "string"},
			},
		},
		"Catalog": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"buyerTypes":  {Type: "array", Items: option},
				"painPoints":  {Type: "array", Items: option},
				"authorModes": {Type: "array", Items: option},
			},
		},
	}
}
