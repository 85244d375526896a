package prompts

import (
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/openapi"
)

type spec struct {
	List         *openapi.Operation
	Stages       *openapi.Operation
	Find         *openapi.Operation
	Instructions *openapi.Operation
	Spec         *openapi.Operation
	Create       *openapi.Operation
	Update       *openapi.Operation
	Delete       *openapi.Operation
	Activate     *openapi.Operation
	Deactivate   *openapi.Operation
}

func stageParam() *openapi.Parameter {
	stages := engine.Stages()
	enum := make([]any, len(stages))
	for i, s := range stages {
		enum[i] = string(s)
	}
	return openapi.StringPathParam("stage", "Engine stage", enum...)
}

var idParam = openapi.PathParam("id", "Prompt ID")

// Spec documents the prompt override endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary: "List prompt overrides",
		Parameters: append(openapi.PageParams(),
			openapi.QueryParam("stage", "string", "Filter by stage", false),
			openapi.QueryParam("name", "string", "Filter by name (contains)", false),
			openapi.QueryParam("active", "boolean", "Filter by active flag", false),
		),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Paginated prompt overrides",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.SchemaRef("PromptPage")},
				},
			},
		},
	},
	Stages: &openapi.Operation{
		Summary: "List overridable stages",
		Responses: map[int]*openapi.Response{
			200: {Description: "Stage names"},
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find a prompt override",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt override", "Prompt"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Instructions: &openapi.Operation{
		Summary:     "Effective stage instructions",
		Description: "The active override when one exists, otherwise the built-in default.",
		Parameters:  []*openapi.Parameter{stageParam()},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Stage instructions", "StageContent"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Spec: &openapi.Operation{
		Summary:     "Stage output contract",
		Description: "Output contracts are fixed and cannot be overridden.",
		Parameters:  []*openapi.Parameter{stageParam()},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Stage output contract", "StageContent"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create a prompt override",
		RequestBody: openapi.RequestBodyJSON("PromptCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update a prompt override",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("PromptCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete a prompt override",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Activate: &openapi.Operation{
		Summary:     "Activate a prompt override",
		Description: "Deactivates any other active override of the same stage.",
		Parameters:  []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Activated", "Prompt"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Deactivate: &openapi.Operation{
		Summary:    "Deactivate a prompt override",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Deactivated", "Prompt"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the component schemas of the prompt endpoints.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"name":         {Type: "string"},
				"stage":        {Type: "string"},
				"instructions": {Type: "string"},
				"description":  {Type: "string"},
				"active":       {Type: "boolean"},
				"created_at":   {Type: "string", Format: "date-time"},
			},
		},
		"PromptCommand": {
			Type:     "object",
			Required: []string{"name", "stage", "instructions"},
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string"},
				"stage":        {Type: "string"},
				"instructions": {Type: "string"},
				"description":  {Type: "string"},
			},
		},
		"StageContent": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"stage":   {Type: "string"},
				"content": {Type: "string"},
				"source":  {Type: "string", Enum: []any{"default", "override"}},
			},
		},
		"PromptPage": openapi.PageSchema("Prompt"),
	}
}
