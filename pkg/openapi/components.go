package openapi

import "maps"

// Components holds the reusable schemas and responses referenced by operations.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

// Shared error responses. Each maps to one class of engine or store failure.
var errorResponses = map[string]string{
	"BadRequest":         "Invalid request",
	"NotFound":           "Resource not found",
	"Conflict":           "Resource conflict (duplicate name)",
	"ServiceUnavailable": "A required backing store is unavailable",
	"BadGateway":         "The language model provider failed",
}

// NewComponents returns the components every document starts with.
func NewComponents() *Components {
	c := &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:       "object",
				Properties: map[string]*Schema{"error": {Type: "string"}},
				Required:   []string{"error"},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "1-based page number", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Case-insensitive substring filter"},
					"sort":      {Type: "string", Description: "Comma-separated fields, '-' prefix for descending", Example: "-created_at"},
				},
			},
		},
		Responses: make(map[string]*Response, len(errorResponses)),
	}
	for name, desc := range errorResponses {
		c.Responses[name] = &Response{Description: desc, Content: jsonContent(SchemaRef("Error"))}
	}
	return c
}

// PageParams are the query parameters accepted by every list endpoint.
func PageParams() []*Parameter {
	return []*Parameter{
		QueryParam("page", "integer", "1-based page number", false),
		QueryParam("page_size", "integer", "Results per page", false),
		QueryParam("search", "string", "Case-insensitive substring filter", false),
		QueryParam("sort", "string", "Comma-separated fields, '-' prefix for descending", false),
	}
}

func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
