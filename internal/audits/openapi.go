package audits

import "github.com/CPTV27/Scan2Plan-OS-sub002/pkg/openapi"

type spec struct {
	List  *openapi.Operation
	Find  *openapi.Operation
	Brief *openapi.Operation
}

// Spec documents the audit log endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List audit logs",
		Description: "Newest first. Filters use exact matching.",
		Parameters: append(openapi.PageParams(),
			openapi.QueryParam("buyer_type", "string", "Buyer persona code", false),
			openapi.QueryParam("pain_point", "string", "Pain point", false),
			openapi.QueryParam("author_mode", "string", "Author mode", false),
			openapi.QueryParam("clean", "boolean", "Whether the final draft passed its last audit", false),
			openapi.QueryParam("user_id", "string", "Caller identity", false),
			openapi.QueryParam("created_after", "string", "RFC 3339 lower bound, inclusive", false),
			openapi.QueryParam("created_before", "string", "RFC 3339 upper bound, exclusive", false),
		),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Paginated audit logs",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.SchemaRef("AuditLogPage")},
				},
			},
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find an audit log",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Audit log ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Audit log", "AuditLog"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Brief: &openapi.Operation{
		Summary:     "Download the archived brief",
		Description: "Rendered HTML of the final output. Set download=true for an attachment.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Audit log ID"),
			openapi.QueryParam("download", "boolean", "Serve as an attachment", false),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "HTML brief",
				Content: map[string]*openapi.MediaType{
					"text/html": {Schema: &openapi.Schema{Type: "string"}},
				},
			},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the component schemas of the audit log endpoints.
func (spec) Schemas() map[string]*openapi.Schema {
	str := func() *openapi.Schema { return &openapi.Schema{Type: "string"} }
	integer := func() *openapi.Schema { return &openapi.Schema{Type: "integer"} }

	return map[string]*openapi.Schema{
		"AuditLog": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                 {Type: "string", Format: "uuid"},
				"buyer_type":         str(),
				"buyer_mode":         str(),
				"pain_point":         str(),
				"author_mode":        str(),
				"persona_used":       str(),
				"situation":          str(),
				"project_context":    str(),
				"initial_draft":      str(),
				"final_output":       str(),
				"violation_count":    integer(),
				"violations_found":   {Type: "array", Items: openapi.SchemaRef("Violation")},
				"rewrite_attempts":   integer(),
				"clean":              {Type: "boolean"},
				"rewrite_error":      str(),
				"processing_time_ms": integer(),
				"user_id":            str(),
				"artifact_key":       str(),
				"created_at":         {Type: "string", Format: "date-time"},
			},
		},
		"AuditLogPage": openapi.PageSchema("AuditLog"),
	}
}
