package openapi

// Schema is the JSON Schema subset the api module documents.
type Schema struct {
	Ref         string             `json:"$ref,omitempty"`
	Type        string             `json:"type,omitempty"`
	Format      string             `json:"format,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []any              `json:"enum,omitempty"`
	Default     any                `json:"default,omitempty"`
	Example     any                `json:"example,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
	MinLength   *int               `json:"minLength,omitempty"`
	MaxLength   *int               `json:"maxLength,omitempty"`
	Pattern     string             `json:"pattern,omitempty"`
}

func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// PageSchema describes a paginated result whose items are the named schema.
func PageSchema(item string) *Schema {
	integer := func() *Schema { return &Schema{Type: "integer"} }
	boolean := func() *Schema { return &Schema{Type: "boolean"} }
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"data":         {Type: "array", Items: SchemaRef(item)},
			"total":        integer(),
			"page":         integer(),
			"page_size":    integer(),
			"total_pages":  integer(),
			"has_next":     boolean(),
			"has_previous": boolean(),
		},
		Required: []string{"data", "total", "page", "page_size", "total_pages"},
	}
}
