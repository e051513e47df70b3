package ingest

import "github.com/google/jsonschema-go/jsonschema"

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// DocumentSchema declares the §6 input document shape. It is a declaration
// only: Validate does not evaluate it, and all input checks are the
// hand-written ones in Validate. jsonschema-go's Schema type documents
// structure and simple bounds well, but the cross-field invariant
// line_end >= line_start needs ordinary Go, so this schema exists for
// self-description and future tool-surface reuse (it mirrors the shape the
// teacher's MCP tools declare their parameters with).
var DocumentSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"repository_info": {
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path":       {Type: "string", MaxLength: intPtr(1000)},
				"name":       {Type: "string"},
				"git_remote": {Type: "string"},
				"git_branch": {Type: "string"},
				"git_commit": {Type: "string"},
			},
			Required: []string{"path"},
		},
		"pattern_matches": {
			Type:     "array",
			MaxItems: intPtr(50000),
			Items: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"file_path":    {Type: "string", MaxLength: intPtr(500)},
					"rule_id":      {Type: "string", MaxLength: intPtr(100)},
					"matched_text": {Type: "string", MaxLength: intPtr(100000)},
					"line_start":   {Type: "integer", Minimum: floatPtr(1.0), Maximum: floatPtr(1000000.0)},
					"line_end":     {Type: "integer", Minimum: floatPtr(1.0), Maximum: floatPtr(1000000.0)},
					"column_start": {Type: "integer"},
					"column_end":   {Type: "integer"},
					"severity":     {Type: "string"},
					"confidence":   {Type: "number", Minimum: floatPtr(0.0), Maximum: floatPtr(1.0)},
				},
				Required: []string{"file_path", "rule_id", "matched_text", "line_start", "line_end"},
			},
		},
	},
	Required: []string{"repository_info", "pattern_matches"},
}
