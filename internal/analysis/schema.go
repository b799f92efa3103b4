package analysis

import "github.com/santhosh-tekuri/jsonschema/v5"

// Outer-shape schemas for untrusted engine payloads. A payload that
// fails here is fundamentally unusable and is rejected whole; per-entry
// problems inside the arrays are tolerated and filtered field by field
// during sanitization instead.

const analysisResultSchema = `{
	"type": "object",
	"required": ["errors"],
	"properties": {
		"errors": {"type": "array"}
	}
}`

const dependencyResultSchema = `{
	"type": "object",
	"required": ["vulnerabilities"],
	"properties": {
		"vulnerabilities": {"type": "array"},
		"scanned_files": {"type": "array"}
	}
}`

var (
	analysisSchema   = jsonschema.MustCompileString("analysis-result.schema.json", analysisResultSchema)
	dependencySchema = jsonschema.MustCompileString("dependency-result.schema.json", dependencyResultSchema)
)
