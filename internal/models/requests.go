package models

// AnalyzeRequest is the body of POST /analyze and
// POST /scan-dependencies. APIKey optionally overrides the process
// credential for the engine call.
type AnalyzeRequest struct {
	Code   string `json:"code"`
	APIKey string `json:"api_key,omitempty"`
}

// AnalyzeResponse is the body of a successful POST /analyze.
type AnalyzeResponse struct {
	Errors []Finding `json:"errors"`
}

// FixRequest is the body of POST /fix. VulnerabilityLine, when present,
// must reference a line of OriginalCode.
type FixRequest struct {
	OriginalCode             string `json:"original_code" validate:"required"`
	VulnerabilityDescription string `json:"vulnerability_description" validate:"required"`
	VulnerabilityLine        *int   `json:"vulnerability_line,omitempty"`
	APIKey                   string `json:"api_key,omitempty"`
}

// SurgicalFixResponse is the /fix body in surgical mode.
type SurgicalFixResponse struct {
	Changes []ChangeUnit `json:"changes"`
}

// DependencyScanResponse is the body of a successful
// POST /scan-dependencies.
type DependencyScanResponse struct {
	Vulnerabilities []DependencyFinding `json:"vulnerabilities"`
	ScannedFiles    []string            `json:"scanned_files"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
