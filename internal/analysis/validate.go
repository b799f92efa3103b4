package analysis

import (
	"math"

	"scanax/internal/models"
)

// DefaultMaxFindings caps how many findings survive sanitization.
const DefaultMaxFindings = 10

type findingKey struct {
	line    int
	message string
}

// SanitizeFindings coerces the untrusted errors array from an engine
// response into findings a caller may see. Per entry: it must be an
// object carrying an integer line within [1, totalLines], a non-empty
// message and a recommendation; anything malformed is skipped silently
// so one bad entry never discards the batch. Across entries: a repeated
// (line, message) pair keeps its first occurrence only, and at most max
// findings are retained, both preserving first-seen order.
func SanitizeFindings(raw []any, totalLines, max int) []models.Finding {
	if max <= 0 {
		max = DefaultMaxFindings
	}

	findings := []models.Finding{}
	seen := make(map[findingKey]struct{})

	for _, item := range raw {
		if len(findings) >= max {
			break
		}

		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		line, ok := intField(obj, "line")
		if !ok || line < 1 || line > totalLines {
			continue
		}
		message, ok := obj["message"].(string)
		if !ok || message == "" {
			continue
		}
		recommendation, ok := obj["recommendation"].(string)
		if !ok {
			continue
		}

		key := findingKey{line: line, message: message}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		finding := models.Finding{
			Line:           line,
			Message:        message,
			Recommendation: recommendation,
		}
		if severity, ok := obj["severity"].(string); ok {
			finding.Severity = severity
		}
		if category, ok := obj["category"].(string); ok {
			finding.Category = category
		}
		if score, ok := obj["score"].(float64); ok {
			finding.Score = score
		}
		if cwe, ok := obj["cwe"].(string); ok {
			finding.CWE = cwe
		}
		findings = append(findings, finding)
	}

	return findings
}

// SanitizeDependencyFindings applies the same tolerant filtering to the
// vulnerabilities array of a dependency-scan response.
func SanitizeDependencyFindings(raw []any) []models.DependencyFinding {
	findings := []models.DependencyFinding{}

	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		pkg, ok := obj["package"].(string)
		if !ok || pkg == "" {
			continue
		}
		version, ok := obj["version"].(string)
		if !ok {
			continue
		}
		message, ok := obj["message"].(string)
		if !ok || message == "" {
			continue
		}

		finding := models.DependencyFinding{
			Package:  pkg,
			Version:  version,
			Severity: "unknown",
			Message:  message,
		}
		if severity, ok := obj["severity"].(string); ok && severity != "" {
			finding.Severity = severity
		}
		if cve, ok := obj["cve"].(string); ok {
			finding.CVE = cve
		}
		if recommendation, ok := obj["recommendation"].(string); ok {
			finding.Recommendation = recommendation
		}
		findings = append(findings, finding)
	}

	return findings
}

// intField extracts an integral JSON number. encoding/json decodes
// every number as float64; a fractional line reference is malformed.
func intField(obj map[string]any, key string) (int, bool) {
	f, ok := obj[key].(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
