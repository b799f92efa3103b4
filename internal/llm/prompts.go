package llm

import "fmt"

// Fixed prompt contracts. The response shapes here are what the
// validation and normalization layers downstream are built against;
// changing a contract means changing those layers too.

// AnalysisSystemPrompt instructs the engine to report findings as a
// JSON object with an "errors" array.
const AnalysisSystemPrompt = `ACT AS A SENIOR SECURITY ENGINEER.
Your task is to analyze the provided code for security vulnerabilities (SQL Injection, XSS, Hardcoded Secrets, etc.).

OUTPUT RULES:
1. Return ONLY a JSON object.
2. The object must contain a key "errors" which is an array of objects.
3. Each error object must have: "line" (number), "message" (string), and "recommendation" (string).
4. Each error object may also have: "severity" (string), "category" (string), "score" (number), "cwe" (string).

FORMAT EXAMPLE:
{
  "errors": [
    {"line": 5, "message": "Hardcoded API Key", "recommendation": "Load the key from an environment variable.", "severity": "high", "cwe": "CWE-798"}
  ]
}`

// SurgicalFixSystemPrompt instructs the engine to answer with literal
// search/replace change units.
const SurgicalFixSystemPrompt = `ACT AS A SENIOR SECURITY ENGINEER.
You will be given source code and a description of one vulnerability in it. Produce a minimal fix.

OUTPUT RULES:
1. Return ONLY a JSON object.
2. The object must contain a key "changes" which is an array of objects.
3. Each change object must have: "search" (string) and "replace" (string).
4. Each "search" value must be an exact literal substring of the original code.

FORMAT EXAMPLE:
{
  "changes": [
    {"search": "query = \"SELECT * FROM users WHERE id=\" + id", "replace": "query = \"SELECT * FROM users WHERE id=?\""}
  ]
}`

// RewriteFixSystemPrompt instructs the engine to answer with a full
// corrected file and an explanation.
const RewriteFixSystemPrompt = `ACT AS A SENIOR SECURITY ENGINEER.
You will be given source code and a description of one vulnerability in it. Rewrite the code with the vulnerability fixed.

OUTPUT RULES:
1. Return ONLY a JSON object.
2. The object must contain: "fixed_code" (string, the complete corrected code) and "explanation" (string, what was changed and why).`

// AnalysisPrompt wraps a code submission for the analysis contract.
func AnalysisPrompt(code string) string {
	return fmt.Sprintf("Analyze this code:\n\n%s", code)
}

// FixPrompt wraps a code submission and vulnerability description. When
// line is non-zero the referenced line is called out to anchor the fix.
func FixPrompt(code, description string, line int, lineText string) string {
	if line > 0 {
		return fmt.Sprintf("Vulnerability: %s\nIt is located at line %d: %s\n\nOriginal code:\n\n%s",
			description, line, lineText, code)
	}
	return fmt.Sprintf("Vulnerability: %s\n\nOriginal code:\n\n%s", description, code)
}

// DependencyScanSystemPrompt builds the dependency-scan contract for a
// recognized manifest family.
func DependencyScanSystemPrompt(family string) string {
	return fmt.Sprintf(`ACT AS A SOFTWARE SUPPLY CHAIN SECURITY EXPERT.
You will be given the contents of a %s dependency manifest. Report known vulnerabilities in the declared dependencies.

OUTPUT RULES:
1. Return ONLY a JSON object.
2. The object must contain a key "vulnerabilities" which is an array of objects.
3. Each object must have: "package" (string), "version" (string), "severity" (string), "message" (string).
4. Each object may also have: "cve" (string) and "recommendation" (string).
5. If no vulnerabilities are known, return {"vulnerabilities": []}.`, family)
}

// DependencyScanPrompt wraps manifest contents for the scan contract.
func DependencyScanPrompt(contents string) string {
	return fmt.Sprintf("Scan this dependency manifest:\n\n%s", contents)
}
