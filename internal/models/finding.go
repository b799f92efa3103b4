package models

// Finding is one reported security issue, anchored to a line of the
// submitted code. Line is always within [1, totalLines] of the
// submission it was derived from by the time it reaches a caller.
type Finding struct {
	Line           int     `json:"line"`
	Message        string  `json:"message"`
	Recommendation string  `json:"recommendation"`
	Severity       string  `json:"severity,omitempty"`
	Category       string  `json:"category,omitempty"`
	Score          float64 `json:"score,omitempty"`
	CWE            string  `json:"cwe,omitempty"`
}

// ChangeUnit is a minimal literal search/replace patch. Search is
// expected to match an exact substring of the original submission; this
// layer only verifies that when configured to.
type ChangeUnit struct {
	Search  string `json:"search"`
	Replace string `json:"replace"`
}

// DependencyFinding is one reported vulnerability in a declared
// dependency.
type DependencyFinding struct {
	Package        string `json:"package"`
	Version        string `json:"version"`
	Severity       string `json:"severity"`
	Message        string `json:"message"`
	CVE            string `json:"cve,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

// RewrittenFix is the full-file fix shape used by the rewrite
// deployment mode.
type RewrittenFix struct {
	FixedCode   string `json:"fixed_code"`
	Explanation string `json:"explanation"`
}
