// Package manifest classifies a raw text blob into a dependency-manifest
// family. It is a routing heuristic for the dependency scan, not a
// parser; a blob that fools the heuristics is an accepted risk.
package manifest

import (
	"regexp"
	"strings"
)

// Class is a recognized dependency-manifest family.
type Class string

const (
	ClassPackageManifest    Class = "package-manifest"
	ClassPythonRequirements Class = "python-requirements"
	ClassGoModule           Class = "go-module"
	ClassRubyGemfile        Class = "ruby-gemfile"
	ClassNone               Class = "none"
)

// requirements lines look like "name==1.2.3", "name>=1.0" or "name<2".
var requirementRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*\s*(==|>=|<=|!=|~=|[=<>])`)

// Classify inspects text and reports the first matching family, in
// fixed priority order. First match wins; there is no scoring.
func Classify(text string) Class {
	if strings.Contains(text, `"dependencies"`) || strings.Contains(text, `"devDependencies"`) {
		return ClassPackageManifest
	}

	lines := strings.Split(text, "\n")

	// Requirements files declare a pin per line; only the first few
	// non-empty lines are considered.
	seen := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		seen++
		if seen > 10 {
			break
		}
		if requirementRe.MatchString(trimmed) {
			return ClassPythonRequirements
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "module ") || strings.HasPrefix(trimmed, "require ") {
			return ClassGoModule
		}
	}

	if strings.HasPrefix(strings.TrimSpace(text), "source") {
		return ClassRubyGemfile
	}
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "gem ") {
			return ClassRubyGemfile
		}
	}

	return ClassNone
}

// Filename reports the canonical file name for the family, used to
// populate scanned_files in scan results.
func (c Class) Filename() string {
	switch c {
	case ClassPackageManifest:
		return "package.json"
	case ClassPythonRequirements:
		return "requirements.txt"
	case ClassGoModule:
		return "go.mod"
	case ClassRubyGemfile:
		return "Gemfile"
	}
	return ""
}
