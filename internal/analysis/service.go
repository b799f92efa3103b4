// Package analysis implements the trust and consistency layer around
// the reasoning engine: content-addressed memoization of analysis
// results, sanitization of the engine's untrusted output and the
// orchestration of the analyze, fix and dependency-scan flows.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"

	"scanax/internal/llm"
	"scanax/internal/manifest"
	"scanax/internal/models"
	"scanax/internal/patch"
)

// ErrMalformedResult reports that the engine's response was not usable
// structured data. It is never partially trusted; the caller sees a
// generic internal failure.
var ErrMalformedResult = errors.New("reasoning engine returned a malformed result")

// Service orchestrates submissions through the cache, the engine and
// the validators. The cache is the only state shared between concurrent
// requests; identical concurrent misses are not coalesced and may each
// reach the engine.
type Service struct {
	engine       llm.Client
	cache        *Cache
	maxFindings  int
	verifySearch bool
}

// NewService wires an orchestrator.
func NewService(engine llm.Client, cache *Cache, maxFindings int, verifySearch bool) *Service {
	return &Service{
		engine:       engine,
		cache:        cache,
		maxFindings:  maxFindings,
		verifySearch: verifySearch,
	}
}

// Analyze returns validated findings for code, serving repeated
// submissions from the cache within the TTL window. The caller is
// expected to have rejected empty submissions already.
func (s *Service) Analyze(ctx context.Context, code, apiKey string) ([]models.Finding, error) {
	hash := HashContent(code)
	if cached, ok := s.cache.Get(hash); ok {
		logrus.Debugf("Cache hit for %s", hash[:12])
		return cached, nil
	}

	logrus.Infof("Cache miss for %s, querying engine...", hash[:12])
	content, err := s.engine.Complete(ctx, llm.Request{
		System: llm.AnalysisSystemPrompt,
		Prompt: llm.AnalysisPrompt(code),
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	payload, err := decodeResult(content, analysisSchema)
	if err != nil {
		return nil, err
	}
	raw, _ := payload["errors"].([]any)

	findings := SanitizeFindings(raw, CountLines(code), s.maxFindings)
	if dropped := len(raw) - len(findings); dropped > 0 {
		logrus.Debugf("Sanitization dropped %d of %d reported findings", dropped, len(raw))
	}

	s.cache.Put(hash, findings)
	return findings, nil
}

// FixSurgical asks the engine for a minimal fix and normalizes the
// answer into change units. Normalization never fails; an unusable
// answer is an empty change list.
func (s *Service) FixSurgical(ctx context.Context, code, description string, line int, apiKey string) ([]models.ChangeUnit, error) {
	content, err := s.engine.Complete(ctx, llm.Request{
		System: llm.SurgicalFixSystemPrompt,
		Prompt: llm.FixPrompt(code, description, line, LineAt(code, line)),
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	changes := patch.Normalize(content)
	if s.verifySearch {
		verified := patch.FilterLiteral(code, changes)
		if len(verified) < len(changes) {
			logrus.Warnf("Dropped %d change units whose search text is not present in the submission", len(changes)-len(verified))
		}
		changes = verified
	}
	return changes, nil
}

// FixRewrite asks the engine for a full-file rewrite of the fix.
func (s *Service) FixRewrite(ctx context.Context, code, description string, line int, apiKey string) (*models.RewrittenFix, error) {
	content, err := s.engine.Complete(ctx, llm.Request{
		System: llm.RewriteFixSystemPrompt,
		Prompt: llm.FixPrompt(code, description, line, LineAt(code, line)),
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	var fix models.RewrittenFix
	if err := json.Unmarshal([]byte(patch.StripFences(content)), &fix); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	if fix.FixedCode == "" {
		return nil, fmt.Errorf("%w: missing fixed_code", ErrMalformedResult)
	}
	return &fix, nil
}

// ScanDependencies classifies code as a dependency manifest and, when a
// family is recognized, asks the engine for known vulnerabilities in
// the declared dependencies. An unrecognized blob yields an empty
// successful result with no engine call.
func (s *Service) ScanDependencies(ctx context.Context, code, apiKey string) (*models.DependencyScanResponse, error) {
	result := &models.DependencyScanResponse{
		Vulnerabilities: []models.DependencyFinding{},
		ScannedFiles:    []string{},
	}

	class := manifest.Classify(code)
	if class == manifest.ClassNone {
		logrus.Debug("No dependency manifest family recognized, skipping scan")
		return result, nil
	}
	logrus.Infof("Classified submission as %s, scanning dependencies...", class)

	content, err := s.engine.Complete(ctx, llm.Request{
		System: llm.DependencyScanSystemPrompt(string(class)),
		Prompt: llm.DependencyScanPrompt(code),
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	payload, err := decodeResult(content, dependencySchema)
	if err != nil {
		return nil, err
	}
	raw, _ := payload["vulnerabilities"].([]any)

	result.Vulnerabilities = SanitizeDependencyFindings(raw)
	result.ScannedFiles = []string{class.Filename()}
	return result, nil
}

// decodeResult parses an engine response and gates its outer shape
// against the given schema before any field-level coercion happens.
func decodeResult(content string, schema *jsonschema.Schema) (map[string]any, error) {
	var payload any
	if err := json.Unmarshal([]byte(patch.StripFences(content)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	if err := schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, ErrMalformedResult
	}
	return obj, nil
}

// CountLines reports how many lines a submission has; a trailing
// newline does not open an extra line of its own as far as line
// references are concerned.
func CountLines(code string) int {
	trimmed := strings.TrimSuffix(code, "\n")
	return strings.Count(trimmed, "\n") + 1
}

// LineAt returns the text of the 1-based line, or "" when out of range.
func LineAt(code string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(code, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line-1])
}
