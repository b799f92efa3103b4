// Package patch reduces the reasoning engine's fix responses to a
// single contract: an ordered list of literal search/replace change
// units. Normalization is best-effort and fails soft; a response this
// package cannot make sense of becomes an empty change list, never an
// error.
package patch

import (
	"encoding/json"
	"strings"

	"scanax/internal/models"
)

// Normalize accepts a raw engine response and returns its change units.
// Two shapes are accepted: {"changes": [{search, replace}, ...]} and a
// bare {"search": ..., "replace": ...} object, which is lifted into a
// one-element list. Anything else yields an empty list. Markdown code
// fences around the payload are stripped before parsing.
func Normalize(raw string) []models.ChangeUnit {
	changes := []models.ChangeUnit{}

	var payload map[string]any
	if err := json.Unmarshal([]byte(StripFences(raw)), &payload); err != nil {
		return changes
	}

	if list, ok := payload["changes"].([]any); ok {
		for _, item := range list {
			if unit, ok := asChangeUnit(item); ok {
				changes = append(changes, unit)
			}
		}
		return changes
	}

	if unit, ok := asChangeUnit(payload); ok {
		changes = append(changes, unit)
	}
	return changes
}

func asChangeUnit(v any) (models.ChangeUnit, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.ChangeUnit{}, false
	}
	search, ok := obj["search"].(string)
	if !ok {
		return models.ChangeUnit{}, false
	}
	replace, ok := obj["replace"].(string)
	if !ok {
		return models.ChangeUnit{}, false
	}
	return models.ChangeUnit{Search: search, Replace: replace}, true
}

// FilterLiteral drops change units whose search text does not occur
// literally in the original submission. Used as optional defensive
// validation before a patch is handed to a caller.
func FilterLiteral(original string, changes []models.ChangeUnit) []models.ChangeUnit {
	kept := make([]models.ChangeUnit, 0, len(changes))
	for _, unit := range changes {
		if strings.Contains(original, unit.Search) {
			kept = append(kept, unit)
		}
	}
	return kept
}

// StripFences removes a markdown code fence incidentally wrapped around
// a payload, including a language tag on the opening fence.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the rest of the opening fence line ("json", "go", ...).
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
