package domain

import (
	"encoding/json"
	"fmt"
)

// Observation is one submitted wildlife record: an open mapping from field
// name to value. Records arrive loosely typed and partially filled, so all
// access goes through tolerant accessors rather than struct decoding.
type Observation map[string]any

// Variant selects which statistic battery is computed and how species
// age-group sub-structures are interpreted.
type Variant string

const (
	VariantSightings  Variant = "sightings"
	VariantReportings Variant = "reportings"
)

// ParseVariant validates a variant string from the request path.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantSightings, VariantReportings:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("unknown report variant: %q", s)
	}
}

// Field returns the value at name, or def when the field is absent or null.
// It never panics regardless of the observation's shape.
func (o Observation) Field(name string, def any) any {
	v, ok := o[name]
	if !ok || v == nil {
		return def
	}
	return v
}

// stringField returns the field as a non-empty string, or "" otherwise.
func (o Observation) stringField(name string) string {
	s, _ := o.Field(name, "").(string)
	return s
}

// AsStrings normalizes a value that may be a bare string, a list, or absent
// into an ordered string slice. Legacy records store waterBody and
// weatherCondition as a single string; current records use a list. Both
// forms must flatten into the same multi-set of category occurrences.
// Non-string list elements are dropped.
func AsStrings(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return val
	default:
		return nil
	}
}

// asInt coerces a JSON-decoded numeric value to an int, treating anything
// non-numeric as 0. encoding/json decodes numbers into float64.
func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		return 0
	default:
		return 0
	}
}

// asMap returns the value as an open mapping, or nil when it is anything
// else. Reportings age-group sub-structures are expected to be mappings but
// legacy records sometimes carry scalars there; those contribute nothing.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// speciesEntries returns the observation's species list with non-mapping
// elements dropped.
func (o Observation) speciesEntries() []map[string]any {
	raw, _ := o.Field("species", nil).([]any)
	entries := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m := asMap(item); m != nil {
			entries = append(entries, m)
		}
	}
	return entries
}

// ParseBatch unwraps a request payload into an observation batch. Accepted
// shapes, in order: an object with the array under "result", then "data";
// a bare array; a single object (treated as a one-element batch). Anything
// else is an input error, as is an array element that is not an object.
func ParseBatch(raw []byte) ([]Observation, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}

	var items []any
	switch val := payload.(type) {
	case map[string]any:
		if arr, ok := val["result"].([]any); ok {
			items = arr
		} else if arr, ok := val["data"].([]any); ok {
			items = arr
		} else {
			items = []any{payload}
		}
	case []any:
		items = val
	default:
		return nil, fmt.Errorf("data must be a JSON object or array")
	}

	observations := make([]Observation, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("observation %d is not an object", i)
		}
		observations = append(observations, Observation(obj))
	}
	return observations, nil
}
