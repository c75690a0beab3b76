package llm

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/fuel-docs/internal/core/extract"
	"github.com/joseph-ayodele/fuel-docs/internal/dates"
)

// Note records one value the sanitizer changed or dropped.
type Note struct {
	Path   string
	Item   int // 1-based position of a dropped array item, 0 otherwise
	Reason string
}

func (n Note) String() string { return n.Path + "(" + n.Reason + ")" }

// sanitizer walks a decoded document alongside its schema and coerces it into shape:
// unknown keys, nulls and empty strings are dropped, numbers given as text (decimal
// comma allowed) are parsed and made non-negative, dates are normalized to ISO, and
// array items missing a required property are removed.
type sanitizer struct {
	notes []Note
}

func (s *sanitizer) note(path, reason string) {
	s.notes = append(s.notes, Note{Path: path, Reason: reason})
}

func (s *sanitizer) value(path string, v any, schema map[string]any) (any, bool) {
	if v == nil {
		s.note(path, "null")
		return nil, false
	}
	switch schema["type"] {
	case "object":
		return s.object(path, v, schema)
	case "array":
		return s.array(path, v, schema)
	case "string":
		return s.text(path, v, schema)
	case "number":
		return s.number(path, v)
	case "integer":
		return s.integer(path, v)
	}
	return v, true
}

func (s *sanitizer) object(path string, v any, schema map[string]any) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		s.note(path, "type")
		return nil, false
	}
	props, _ := schema["properties"].(map[string]any)
	out := make(map[string]any, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		p := join(path, k)
		ps, known := props[k].(map[string]any)
		if !known {
			s.note(p, "unknown")
			continue
		}
		if cv, ok := s.value(p, m[k], ps); ok {
			out[k] = cv
		}
	}
	return out, true
}

func (s *sanitizer) array(path string, v any, schema map[string]any) (any, bool) {
	arr, ok := v.([]any)
	if !ok {
		s.note(path, "type")
		return nil, false
	}
	items, _ := schema["items"].(map[string]any)
	out := make([]any, 0, len(arr))
	for i, it := range arr {
		p := path + "[" + strconv.Itoa(i) + "]"
		cv, ok := s.value(p, it, items)
		if !ok {
			continue
		}
		if unmet := unmet(cv, items); len(unmet) > 0 {
			s.notes = append(s.notes, Note{Path: p, Item: i + 1, Reason: "missing " + strings.Join(unmet, ", ")})
			continue
		}
		out = append(out, cv)
	}
	return out, true
}

func (s *sanitizer) text(path string, v any, schema map[string]any) (any, bool) {
	var out string
	switch t := v.(type) {
	case string:
		out = strings.TrimSpace(t)
	case float64:
		out = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		s.note(path, "type")
		return nil, false
	}
	if out == "" {
		s.note(path, "empty")
		return nil, false
	}
	if schema["pattern"] == isoDatePattern {
		iso := dates.Normalize(out, dates.DayFirst)
		if iso == "" {
			s.note(path, "date")
			return nil, false
		}
		out = iso
	}
	return out, true
}

func (s *sanitizer) number(path string, v any) (any, bool) {
	switch t := v.(type) {
	case float64:
		return math.Abs(t), true
	case string:
		if !strings.ContainsAny(t, "0123456789") {
			s.note(path, "empty")
			return nil, false
		}
		return extract.ParseNumber(t), true
	}
	s.note(path, "type")
	return nil, false
}

func (s *sanitizer) integer(path string, v any) (any, bool) {
	switch t := v.(type) {
	case float64:
		if t == math.Trunc(t) && t >= 0 {
			return t, true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n >= 0 {
			return float64(n), true
		}
	}
	s.note(path, "type")
	return nil, false
}

// unmet lists the required properties an item lacks and the numeric properties below
// their minimum.
func unmet(v any, schema map[string]any) []string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var out []string
	required, _ := schema["required"].([]string)
	for _, k := range required {
		if _, ok := m[k]; !ok {
			out = append(out, k)
		}
	}
	props, _ := schema["properties"].(map[string]any)
	for k, pv := range m {
		ps, _ := props[k].(map[string]any)
		f, isNum := pv.(float64)
		if !isNum || ps == nil {
			continue
		}
		if lo, ok := ps["exclusiveMinimum"].(int); ok && f <= float64(lo) {
			out = append(out, k)
		}
		if lo, ok := ps["minimum"].(int); ok && f < float64(lo) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
