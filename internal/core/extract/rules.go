package extract

import (
	"strconv"
	"strings"
)

// Matcher finds the raw value of a field inside a region of text.
type Matcher func(region string) (string, bool)

// Scope narrows the document to the region a rule is allowed to read. An empty result
// means the region is absent and the rule yields nothing.
type Scope func(doc string) string

// Post cleans a raw match into the field's final string form.
type Post func(raw string) string

// Rule binds one output field to the way it is located and cleaned. Several rules may
// target the same field; the first one producing a non-empty value wins.
type Rule struct {
	Field string
	Scope Scope
	Match Matcher
	Post  Post
}

// Schema is a named rule table. Required lists fields whose absence makes the record
// unusable.
type Schema struct {
	Name     string
	Rules    []Rule
	Required []string
}

// Fields is the result of applying a schema. Missing fields read as "" or 0.
type Fields map[string]string

// String reads a text field, "" when missing.
func (f Fields) String(name string) string { return f[name] }

// Number reads a numeric field. Numeric rules store canonical dot-decimal strings.
func (f Fields) Number(name string) float64 {
	v := f[name]
	if v == "" {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Int reads a numeric field truncated to an integer, 0 when missing.
func (f Fields) Int(name string) int {
	return int(f.Number(name))
}

// Empty reports whether no rule produced anything.
func (f Fields) Empty() bool {
	for _, v := range f {
		if v != "" {
			return false
		}
	}
	return true
}

// Apply runs every rule of s against doc.
func Apply(s Schema, doc string) Fields {
	out := make(Fields, len(s.Rules))
	for _, r := range s.Rules {
		if out[r.Field] != "" {
			continue
		}
		out[r.Field] = r.apply(doc)
	}
	return out
}

func (r Rule) apply(doc string) string {
	region := doc
	if r.Scope != nil {
		region = r.Scope(doc)
		if region == "" {
			return ""
		}
	}
	raw, ok := r.Match(region)
	if !ok {
		return ""
	}
	if r.Post != nil {
		return r.Post(raw)
	}
	return strings.TrimSpace(raw)
}

// Missing lists the required fields that came out empty, in schema order.
func (s Schema) Missing(f Fields) []string {
	var missing []string
	for _, name := range s.Required {
		if strings.TrimSpace(f[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
