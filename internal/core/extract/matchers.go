package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Labeled matches the rest of the line after a label found at the start of a line,
// followed by an optional ':' or '.'. Labels are case-insensitive regular-expression
// fragments tried in the order given. When the label stands alone on its line the next
// non-blank line is taken, unless it carries a label of its own.
func Labeled(labels ...string) Matcher {
	res := make([]*regexp.Regexp, len(labels))
	for i, l := range labels {
		res[i] = regexp.MustCompile(`(?im)^[ \t]*(?:` + l + `)`)
	}
	return func(region string) (string, bool) {
		for _, re := range res {
			for _, loc := range re.FindAllStringIndex(region, -1) {
				if continuesWord(region[:loc[1]], region[loc[1]:]) {
					continue
				}
				if v, ok := valueAfter(region[loc[1]:]); ok {
					return v, true
				}
			}
		}
		return "", false
	}
}

// continuesWord reports whether a label match stopped in the middle of a word.
func continuesWord(before, rest string) bool {
	last, _ := utf8.DecodeLastRuneInString(before)
	next, _ := utf8.DecodeRuneInString(rest)
	return isWordRune(last) && isWordRune(next)
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func valueAfter(rest string) (string, bool) {
	line, after, _ := strings.Cut(rest, "\n")
	line = strings.TrimLeft(line, " \t")
	if strings.HasPrefix(line, ":") || strings.HasPrefix(line, ".") {
		line = line[1:]
	}
	if v := strings.TrimSpace(line); v != "" {
		return v, true
	}
	for _, next := range strings.Split(after, "\n") {
		v := strings.TrimSpace(next)
		if v == "" {
			continue
		}
		if strings.Contains(v, ":") {
			return "", false
		}
		return v, true
	}
	return "", false
}

// Pattern matches the first capture group of re, or the whole match when re has none.
func Pattern(re *regexp.Regexp) Matcher {
	return func(region string) (string, bool) {
		m := re.FindStringSubmatch(region)
		if m == nil {
			return "", false
		}
		v := m[0]
		if len(m) > 1 {
			v = m[1]
		}
		v = strings.TrimSpace(v)
		return v, v != ""
	}
}

// Element matches the text of the element reached by walking path from the outermost
// element inward. Same-named children of other blocks are never read.
func Element(path ...string) Matcher {
	return func(region string) (string, bool) {
		inner, ok := scoped(region, path...)
		if !ok {
			return "", false
		}
		v := text(inner)
		return v, v != ""
	}
}

// FirstOf tries each matcher in order.
func FirstOf(ms ...Matcher) Matcher {
	return func(region string) (string, bool) {
		for _, m := range ms {
			if v, ok := m(region); ok {
				return v, true
			}
		}
		return "", false
	}
}

// Join concatenates the non-empty results of ms with sep.
func Join(sep string, ms ...Matcher) Matcher {
	return func(region string) (string, bool) {
		var parts []string
		for _, m := range ms {
			if v, ok := m(region); ok && v != "" {
				parts = append(parts, v)
			}
		}
		v := strings.Join(parts, sep)
		return v, v != ""
	}
}

// SumOf adds the numeric child of every top-level block element. The result is a
// canonical dot-decimal string.
func SumOf(block string, child ...string) Matcher {
	return func(region string) (string, bool) {
		var sum float64
		found := false
		for _, b := range blocks(region, block) {
			inner, ok := scoped(b, child...)
			if !ok {
				continue
			}
			sum += ParseXMLNumber(text(inner))
			found = true
		}
		if !found {
			return "", false
		}
		return formatNumber(sum), true
	}
}

// Candidates lists every number a strategy can see in a region, in reading order.
type Candidates func(region string) []float64

// Plausible walks the strategies in order and returns the first candidate of at least min.
// It is the fallback chain used for quantities, where small numbers are usually line
// numbers or prices.
func Plausible(min float64, strategies ...Candidates) Matcher {
	return func(region string) (string, bool) {
		for _, s := range strategies {
			for _, n := range s(region) {
				if n >= min {
					return formatNumber(n), true
				}
			}
		}
		return "", false
	}
}

const unitAlternation = `LITRI|LITRES|LITERS|LTS|LT|KGS|KG|L`

var (
	reUnitAdjacent = regexp.MustCompile(`(?i)(\d[\d.,]*)[ \t]?(` + unitAlternation + `)\b`)
	reStructural   = regexp.MustCompile(`(?i)(\d[\d.,]*)[ \t]*[X×*][ \t]*(?:EUR|€)?[ \t]*\d[\d.,]*[ \t]*(?:EUR|€)?[ \t]*(?:/[ \t]*)?(` + unitAlternation + `)\b`)
)

// UnitAdjacent yields numbers written right before a unit of measure ("15.000 LT").
func UnitAdjacent(region string) []float64 {
	var out []float64
	for _, m := range reUnitAdjacent.FindAllStringSubmatch(region, -1) {
		if f, ok := parseToken(m[1]); ok {
			out = append(out, f)
		}
	}
	return out
}

// AfterLabel yields the numbers on the lines following a label, for tabular layouts where
// the value sits under or beside its column heading.
func AfterLabel(labels ...string) Candidates {
	re := regexp.MustCompile(`(?i)(?:` + strings.Join(labels, "|") + `)`)
	return func(region string) []float64 {
		loc := re.FindStringIndex(region)
		if loc == nil {
			return nil
		}
		rest := region[loc[1]:]
		lines := strings.SplitN(rest, "\n", 4)
		if len(lines) > 3 {
			lines = lines[:3]
		}
		return allNumbers(strings.Join(lines, "\n"))
	}
}

// Structural yields the quantity of "qty X unit-price UoM" price lines.
func Structural(region string) []float64 {
	var out []float64
	for _, m := range reStructural.FindAllStringSubmatch(region, -1) {
		if f, ok := parseToken(m[1]); ok {
			out = append(out, f)
		}
	}
	return out
}

// UnitOf yields the canonical unit written after the first unit-adjacent number, falling
// back to the unit of a "qty X unit-price UoM" price line.
func UnitOf(region string) (string, bool) {
	if m := reUnitAdjacent.FindStringSubmatch(region); m != nil {
		return canonicalUnit(m[2]), true
	}
	if m := reStructural.FindStringSubmatch(region); m != nil {
		return canonicalUnit(m[2]), true
	}
	return "", false
}

func canonicalUnit(u string) string {
	switch strings.ToUpper(u) {
	case "L", "LT", "LTS", "LITRI", "LITRES", "LITERS":
		return "LT"
	case "KG", "KGS":
		return "KG"
	}
	return strings.ToUpper(u)
}
