package extract

import (
	"html"
	"regexp"
	"strings"
	"sync"
)

var tagPatterns sync.Map // element name -> *regexp.Regexp

// tagPattern matches opening, closing and self-closing tags of one element name, with or
// without a namespace prefix.
func tagPattern(name string) *regexp.Regexp {
	if re, ok := tagPatterns.Load(name); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`<(/?)(?:[A-Za-z_][\w.\-]*:)?` + regexp.QuoteMeta(name) + `(?:\s[^>]*?)?(/?)>`)
	actual, _ := tagPatterns.LoadOrStore(name, re)
	return actual.(*regexp.Regexp)
}

// blocks returns the inner content of every top-level occurrence of the element in doc,
// in document order. Nested same-name elements stay inside their enclosing block.
func blocks(doc, name string) []string {
	re := tagPattern(name)
	var out []string
	depth, start := 0, 0
	for _, loc := range re.FindAllStringSubmatchIndex(doc, -1) {
		closing := loc[3] > loc[2]
		selfClosing := loc[5] > loc[4]
		switch {
		case selfClosing:
			if depth == 0 {
				out = append(out, "")
			}
		case !closing:
			if depth == 0 {
				start = loc[1]
			}
			depth++
		default:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				out = append(out, doc[start:loc[0]])
			}
		}
	}
	return out
}

// scoped walks path from the outermost element inward, keeping only the first block at
// each step. It reports false when any element is absent.
func scoped(doc string, path ...string) (string, bool) {
	cur := doc
	for _, name := range path {
		bs := blocks(cur, name)
		if len(bs) == 0 {
			return "", false
		}
		cur = bs[0]
	}
	return cur, true
}

// text returns the character data of a leaf element with entities decoded.
func text(inner string) string {
	inner = strings.TrimSpace(inner)
	if strings.HasPrefix(inner, "<![CDATA[") && strings.HasSuffix(inner, "]]>") {
		return strings.TrimSpace(inner[len("<![CDATA[") : len(inner)-len("]]>")])
	}
	return strings.TrimSpace(html.UnescapeString(inner))
}

// looksLikeXML reports whether doc is markup rather than rendered text.
func looksLikeXML(doc string) bool {
	doc = strings.TrimSpace(strings.TrimPrefix(doc, "\ufeff"))
	return strings.HasPrefix(doc, "<")
}
