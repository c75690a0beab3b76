package extract

import (
	"regexp"
	"strings"
)

// Section scopes a text document to the lines after the first match of start, up to the
// next match of end or the end of the document.
func Section(start, end *regexp.Regexp) Scope {
	return func(doc string) string {
		loc := start.FindStringIndex(doc)
		if loc == nil {
			return ""
		}
		rest := doc[loc[1]:]
		if end != nil {
			if e := end.FindStringIndex(rest); e != nil {
				rest = rest[:e[0]]
			}
		}
		return strings.TrimSpace(rest)
	}
}

// Within scopes an XML document to the inner content of the element reached by path.
func Within(path ...string) Scope {
	return func(doc string) string {
		inner, _ := scoped(doc, path...)
		return inner
	}
}

// Block is one repeating line item with the number read from its marker.
type Block struct {
	Number int
	Text   string
}

var (
	reLineMarker = regexp.MustCompile(`(?im)^[ \t]*(?:LINEA|RIGA|LINE)[ \t]*(?:N[R.°]?[ \t]*)?[:.]?[ \t]*(\d+)\b`)
	reLinesEnd   = regexp.MustCompile(`(?im)^[ \t]*(?:DATI[ \t]+)?(?:RIEPILOG|TOTAL[EI]|IMPONIBILE)`)
)

// textBlocks cuts a rendered invoice at its "LINEA N" markers. The last block stops at the
// summary section.
func textBlocks(doc string) []Block {
	locs := reLineMarker.FindAllStringSubmatchIndex(doc, -1)
	out := make([]Block, 0, len(locs))
	for i, loc := range locs {
		end := len(doc)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		} else if e := reLinesEnd.FindStringIndex(doc[loc[1]:]); e != nil {
			end = loc[1] + e[0]
		}
		out = append(out, Block{
			Number: int(ParseNumber(doc[loc[2]:loc[3]])),
			Text:   doc[loc[1]:end],
		})
	}
	return out
}
