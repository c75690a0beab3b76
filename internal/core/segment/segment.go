// Package segment splits a multi-order batch manifest into one text segment per order.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

var (
	// reBoundary finds lines introducing a new order: "ORDINE N. 2024-001", "ORDINE NUMERO 5",
	// "ORDINE N° 17". Without a number marker the id must follow directly ("ORDINE 123",
	// "ORDINE: 124"); group 1 then marks where it starts.
	reBoundary = regexp.MustCompile(`(?m)^[ \t]*ORDINE[ \t]*(?:(?:NUM(?:ERO)?\.?|N[R.°]?)[ \t]*[:.]?[ \t]*|[:.]?[ \t]*(\d))`)
	reOrderID  = regexp.MustCompile(`^(\d[\d\-]*\d|\d)(?:[^\w\-]|$)`)
)

// Segment is one order's slice of the manifest, boundary line included.
type Segment struct {
	Index   int
	OrderID string
	Text    string
}

// Result is a split manifest. Header is the text before the first boundary.
type Result struct {
	Header      string
	Segments    []Segment
	Diagnostics []entity.Diagnostic
}

// Split cuts text at every order boundary, keeping each boundary with the segment that
// follows it. Segments whose id cannot be read are dropped with a diagnostic. Source
// order is preserved and nothing is merged.
func Split(text string) Result {
	locs := reBoundary.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return Result{Header: strings.TrimSpace(text)}
	}

	res := Result{Header: strings.TrimSpace(text[:locs[0][0]])}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		seg := strings.TrimSpace(text[loc[0]:end])
		id := OrderID(text[idStart(loc):end])
		if id == "" {
			line, _, _ := strings.Cut(seg, "\n")
			res.Diagnostics = append(res.Diagnostics, entity.Diagnostic{
				Segment: i + 1,
				Message: fmt.Sprintf("unreadable order id in %q", line),
			})
			continue
		}
		res.Segments = append(res.Segments, Segment{Index: i + 1, OrderID: id, Text: seg})
	}
	return res
}

// OrderID reads the numeric/hyphenated id at the start of s, or "".
func OrderID(s string) string {
	m := reOrderID.FindStringSubmatch(strings.TrimLeft(s, " \t"))
	if m == nil {
		return ""
	}
	return m[1]
}

// BoundaryID re-reads the order id of a segment from its boundary line.
func BoundaryID(segment string) string {
	loc := reBoundary.FindStringSubmatchIndex(segment)
	if loc == nil {
		return ""
	}
	return OrderID(segment[idStart(loc):])
}

// idStart is where the order id begins after a boundary match.
func idStart(loc []int) int {
	if loc[2] >= 0 {
		return loc[2]
	}
	return loc[1]
}
