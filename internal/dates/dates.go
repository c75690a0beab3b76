// Package dates normalizes the date shapes found in shipment documents and price tables
// to the canonical ISO form YYYY-MM-DD.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ISO is the canonical layout every extracted date is normalized to.
const ISO = "2006-01-02"

// Order tells how to read an ambiguous a/b/yyyy date.
type Order int

const (
	DayFirst   Order = iota // 15/03/2024, documents
	MonthFirst              // 3/15/24, spreadsheet exports
)

// Excel serials outside this range are treated as plain numbers (1954-10-03 .. 2119-01-10).
const (
	minSerial = 20000
	maxSerial = 80000
)

var (
	reISO     = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[T ].*)?$`)
	reSlashed = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4}|\d{2})$`)
	reSerial  = regexp.MustCompile(`^\d{5}(?:\.\d+)?$`)
	reWords   = regexp.MustCompile(`(?i)^(\d{1,2})\s+([a-z]+)\s+(\d{4})$`)
	reFind    = regexp.MustCompile(`(?i)\b(\d{4}-\d{1,2}-\d{1,2}|\d{1,2}[/.\-]\d{1,2}[/.\-](?:\d{4}|\d{2})|\d{1,2}\s+(?:gennaio|febbraio|marzo|aprile|maggio|giugno|luglio|agosto|settembre|ottobre|novembre|dicembre)\s+\d{4})\b`)
)

var italianMonths = map[string]time.Month{
	"gennaio": time.January, "febbraio": time.February, "marzo": time.March,
	"aprile": time.April, "maggio": time.May, "giugno": time.June,
	"luglio": time.July, "agosto": time.August, "settembre": time.September,
	"ottobre": time.October, "novembre": time.November, "dicembre": time.December,
}

// Parse reads s as an ISO date, a slashed/dotted a/b/y date, an Italian long date or an
// Excel serial, returning midnight UTC.
func Parse(s string, order Order) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if m := reISO.FindStringSubmatch(s); m != nil {
		return build(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := reSlashed.FindStringSubmatch(s); m != nil {
		a, b, y := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if len(m[3]) == 2 {
			y = expandYear(y)
		}
		day, month := a, b
		if order == MonthFirst {
			day, month = b, a
		}
		// an impossible month means the other reading was meant
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		return build(y, month, day)
	}
	if m := reWords.FindStringSubmatch(s); m != nil {
		if mon, ok := italianMonths[strings.ToLower(m[2])]; ok {
			return build(atoi(m[3]), int(mon), atoi(m[1]))
		}
		return time.Time{}, false
	}
	if reSerial.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, false
		}
		return FromSerial(f)
	}
	return time.Time{}, false
}

// Normalize returns s in ISO form, or "" when it is not a date.
func Normalize(s string, order Order) string {
	t, ok := Parse(s, order)
	if !ok {
		return ""
	}
	return t.Format(ISO)
}

// Find returns the first date in free text, normalized, or "".
func Find(text string, order Order) string {
	for _, m := range reFind.FindAllString(text, -1) {
		if d := Normalize(m, order); d != "" {
			return d
		}
	}
	return ""
}

// FromSerial converts an Excel 1900-system serial day number.
func FromSerial(serial float64) (time.Time, bool) {
	if serial < minSerial || serial > maxSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// DaysBetween is the absolute whole-day distance between two dates.
func DaysBetween(a, b time.Time) int {
	d := int(a.Sub(b).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

func build(y, m, d int) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 || y < 1900 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// reject rollovers such as 31/02
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

func expandYear(y int) int {
	if y < 70 {
		return 2000 + y
	}
	return 1900 + y
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
