package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/fuel-docs/internal/dates"
)

var (
	reSpaces   = regexp.MustCompile(`\s+`)
	reNameCode = regexp.MustCompile(`^(.*?)\s*[(\[]\s*([^)\]]+?)\s*[)\]]\s*$`)
)

func Trim(s string) string {
	return strings.Trim(strings.TrimSpace(s), " ,;:")
}

// Collapse trims and folds internal whitespace runs to one space.
func Collapse(s string) string {
	return Trim(reSpaces.ReplaceAllString(s, " "))
}

func Upper(s string) string {
	return strings.ToUpper(Collapse(s))
}

// NamePart keeps the free-text name of a "NAME, details (CODE)" value.
func NamePart(s string) string {
	name, _ := splitNameCode(s)
	return name
}

// CodePart keeps the delimited code of a "NAME (CODE)" value.
func CodePart(s string) string {
	_, code := splitNameCode(s)
	return code
}

func splitNameCode(s string) (name, code string) {
	s = Collapse(s)
	if m := reNameCode.FindStringSubmatch(s); m != nil {
		s, code = m[1], m[2]
	}
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	return Trim(s), Trim(code)
}

// FirstToken keeps the first whitespace-separated word.
func FirstToken(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return Trim(f[0])
}

// Plate upper-cases a vehicle registration and drops inner spaces and dashes.
func Plate(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if i := strings.IndexAny(s, ",;("); i >= 0 {
		s = s[:i]
	}
	return strings.NewReplacer(" ", "", "-", "").Replace(s)
}

// DayFirstDate normalizes a document date (15/03/2024) or finds one in the value.
func DayFirstDate(s string) string {
	if d := dates.Normalize(s, dates.DayFirst); d != "" {
		return d
	}
	return dates.Find(s, dates.DayFirst)
}

// ISODate normalizes an e-invoice date (2024-03-15).
func ISODate(s string) string {
	return dates.Normalize(s, dates.DayFirst)
}

// Number canonicalizes the first number of a text value.
func Number(s string) string {
	f, ok := findNumber(s)
	if !ok {
		return ""
	}
	return formatNumber(f)
}

// XMLNumber canonicalizes an e-invoice decimal.
func XMLNumber(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return formatNumber(ParseXMLNumber(s))
}

// Chain applies ps left to right.
func Chain(ps ...Post) Post {
	return func(s string) string {
		for _, p := range ps {
			s = p(s)
		}
		return s
	}
}
