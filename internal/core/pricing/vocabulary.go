package pricing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/joseph-ayodele/fuel-docs/constants"
)

// Fold upper-cases s, strips diacritics and reduces punctuation to single spaces, so
// "Società Petrolifera  S.p.A." and "SOCIETA PETROLIFERA S P A" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	var b strings.Builder
	space := false
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
			space = false
			continue
		}
		space = true
	}
	return b.String()
}

// Predicate tests a folded name.
type Predicate func(folded string) bool

// Contains matches when any of subs occurs anywhere in the name.
func Contains(subs ...string) Predicate {
	for i := range subs {
		subs[i] = Fold(subs[i])
	}
	return func(folded string) bool {
		for _, s := range subs {
			if strings.Contains(folded, s) {
				return true
			}
		}
		return false
	}
}

// Word matches when any of words occurs as a whole word, for short abbreviations that
// would otherwise hit inside longer names.
func Word(words ...string) Predicate {
	for i := range words {
		words[i] = " " + Fold(words[i]) + " "
	}
	return func(folded string) bool {
		padded := " " + folded + " "
		for _, w := range words {
			if strings.Contains(padded, w) {
				return true
			}
		}
		return false
	}
}

// Prefix matches names starting with any of ps.
func Prefix(ps ...string) Predicate {
	for i := range ps {
		ps[i] = Fold(ps[i])
	}
	return func(folded string) bool {
		for _, p := range ps {
			if strings.HasPrefix(folded, p) {
				return true
			}
		}
		return false
	}
}

// Alias maps every name accepted by Match to Canonical.
type Alias struct {
	Canonical string
	Match     Predicate
}

// Vocabulary is an ordered alias list; the first match wins.
type Vocabulary []Alias

func (v Vocabulary) Normalize(raw string) (string, bool) {
	folded := Fold(raw)
	if folded == "" {
		return "", false
	}
	for _, a := range v {
		if a.Match(folded) {
			return a.Canonical, true
		}
	}
	return "", false
}

// Canonicals lists the distinct canonical names in priority order.
func (v Vocabulary) Canonicals() []string {
	seen := make(map[string]bool, len(v))
	var out []string
	for _, a := range v {
		if !seen[a.Canonical] {
			seen[a.Canonical] = true
			out = append(out, a.Canonical)
		}
	}
	return out
}

// Suppliers recognizes the fuel suppliers quoted in the price table.
var Suppliers = Vocabulary{
	{Canonical: "ENI", Match: Prefix("ENILIVE", "ENI SPA", "ENI S P A")},
	{Canonical: "ENI", Match: Word("ENI", "AGIP")},
	{Canonical: "IP", Match: Contains("ITALIANA PETROLI", "API ANONIMA PETROLI")},
	{Canonical: "Q8", Match: Contains("KUWAIT PETROLEUM")},
	{Canonical: "Q8", Match: Word("Q8", "Q 8")},
	{Canonical: "ESSO", Match: Contains("ESSO ITALIANA", "EXXON")},
	{Canonical: "ESSO", Match: Word("ESSO")},
	{Canonical: "TAMOIL", Match: Contains("TAMOIL")},
	{Canonical: "SARAS", Match: Word("SARAS")},
	{Canonical: "REPSOL", Match: Contains("REPSOL")},
	{Canonical: "IP", Match: Word("IP", "API")},
}

// Products maps product descriptions to canonical product types. Agricultural diesel and
// HVO come before plain diesel because their descriptions also say "gasolio"/"diesel".
var Products = Vocabulary{
	{Canonical: string(constants.AgriDiesel), Match: Contains("AGRICOL", "AGRI DIESEL", "GASOLIO AGR")},
	{Canonical: string(constants.HVO), Match: Contains("HVO", "HYDROTREATED", "IDROTRATTATO")},
	{Canonical: string(constants.Gasoline), Match: Contains("BENZINA", "GASOLINE", "SENZA PIOMBO", "UNLEADED")},
	{Canonical: string(constants.Gasoline), Match: Word("SP95", "SP 95", "BZ", "BENZ")},
	{Canonical: string(constants.Diesel), Match: Contains("GASOLIO", "DIESEL", "AUTOTRAZIONE")},
	{Canonical: string(constants.Diesel), Match: Word("GA", "ULSD")},
}

// Bases recognizes loading depots by full name or local abbreviation.
var Bases = Vocabulary{
	{Canonical: "SANNAZZARO", Match: Contains("SANNAZZARO")},
	{Canonical: "SANNAZZARO", Match: Word("SANN", "SNZ")},
	{Canonical: "PORTO MARGHERA", Match: Contains("MARGHERA", "VENEZIA")},
	{Canonical: "PORTO MARGHERA", Match: Word("PM", "VE")},
	{Canonical: "RHO", Match: Word("RHO")},
	{Canonical: "LIVORNO", Match: Contains("LIVORNO")},
	{Canonical: "LIVORNO", Match: Word("LIV", "LI")},
	{Canonical: "GENOVA", Match: Contains("GENOVA", "MULTEDO")},
	{Canonical: "GENOVA", Match: Word("GE", "GEN")},
	{Canonical: "RAVENNA", Match: Contains("RAVENNA")},
	{Canonical: "RAVENNA", Match: Word("RAV", "RA")},
	{Canonical: "NAPOLI", Match: Contains("NAPOLI")},
	{Canonical: "NAPOLI", Match: Word("NA")},
	{Canonical: "ROMA", Match: Contains("POMEZIA", "FIUMICINO")},
	{Canonical: "ROMA", Match: Word("ROMA", "RM")},
}
