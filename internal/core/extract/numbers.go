package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reNumberToken = regexp.MustCompile(`\d[\d.,]*`)
	reDotGrouped  = regexp.MustCompile(`^[1-9]\d{0,2}(\.\d{3})+$`)
)

// ParseNumber reads the first number in s. Comma is the decimal separator; dots are
// thousands grouping when they form 1.234.567-style groups, decimal otherwise. The sign is
// never read, so the result is always >= 0. Missing numbers read as 0.
func ParseNumber(s string) float64 {
	f, _ := findNumber(s)
	return f
}

func findNumber(s string) (float64, bool) {
	tok := reNumberToken.FindString(s)
	if tok == "" {
		return 0, false
	}
	return parseToken(tok)
}

// allNumbers returns every number token in s in reading order.
func allNumbers(s string) []float64 {
	var out []float64
	for _, tok := range reNumberToken.FindAllString(s, -1) {
		if f, ok := parseToken(tok); ok {
			out = append(out, f)
		}
	}
	return out
}

func parseToken(tok string) (float64, bool) {
	tok = strings.TrimRight(tok, ".,")
	if tok == "" {
		return 0, false
	}
	lastComma := strings.LastIndex(tok, ",")
	lastDot := strings.LastIndex(tok, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// 15.230,50
			tok = strings.ReplaceAll(tok, ".", "")
			tok = strings.Replace(tok, ",", ".", 1)
		} else {
			// 15,230.50
			tok = strings.ReplaceAll(tok, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(tok, ",") > 1 {
			tok = strings.ReplaceAll(tok, ",", "")
		} else {
			tok = strings.Replace(tok, ",", ".", 1)
		}
	case lastDot >= 0:
		if reDotGrouped.MatchString(tok) {
			tok = strings.ReplaceAll(tok, ".", "")
		} else if strings.Count(tok, ".") > 1 {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseXMLNumber reads an e-invoice decimal ("15230.00"). Negative amounts read as their
// magnitude; anything unparsable reads as 0.
func ParseXMLNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Abs(f)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
