package common

import (
	"strconv"
	"strings"
)

// ParseNumber parses an upstream locale-formatted numeric string: thousands
// separators, parenthesized negatives, and placeholder strings for missing
// values ("--", "-", "N/A", "不適用", empty). Any other non-numeric text,
// such as an ex-dividend annotation in a price cell, also reports missing.
// The second return reports whether a number was present at all.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"=`)
	if s == "" || s == "-" || s == "--" || s == "---" || s == "N/A" || s == "不適用" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// Num is ParseNumber collapsed to a value, with missing values as zero.
// Used for fields where upstream blanks mean "none traded".
func Num(s string) float64 {
	n, _ := ParseNumber(s)
	return n
}

// Int is Num truncated to int.
func Int(s string) int {
	return int(Num(s))
}
