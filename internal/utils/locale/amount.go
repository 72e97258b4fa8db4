// Package locale parses the locale-formatted values found in the ledger
// spreadsheet. Every parser here is tolerant: malformed input yields zero
// values and a false flag instead of an error.
package locale

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// spreadsheet formula failures surface as this literal in computed columns
const formulaFailure = "FALSE"

// longest prefixes first so "US$" is not read as "$"
var symbolPrefixes = []string{"US$", "R$", "A$", "$", "€"}

// ParseAmount converts a locale-formatted amount such as "1.234.567",
// "1.000,00" or "1,234.56" into a decimal. A lone "-" is zero. The boolean is
// false when the input was blank or could not be parsed, in which case the
// amount is zero. Signs are not accepted.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "-" {
		return decimal.Zero, true
	}
	for _, p := range symbolPrefixes {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
			break
		}
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, false
	}

	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',':
		default:
			return decimal.Zero, false
		}
	}
	if digits == 0 {
		return decimal.Zero, false
	}

	num := stripSeparators(s)
	last := strings.LastIndexAny(s, ".,")
	decimalMark := last >= 0 && isDecimalSeparator(s, last)
	grouping := s
	if decimalMark {
		grouping = s[:last]
		if strings.IndexByte(grouping, s[last]) >= 0 {
			return decimal.Zero, false
		}
	}
	if !validGrouping(grouping) {
		return decimal.Zero, false
	}
	if decimalMark {
		intPart := stripSeparators(s[:last])
		if intPart == "" {
			intPart = "0"
		}
		num = intPart
		if frac := s[last+1:]; frac != "" {
			num += "." + frac
		}
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseUSDEquivalent cleans a precomputed USD column: the FALSE sentinel is
// treated as missing, everything else goes through ParseAmount.
func ParseUSDEquivalent(raw string) (decimal.Decimal, bool) {
	if strings.EqualFold(strings.TrimSpace(raw), formulaFailure) {
		return decimal.Zero, false
	}
	return ParseAmount(raw)
}

// isDecimalSeparator decides whether the separator at index last is the
// decimal mark. Grouping always comes in runs of three digits.
func isDecimalSeparator(s string, last int) bool {
	if strings.ContainsRune(s, '.') && strings.ContainsRune(s, ',') {
		return true
	}
	frac := len(s) - last - 1
	if frac == 1 || frac == 2 {
		return true
	}
	return strings.Count(s, s[last:last+1]) == 1 && frac != 3
}

// validGrouping reports whether the integer part s uses a single grouping
// mark and every run after the first has exactly three digits.
func validGrouping(s string) bool {
	if strings.ContainsRune(s, '.') && strings.ContainsRune(s, ',') {
		return false
	}
	groups := strings.Split(strings.ReplaceAll(s, ",", "."), ".")
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

func stripSeparators(s string) string {
	return strings.NewReplacer(".", "", ",", "").Replace(s)
}
