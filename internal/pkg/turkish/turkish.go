// Package turkish provides locale-aware normalization for Turkish place names
// and phone numbers.
//
// Turkish has a dotted/dotless I distinction (i→İ, ı→I) that plain ASCII
// casing breaks: strings.ToUpper("kocaeli") yields "KOCAELI", which never
// equals the directory entry "KOCAELİ". All comparisons against the carrier's
// city/district directory must go through NormalizeForComparison.
package turkish

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upper = cases.Upper(language.Turkish)
	lower = cases.Lower(language.Turkish)
	title = cases.Title(language.Turkish)
)

// NormalizeForComparison converts free text into the canonical form used for
// directory matching: trimmed, inner whitespace collapsed, upper-cased with
// Turkish rules. Idempotent. Empty or whitespace-only input yields "".
func NormalizeForComparison(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return upper.String(strings.Join(fields, " "))
}

// FormatForDisplay lower-cases with Turkish rules and title-cases each
// whitespace token ("DARICA" → "Darıca"). Presentation only; never a lookup key.
func FormatForDisplay(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return title.String(lower.String(strings.Join(fields, " ")))
}

// NormalizePhone reduces a phone number to local-format digits: all
// non-digits stripped, then a leading 90 country code dropped, then any
// leading trunk 0 dropped. The country code must go first: in
// "+90 0532 123 45 67" the trunk zero hides behind the 90 prefix.
// "+90 (532) 123 45 67" → "5321234567". Idempotent.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "90") && len(digits) > 10 {
		digits = digits[2:]
	}
	for strings.HasPrefix(digits, "0") {
		digits = digits[1:]
	}
	return digits
}
