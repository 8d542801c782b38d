package statement

import (
	"regexp"
	"strings"
)

// Detection fallbacks surfaced in the normalized output when the document
// gives no better answer.
const (
	UnknownUnit    = "Unknown"
	UnknownCompany = "Unknown Company"
	UnknownYear    = "Unknown Year"
)

// Reporting units checked in order; the first case-insensitive hit wins.
var knownUnits = []string{"Crores", "Lakhs", "Millions", "Billions"}

var (
	companyPattern = regexp.MustCompile(`(?i)(?:Company Name|Statement of|Financial Report of)\s*[:\-\s]*([A-Za-z0-9&.,\s]+)`)
	yearPattern    = regexp.MustCompile(`\b\d{4}\b`)
)

// DetectUnit finds the reporting currency unit anywhere in the document
// text.
func DetectUnit(text string) string {
	lower := strings.ToLower(text)
	for _, unit := range knownUnits {
		if strings.Contains(lower, strings.ToLower(unit)) {
			return unit
		}
	}
	return UnknownUnit
}

// DetectCompany extracts the company name following one of the
// conventional heading phrases.
func DetectCompany(text string) string {
	if m := companyPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return UnknownCompany
}

// DetectYear returns the first 4-digit year token in the text, used as
// the annual period label.
func DetectYear(text string) string {
	if m := yearPattern.FindString(text); m != "" {
		return m
	}
	return UnknownYear
}
