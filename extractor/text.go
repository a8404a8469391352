package extractor

import "strings"

// Sanitize collapses every whitespace run to a single space and trims both
// ends.
func Sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RoleLine is a role/company pair parsed from a headline-style line.
type RoleLine struct {
	Role    string
	Company string
}

// ParseRoleLine reads lines shaped "<role> at <company> · <extra>".
//
// Everything after the first " · " is dropped, then the text is split on
// " at ". When no " at " is present the whole cleaned text is the role and
// the company stays empty; this is a heuristic and fails silently on text
// that does not follow the pattern.
func ParseRoleLine(text string) RoleLine {
	if text == "" {
		return RoleLine{}
	}
	cleaned, _, _ := strings.Cut(text, " · ")
	parts := strings.Split(cleaned, " at ")
	if len(parts) >= 2 {
		return RoleLine{
			Role:    Sanitize(parts[0]),
			Company: Sanitize(strings.Join(parts[1:], " at ")),
		}
	}
	return RoleLine{Role: Sanitize(cleaned)}
}

// companyFromLine keeps the part of an experience subtitle before the first
// "·" ("Acme · Full-time" → "Acme").
func companyFromLine(line string) string {
	if line == "" {
		return ""
	}
	company, _, _ := strings.Cut(line, "·")
	return Sanitize(company)
}
