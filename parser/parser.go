package parser

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	commaSuffixRe   = regexp.MustCompile(`,.*$`)

	// Connector words meaning "at" across the locales LinkedIn headlines
	// commonly use: English, French, Italian, German
	companyConnectorRe = regexp.MustCompile(`(?i)(?:at|@|chez|presso|bei)\s+(.+?)(?:\s*[|\-]|$)`)
	companySeparatorRe = regexp.MustCompile(`(?i)[|\-]\s*(.+?)(?:\s*[|\-]|$)`)
)

// SplitName splits a display name into first and last name.
// Parenthesized credentials ("(PhD)") and comma suffixes (", MBA") are
// dropped before splitting; internal whitespace is collapsed.
func SplitName(fullName string) (first, last string) {
	fullName = strings.TrimSpace(fullName)
	fullName = whitespaceRe.ReplaceAllString(fullName, " ")
	fullName = strings.TrimSpace(parentheticalRe.ReplaceAllString(fullName, ""))
	fullName = strings.TrimSpace(commaSuffixRe.ReplaceAllString(fullName, ""))

	if fullName == "" {
		return "", ""
	}

	parts := strings.Split(fullName, " ")
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// ExtractCompany pulls a company name out of a profile headline.
// It first looks for a connector word ("Engineer at Google", "chez
// Microsoft"), then falls back to the first pipe/dash separated segment
// ("Engineer | Amazon"). Returns "" when nothing plausible is found.
func ExtractCompany(headline string) string {
	for _, re := range []*regexp.Regexp{companyConnectorRe, companySeparatorRe} {
		match := re.FindStringSubmatch(headline)
		if match == nil {
			continue
		}
		company := strings.TrimSpace(match[1])
		if len(company) > 1 {
			return company
		}
	}
	return ""
}
