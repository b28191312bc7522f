// Package dates finds expiry dates in OCR text and 2D code payloads and
// reconciles the two sources.
package dates

import (
	"regexp"
	"strings"

	"medverify/internal/domain"
)

// Candidate is a date-shaped substring and where it was found.
type Candidate struct {
	Value  string
	Source domain.DateSource
}

// datePatterns are scanned in this order; the order defines candidate
// priority, not position in the text.
var datePatterns = []*regexp.Regexp{
	// day-month-year
	regexp.MustCompile(`(?:0[1-9]|[12]\d|3[01])[-/](?:0[1-9]|1[0-2])[-/](?:20\d{2}|\d{2})`),
	// month-year
	regexp.MustCompile(`(?:0[1-9]|1[0-2])[-/](?:20\d{2}|\d{2})`),
	// month name + year
	regexp.MustCompile(`(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4}`),
}

// Candidates returns every date-shaped substring of text, pattern by pattern.
func Candidates(text string) []string {
	if text == "" {
		return nil
	}
	t := strings.ToLower(text)
	var found []string
	for _, re := range datePatterns {
		found = append(found, re.FindAllString(t, -1)...)
	}
	return found
}

// TextCandidates wraps Candidates with the text source tag.
func TextCandidates(text string) []Candidate {
	raw := Candidates(text)
	out := make([]Candidate, 0, len(raw))
	for _, v := range raw {
		out = append(out, Candidate{Value: v, Source: domain.DateSourceText})
	}
	return out
}
