package dates

import (
	"regexp"
	"time"

	"medverify/internal/domain"
)

var batchRe = regexp.MustCompile(`(?i)(?:batch(?:\s*no)?|lot)[:#]?\s*([A-Za-z0-9\-_/]{3,24})`)

// Resolve picks the expiry date from OCR text and a code payload. Only the
// first text candidate is considered; if it does not normalize the text date
// is absent. A code date, when present, wins over the text date. Mismatch is
// set only when both exist and differ.
func Resolve(text, payload string, now time.Time) domain.ResolvedDates {
	var res domain.ResolvedDates

	if cands := Candidates(text); len(cands) > 0 {
		if d, err := Normalize(cands[0], now); err == nil {
			res.ExpiryFromText = &d
		}
	}
	if d, err := ParseCodePayload(payload, now); err == nil && d != nil {
		res.ExpiryFromCode = d
	}

	switch {
	case res.ExpiryFromCode != nil:
		res.FinalExpiry = res.ExpiryFromCode
	case res.ExpiryFromText != nil:
		res.FinalExpiry = res.ExpiryFromText
	}
	if res.ExpiryFromText != nil && res.ExpiryFromCode != nil {
		res.Mismatch = *res.ExpiryFromText != *res.ExpiryFromCode
	}
	return res
}

// ExtractBatchCode returns the first batch/lot identifier in text, or nil.
func ExtractBatchCode(text string) *string {
	m := batchRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	code := m[1]
	return &code
}
