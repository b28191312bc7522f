// Package decision fuses recognition, date and tamper signals into a verdict.
package decision

import (
	"math"
	"time"

	"medverify/internal/domain"
)

// DefaultThreshold is the mean recognition confidence below which a verdict
// needs human review.
const DefaultThreshold = 0.70

// Signals are the inputs to a single verdict.
type Signals struct {
	AvgConf float64
	Dates   domain.ResolvedDates
	Tamper  domain.TamperAssessment
	Batch   *string
}

// Fuser builds verdicts. Now is injectable for tests; nil means time.Now.
type Fuser struct {
	Threshold float64
	Now       func() time.Time
}

// NewFuser creates a Fuser with the given confidence threshold.
func NewFuser(threshold float64) *Fuser {
	return &Fuser{Threshold: threshold, Now: time.Now}
}

// Fuse combines signals into a verdict. A label is expired once today is past
// the last day of its expiry month. It needs review when confidence is under
// the threshold, tamper is flagged, the text and code dates disagree, or no
// expiry was found. Confidence is reported rounded to 4 decimals; the
// threshold comparison uses the unrounded value.
func (f *Fuser) Fuse(s Signals) domain.VerificationVerdict {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	today := domain.DateOf(now())
	final := s.Dates.FinalExpiry

	expired := final != nil && IsExpired(*final, today)
	needsReview := s.AvgConf < f.Threshold ||
		s.Tamper.Tampered ||
		s.Dates.Mismatch ||
		final == nil

	return domain.VerificationVerdict{
		FinalExpiry: final,
		BatchCode:   s.Batch,
		CodeExpiry:  s.Dates.ExpiryFromCode,
		Expired:     expired,
		Tampered:    s.Tamper.Tampered,
		Confidence:  Round4(s.AvgConf),
		NeedsReview: needsReview,
	}
}

// IsExpired reports whether today falls after the last day of d's month.
// The day component of d is ignored.
func IsExpired(d, today domain.Date) bool {
	return today.After(LastDayOfMonth(d))
}

// LastDayOfMonth returns the last calendar day of d's month.
func LastDayOfMonth(d domain.Date) domain.Date {
	t := time.Date(d.Year, d.Month+1, 0, 0, 0, 0, 0, time.UTC)
	return domain.DateOf(t)
}

// Round4 rounds v to 4 decimal places.
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
