package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"medverify/internal/domain"
)

// ErrNoDate is returned when a string holds nothing that parses as a date.
var ErrNoDate = errors.New("no date found")

var (
	dayMonthYearRe = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})[-/.](\d{2}|\d{4})$`)
	monthYearRe    = regexp.MustCompile(`^(\d{1,2})[-/.](\d{2}|\d{4})$`)
	monthNameRe    = regexp.MustCompile(`^([a-z]{3})[a-z]*\.?\s+(\d{4})$`)
	gs1ExpiryRe    = regexp.MustCompile(`\(17\)(\d{2})(\d{2})(\d{2})`)
	digitsOnlyRe   = regexp.MustCompile(`^\d+$`)
)

// Date shapes looked for inside a code payload, in this order. Digit
// boundaries keep a day-first match from starting inside a year.
var (
	payloadYearFirstRe = regexp.MustCompile(`(?:^|\D)((?:19|20)\d{2})[-/.](\d{1,2})[-/.](\d{1,2})(?:\D|$)`)
	payloadDayNameRe   = regexp.MustCompile(`(?i)(?:^|[^\d])(\d{1,2})(?:st|nd|rd|th)?[\s\-/.]*(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?[\s\-/.,]*(\d{4}|\d{2})(?:\D|$)`)
	payloadDayFirstRe  = regexp.MustCompile(`(?:^|\D)(\d{1,2})[-/.](\d{1,2})[-/.](\d{4}|\d{2})(?:\D|$)`)
)

var monthAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Normalize converts a date candidate into a calendar date, reading numeric
// forms day-first. Components missing from the candidate (the day of a
// month-year form) are taken from now, clamped to the month's length.
func Normalize(s string, now time.Time) (domain.Date, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if m := dayMonthYearRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return build(expandYear(m[3]), month, day)
	}
	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year := expandYear(m[2])
		return build(year, month, clampDay(year, month, now.Day()))
	}
	if m := monthNameRe.FindStringSubmatch(s); m != nil {
		month, ok := monthAbbrev[m[1]]
		if !ok {
			return domain.Date{}, fmt.Errorf("%w: unknown month in %q", ErrNoDate, s)
		}
		year, _ := strconv.Atoi(m[2])
		return build(year, int(month), clampDay(year, int(month), now.Day()))
	}
	return domain.Date{}, fmt.Errorf("%w: %q", ErrNoDate, s)
}

// ParseCodePayload extracts an expiry date from a decoded 2D code payload.
// GS1 "(17)YYMMDD" application identifiers come first, then year-first
// numeric dates, day + month name + year, day-first numeric dates and the
// printed-text shapes. Anything else goes through a permissive parser with
// day-first preference. An empty payload yields nil.
func ParseCodePayload(payload string, now time.Time) (*domain.Date, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, nil
	}

	if m := gs1ExpiryRe.FindStringSubmatch(payload); m != nil {
		year := 2000 + atoi(m[1])
		month := atoi(m[2])
		day := atoi(m[3])
		// GS1: day 00 means the last day of the month.
		if day == 0 && month >= 1 && month <= 12 {
			day = daysIn(year, month)
		}
		if d, err := build(year, month, day); err == nil {
			return &d, nil
		}
	}
	for _, m := range payloadYearFirstRe.FindAllStringSubmatch(payload, -1) {
		if d, err := build(atoi(m[1]), atoi(m[2]), atoi(m[3])); err == nil {
			return &d, nil
		}
	}
	for _, m := range payloadDayNameRe.FindAllStringSubmatch(payload, -1) {
		month := monthAbbrev[strings.ToLower(m[2])]
		if d, err := build(expandYear(m[3]), int(month), atoi(m[1])); err == nil {
			return &d, nil
		}
	}
	for _, m := range payloadDayFirstRe.FindAllStringSubmatch(payload, -1) {
		if d, err := build(expandYear(m[3]), atoi(m[2]), atoi(m[1])); err == nil {
			return &d, nil
		}
	}
	for _, c := range Candidates(payload) {
		if d, err := Normalize(c, now); err == nil {
			return &d, nil
		}
	}

	// Long digit runs are product or serial numbers, not timestamps.
	if digitsOnlyRe.MatchString(payload) && len(payload) != 8 {
		return nil, fmt.Errorf("%w: numeric payload", ErrNoDate)
	}
	t, err := dateparse.ParseIn(payload, now.Location(), dateparse.PreferMonthFirst(false))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDate, err)
	}
	if t.Year() < 1900 || t.Year() > 2200 {
		return nil, fmt.Errorf("%w: implausible year %d", ErrNoDate, t.Year())
	}
	d := domain.DateOf(t)
	return &d, nil
}

func build(year, month, day int) (domain.Date, error) {
	if month < 1 || month > 12 {
		return domain.Date{}, fmt.Errorf("%w: month %d out of range", ErrNoDate, month)
	}
	if day < 1 || day > daysIn(year, month) {
		return domain.Date{}, fmt.Errorf("%w: day %d out of range", ErrNoDate, day)
	}
	return domain.NewDate(year, time.Month(month), day), nil
}

// expandYear maps two-digit years into the 2000s.
func expandYear(s string) int {
	y := atoi(s)
	if len(s) == 2 {
		y += 2000
	}
	return y
}

func clampDay(year, month, day int) int {
	if month < 1 || month > 12 {
		return day
	}
	return min(day, daysIn(year, month))
}

// daysIn returns the number of days in the given month.
func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
