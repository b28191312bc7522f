package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medverify/internal/dates"
	"medverify/internal/domain"
)

var today = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func TestCandidates_PatternOrderNotTextOrder(t *testing.T) {
	cands := dates.Candidates("Mfg 01/2024 Exp 31/12/2026")

	require.NotEmpty(t, cands)
	assert.Equal(t, "31/12/2026", cands[0])
	assert.Contains(t, cands, "01/2024")
}

func TestCandidates_MonthName(t *testing.T) {
	cands := dates.Candidates("BEST BEFORE MARCH 2027")

	assert.Equal(t, []string{"march 2027"}, cands)
}

func TestCandidates_NoDates(t *testing.T) {
	assert.Empty(t, dates.Candidates(""))
	assert.Empty(t, dates.Candidates("paracetamol 500mg tablets"))
}

func TestTextCandidates_TagsSource(t *testing.T) {
	cands := dates.TextCandidates("exp 05/2026")

	require.Len(t, cands, 1)
	assert.Equal(t, "05/2026", cands[0].Value)
	assert.Equal(t, domain.DateSourceText, cands[0].Source)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		now  time.Time
		want domain.Date
	}{
		{"day first", "03/04/2026", today, domain.NewDate(2026, time.April, 3)},
		{"two digit year", "15-08-26", today, domain.NewDate(2026, time.August, 15)},
		{"month year takes today's day", "05/2026", today, domain.NewDate(2026, time.May, 15)},
		{"month year clamps day", "02/2026", time.Date(2026, time.January, 30, 0, 0, 0, 0, time.UTC), domain.NewDate(2026, time.February, 28)},
		{"month name", "may 2026", today, domain.NewDate(2026, time.May, 15)},
		{"long month name", "September 2027", today, domain.NewDate(2027, time.September, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dates.Normalize(tt.in, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	for _, in := range []string{"31/02/2026", "13/2026", "", "exp soon"} {
		_, err := dates.Normalize(in, today)
		assert.ErrorIs(t, err, dates.ErrNoDate, in)
	}
}

func TestParseCodePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    domain.Date
	}{
		{"gs1 expiry", "(01)08901234567890(17)270630(10)AB123", domain.NewDate(2027, time.June, 30)},
		{"gs1 day zero", "(17)270200", domain.NewDate(2027, time.February, 28)},
		{"iso", "EXP=2026-05-31;LOT=X1", domain.NewDate(2026, time.May, 31)},
		{"day first text", "EXP 31/05/2026", domain.NewDate(2026, time.May, 31)},
		{"month year", "exp 05/2026", domain.NewDate(2026, time.May, 15)},
		{"compact digits", "20260531", domain.NewDate(2026, time.May, 31)},
		{"year first slashes", "2026/05/31", domain.NewDate(2026, time.May, 31)},
		{"year first dots", "EXP 2027.1.9 LOT A1", domain.NewDate(2027, time.January, 9)},
		{"day and month name", "31 May 2026", domain.NewDate(2026, time.May, 31)},
		{"day and month name compact", "EXP:09-Jun-27", domain.NewDate(2027, time.June, 9)},
		{"day first dots", "EXP: 31.05.2026", domain.NewDate(2026, time.May, 31)},
		{"month name only", "EXP MAY 2027", domain.NewDate(2027, time.May, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dates.ParseCodePayload(tt.payload, today)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseCodePayload_AgreesWithPrintedDate(t *testing.T) {
	// A year-first code date must not be read day-first from its tail.
	r := dates.Resolve("EXP 31/05/2026", "2026/05/31", today)

	require.NotNil(t, r.FinalExpiry)
	assert.Equal(t, domain.NewDate(2026, time.May, 31), *r.FinalExpiry)
	assert.False(t, r.Mismatch)
}

func TestParseCodePayload_Empty(t *testing.T) {
	got, err := dates.ParseCodePayload("   ", today)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseCodePayload_NotADate(t *testing.T) {
	for _, payload := range []string{"08901234567890", "https://example.com/product"} {
		got, err := dates.ParseCodePayload(payload, today)
		assert.Error(t, err, payload)
		assert.Nil(t, got, payload)
	}
}

func TestResolve_TextOnly(t *testing.T) {
	res := dates.Resolve("EXP 05/2026", "", today)

	require.NotNil(t, res.ExpiryFromText)
	assert.Nil(t, res.ExpiryFromCode)
	assert.Equal(t, res.ExpiryFromText, res.FinalExpiry)
	assert.False(t, res.Mismatch)
}

func TestResolve_CodeWins(t *testing.T) {
	res := dates.Resolve("EXP 31/05/2026", "(17)260630", today)

	require.NotNil(t, res.FinalExpiry)
	assert.Equal(t, domain.NewDate(2026, time.June, 30), *res.FinalExpiry)
	assert.Equal(t, domain.NewDate(2026, time.May, 31), *res.ExpiryFromText)
	assert.True(t, res.Mismatch)
}

func TestResolve_Agreement(t *testing.T) {
	res := dates.Resolve("Exp. 30/06/2026", "(17)260630", today)

	assert.False(t, res.Mismatch)
	assert.Equal(t, *res.ExpiryFromText, *res.ExpiryFromCode)
}

func TestResolve_FirstCandidateUnparseable(t *testing.T) {
	// The first candidate is an impossible date; later ones are not tried.
	res := dates.Resolve("exp 31/02/2026 mfg 01/2025", "", today)

	assert.Nil(t, res.ExpiryFromText)
	assert.Nil(t, res.FinalExpiry)
}

func TestResolve_Nothing(t *testing.T) {
	res := dates.Resolve("", "", today)

	assert.Nil(t, res.FinalExpiry)
	assert.False(t, res.Mismatch)
}

func TestExtractBatchCode(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Batch No: AB1234 Exp 05/2026", "AB1234"},
		{"LOT#X99-12", "X99-12"},
		{"batch 2024/07/B", "2024/07/B"},
	}
	for _, tt := range tests {
		got := dates.ExtractBatchCode(tt.text)
		require.NotNil(t, got, tt.text)
		assert.Equal(t, tt.want, *got)
	}
}

func TestExtractBatchCode_None(t *testing.T) {
	assert.Nil(t, dates.ExtractBatchCode("Batch: 12"))
	assert.Nil(t, dates.ExtractBatchCode("no identifiers here"))
}
