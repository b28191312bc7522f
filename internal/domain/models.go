package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool {
	return d.Time().After(o.Time())
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as an ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes an ISO YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}

// Value implements driver.Valuer for DATE columns.
func (d Date) Value() (driver.Value, error) {
	return d.Time(), nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return err
		}
		*d = DateOf(t)
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into domain.Date", src)
	}
}

// DatePtrString renders an optional date as a pointer to its ISO string.
func DatePtrString(d *Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// RecognizedWord is a single word region reported by the OCR engine.
// Confidence is engine-native (0-100); negative means the region carried no text.
type RecognizedWord struct {
	Text       string
	Confidence float64
}

// RecognitionResult is the aggregated OCR output for one image.
type RecognitionResult struct {
	Text    string
	AvgConf float64
}

// CodePayload holds the decoded text of every 2D code found on the label.
type CodePayload struct {
	RawText string
}

// ResolvedDates reconciles the expiry found in printed text with the one in the code.
type ResolvedDates struct {
	ExpiryFromText *Date
	ExpiryFromCode *Date
	FinalExpiry    *Date
	Mismatch       bool
}

// TamperAssessment is the outcome of the left/right histogram comparison.
type TamperAssessment struct {
	Score    float64
	Tampered bool
}

// VerificationVerdict is the terminal result returned to the caller.
type VerificationVerdict struct {
	FinalExpiry *Date   `json:"expiry"`
	BatchCode   *string `json:"batch"`
	CodeExpiry  *Date   `json:"qr_expiry"`
	Expired     bool    `json:"expired"`
	Tampered    bool    `json:"tampered"`
	Confidence  float64 `json:"confidence"`
	NeedsReview bool    `json:"needs_review"`
}

// VerificationRecord is the audit row persisted for every processed upload.
type VerificationRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Filename    string    `db:"filename" json:"filename"`
	ContentType string    `db:"content_type" json:"content_type"`
	AvgConf     float64   `db:"avg_conf" json:"avg_conf"`
	Batch       *string   `db:"batch" json:"batch"`
	ExpiryOCR   *Date     `db:"expiry_ocr" json:"expiry_ocr"`
	ExpiryQR    *Date     `db:"expiry_qr" json:"expiry_qr"`
	FinalExpiry *Date     `db:"final_expiry" json:"final_expiry"`
	Mismatch    bool      `db:"mismatch" json:"mismatch"`
	Tampered    bool      `db:"tampered" json:"tampered"`
	TamperScore float64   `db:"tamper_score" json:"tamper_score"`
	Expired     bool      `db:"expired" json:"expired"`
	NeedsReview bool      `db:"needs_review" json:"needs_review"`
	RawText     string    `db:"raw_text" json:"raw_text"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// VerificationFilter narrows review queue listings.
type VerificationFilter struct {
	NeedsReview *bool
	Offset      int
	Limit       int
}
