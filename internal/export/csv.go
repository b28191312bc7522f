// Package export renders verification records for offline review.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"medverify/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by the CSV and XLSX exports.
var columns = []string{
	"ID",
	"Filename",
	"Content Type",
	"Confidence",
	"Batch",
	"Expiry (Text)",
	"Expiry (Code)",
	"Final Expiry",
	"Mismatch",
	"Tampered",
	"Tamper Score",
	"Expired",
	"Needs Review",
	"Extracted Text",
	"Created At",
}

// Writer wraps csv.Writer for exporting verification records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *Writer) WriteRecords(recs []domain.VerificationRecord) error {
	for i := range recs {
		if err := w.csv.Write(recordToRow(&recs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a BOM, the header and every record to w.
func WriteCSV(w io.Writer, recs []domain.VerificationRecord) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteRecords(recs); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func recordToRow(rec *domain.VerificationRecord) []string {
	return []string{
		rec.ID.String(),
		rec.Filename,
		rec.ContentType,
		strconv.FormatFloat(rec.AvgConf, 'f', 4, 64),
		derefString(rec.Batch),
		formatDate(rec.ExpiryOCR),
		formatDate(rec.ExpiryQR),
		formatDate(rec.FinalExpiry),
		formatBool(rec.Mismatch),
		formatBool(rec.Tampered),
		strconv.FormatFloat(rec.TamperScore, 'f', 4, 64),
		formatBool(rec.Expired),
		formatBool(rec.NeedsReview),
		rec.RawText,
		rec.CreatedAt.Format(time.RFC3339),
	}
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatDate(d *domain.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces non-alphanumeric chars (except - _) with _,
// collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a Content-Disposition filename of the form
// {sanitized_prefix}_{YYYY-MM-DD}.{format}.
func BuildFilename(prefix string, format domain.ExportFormat, now time.Time) string {
	sanitized := SanitizeFilename(prefix)
	if sanitized == "" {
		sanitized = "verifications"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, now.Format("2006-01-02"), format)
}

// ContentType returns the MIME type of an export format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
