package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"medverify/internal/domain"
)

func sampleRecord() domain.VerificationRecord {
	batch := "AB1234"
	expiry := domain.NewDate(2026, time.May, 15)
	return domain.VerificationRecord{
		ID:          uuid.MustParse("6f1c2a8e-3b1d-4c7e-9a0f-1234567890ab"),
		Filename:    "label.jpg",
		ContentType: "image/jpeg",
		AvgConf:     0.6123,
		Batch:       &batch,
		ExpiryOCR:   &expiry,
		FinalExpiry: &expiry,
		Tampered:    true,
		TamperScore: 0.61,
		NeedsReview: true,
		RawText:     "Batch No: AB1234 EXP 05/2026",
		CreatedAt:   time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []domain.VerificationRecord{sampleRecord()}))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, columns, rows[0])
	row := rows[1]
	assert.Len(t, row, len(columns))
	assert.Equal(t, "label.jpg", row[1])
	assert.Equal(t, "0.6123", row[3])
	assert.Equal(t, "AB1234", row[4])
	assert.Equal(t, "2026-05-15", row[5])
	assert.Equal(t, "", row[6])
	assert.Equal(t, "Yes", row[9])
	assert.Equal(t, "No", row[11])
	assert.Equal(t, "2026-10-15T08:00:00Z", row[14])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, []domain.VerificationRecord{sampleRecord()}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "label.jpg", rows[1][1])
	assert.Equal(t, "AB1234", rows[1][4])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "review_queue", SanitizeFilename("review queue!"))
	assert.Equal(t, "a_b", SanitizeFilename("__a  //  b__"))
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "review_queue_2026-10-15.csv", BuildFilename("review queue", domain.ExportFormatCSV, now))
	assert.Equal(t, "verifications_2026-10-15.xlsx", BuildFilename("", domain.ExportFormatXLSX, now))
}
