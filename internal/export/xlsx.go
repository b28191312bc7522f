package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"medverify/internal/domain"
)

const sheetName = "Verifications"

// WriteXLSX writes the records as a single-sheet workbook to w, using the
// same columns as the CSV export. Numeric and boolean columns keep their
// native cell types.
func WriteXLSX(w io.Writer, recs []domain.VerificationRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range recs {
		rec := &recs[i]
		row := []interface{}{
			rec.ID.String(),
			rec.Filename,
			rec.ContentType,
			rec.AvgConf,
			derefString(rec.Batch),
			formatDate(rec.ExpiryOCR),
			formatDate(rec.ExpiryQR),
			formatDate(rec.FinalExpiry),
			rec.Mismatch,
			rec.Tampered,
			rec.TamperScore,
			rec.Expired,
			rec.NeedsReview,
			rec.RawText,
			rec.CreatedAt,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	return f.Write(w)
}
