package zxing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/datamatrix"
	multiqr "github.com/makiuchi-d/gozxing/multi/qrcode"

	"medverify/internal/domain"
	"medverify/internal/port"
)

type scanner struct {
	hints map[gozxing.DecodeHintType]interface{}
}

// NewScanner creates a CodeScanner that looks for QR and Data Matrix codes,
// the two 2D symbologies printed on medicine packs. Every QR code on the
// plane is read; Data Matrix is read once. Readers are created per call
// since they keep decoding state.
func NewScanner() port.CodeScanner {
	return &scanner{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

func (s *scanner) Scan(ctx context.Context, plane *image.Gray) (domain.CodePayload, error) {
	if plane == nil {
		return domain.CodePayload{}, nil
	}
	// The decoder expects a colour image.
	bmp, err := gozxing.NewBinaryBitmapFromImage(imaging.Clone(plane))
	if err != nil {
		return domain.CodePayload{}, fmt.Errorf("build bitmap: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return domain.CodePayload{}, err
	}
	var parts []string
	qrResults, err := multiqr.NewQRCodeMultiReader().DecodeMultiple(bmp, s.hints)
	if err != nil && !isNoCode(err) {
		return domain.CodePayload{}, fmt.Errorf("decode qr: %w", err)
	}
	for _, res := range qrResults {
		parts = appendText(parts, res)
	}

	if err := ctx.Err(); err != nil {
		return domain.CodePayload{}, err
	}
	res, err := datamatrix.NewDataMatrixReader().Decode(bmp, s.hints)
	if err != nil && !isNoCode(err) {
		return domain.CodePayload{}, fmt.Errorf("decode data matrix: %w", err)
	}
	if err == nil {
		parts = appendText(parts, res)
	}
	return domain.CodePayload{RawText: strings.TrimSpace(strings.Join(parts, " "))}, nil
}

func appendText(parts []string, res *gozxing.Result) []string {
	if res == nil {
		return parts
	}
	if text := strings.TrimSpace(strings.ToValidUTF8(res.GetText(), "")); text != "" {
		parts = append(parts, text)
	}
	return parts
}

// isNoCode reports whether err only means "nothing decodable here".
func isNoCode(err error) bool {
	var notFound gozxing.NotFoundException
	var checksum gozxing.ChecksumException
	var format gozxing.FormatException
	return errors.As(err, &notFound) || errors.As(err, &checksum) || errors.As(err, &format)
}
