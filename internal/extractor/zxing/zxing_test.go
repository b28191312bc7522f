package zxing_test

import (
	"context"
	"image"
	"image/draw"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medverify/internal/extractor/zxing"
)

func qrPlane(t *testing.T, content string) *image.Gray {
	t.Helper()
	matrix, err := qrcode.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, 240, 240, nil)
	require.NoError(t, err)
	gray := image.NewGray(matrix.Bounds())
	draw.Draw(gray, gray.Bounds(), matrix, matrix.Bounds().Min, draw.Src)
	return gray
}

func TestScanner_DecodesQR(t *testing.T) {
	s := zxing.NewScanner()

	payload, err := s.Scan(context.Background(), qrPlane(t, "(01)08901234567890(17)270531(10)AB1234"))
	require.NoError(t, err)
	assert.Equal(t, "(01)08901234567890(17)270531(10)AB1234", payload.RawText)
}

func TestScanner_DecodesEveryQR(t *testing.T) {
	left := qrPlane(t, "(17)270531")
	right := qrPlane(t, "LOT:AB1234")

	// Two codes side by side on white, with a gap between them.
	plane := image.NewGray(image.Rect(0, 0, 520, 240))
	for i := range plane.Pix {
		plane.Pix[i] = 255
	}
	draw.Draw(plane, left.Bounds(), left, image.Point{}, draw.Src)
	draw.Draw(plane, right.Bounds().Add(image.Pt(280, 0)), right, image.Point{}, draw.Src)

	payload, err := zxing.NewScanner().Scan(context.Background(), plane)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"(17)270531", "LOT:AB1234"}, strings.Fields(payload.RawText))
}

func TestScanner_NoCode(t *testing.T) {
	s := zxing.NewScanner()
	blank := image.NewGray(image.Rect(0, 0, 120, 120))
	for i := range blank.Pix {
		blank.Pix[i] = 255
	}

	payload, err := s.Scan(context.Background(), blank)
	require.NoError(t, err)
	assert.Empty(t, payload.RawText)
}

func TestScanner_NilPlane(t *testing.T) {
	payload, err := zxing.NewScanner().Scan(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, payload.RawText)
}

func TestScanner_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := zxing.NewScanner().Scan(ctx, qrPlane(t, "EXP 2027-05"))
	assert.ErrorIs(t, err, context.Canceled)
}
