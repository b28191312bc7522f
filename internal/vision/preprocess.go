// Package vision holds the pixel-level stages of label verification:
// decoding, grayscale and adaptive-threshold preprocessing, and the
// histogram-based tamper heuristic.
package vision

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// Planes is the preprocessed form of an uploaded label.
// Thresh only ever holds 0 (foreground) or 255 (background).
type Planes struct {
	Gray   *image.Gray
	Thresh *image.Gray
}

// ThresholdParams configures the local mean adaptive threshold.
type ThresholdParams struct {
	Window int
	Offset int
}

// DefaultThreshold suits photographed labels at typical phone resolutions.
var DefaultThreshold = ThresholdParams{Window: 35, Offset: 11}

// Preprocess converts img into a grayscale plane and a binarized plane.
func Preprocess(img image.Image, params ThresholdParams) (*Planes, error) {
	if img == nil {
		return nil, errors.New("vision.Preprocess: nil image")
	}
	gray := ToGray(img)
	return &Planes{
		Gray:   gray,
		Thresh: AdaptiveThreshold(gray, params.Window, params.Offset),
	}, nil
}

// ToGray converts any image into a zero-origin *image.Gray using luma weights.
func ToGray(img image.Image) *image.Gray {
	nrgba := imaging.Grayscale(img)
	b := nrgba.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+b.Dx()*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+b.Dx()]
		for x := range dst {
			dst[x] = src[x*4]
		}
	}
	return out
}

// AdaptiveThreshold binarizes gray against the mean of a window x window
// neighbourhood minus offset. A pixel is 255 when it is brighter than its
// local threshold and 0 otherwise. The window is clamped at the borders.
func AdaptiveThreshold(gray *image.Gray, window, offset int) *image.Gray {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}

	// Integral image with a zero guard row/column.
	stride := w + 1
	ints := make([]int64, stride*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		off := gray.PixOffset(b.Min.X, b.Min.Y+y)
		row := gray.Pix[off : off+w]
		for x := 0; x < w; x++ {
			rowSum += int64(row[x])
			ints[(y+1)*stride+x+1] = ints[y*stride+x+1] + rowSum
		}
	}

	half := window / 2
	c := int64(offset)
	for y := 0; y < h; y++ {
		y0, y1 := max(y-half, 0), min(y+half, h-1)
		for x := 0; x < w; x++ {
			x0, x1 := max(x-half, 0), min(x+half, w-1)
			sum := ints[(y1+1)*stride+x1+1] - ints[y0*stride+x1+1] - ints[(y1+1)*stride+x0] + ints[y0*stride+x0]
			area := int64((x1 - x0 + 1) * (y1 - y0 + 1))
			v := int64(gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)])
			// v > sum/area - c, kept in integers.
			if v*area > sum-c*area {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
