package vision

import (
	"image"
	"math"

	"medverify/internal/domain"
)

// minTamperSide is the smallest width/height the tamper heuristic will score.
const minTamperSide = 10

// TamperScore returns the Bhattacharyya distance between the intensity
// histograms of the left and right halves of gray. 0 means identical
// distributions; values grow towards 1 as the halves diverge.
//
// This is a structural asymmetry heuristic, not a forensic detector: a pasted
// or reprinted region shifts one half's histogram, but so does an
// asymmetric label layout.
//
// thresh is accepted so a binarized-plane signal can be combined here later;
// it does not currently affect the score.
func TamperScore(gray, thresh *image.Gray) float64 {
	_ = thresh
	if gray == nil {
		return 0
	}
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < minTamperSide || h < minTamperSide {
		return 0
	}
	mid := b.Min.X + w/2
	left := Histogram(gray, image.Rect(b.Min.X, b.Min.Y, mid, b.Max.Y))
	right := Histogram(gray, image.Rect(mid, b.Min.Y, b.Max.X, b.Max.Y))
	return Bhattacharyya(left, right)
}

// AssessTamper applies the tamper threshold to a score.
func AssessTamper(score, threshold float64) domain.TamperAssessment {
	return domain.TamperAssessment{Score: score, Tampered: score > threshold}
}

// Histogram returns the 256-bin intensity histogram of gray within r,
// normalized to sum to 1. An empty region yields an all-zero histogram.
func Histogram(gray *image.Gray, r image.Rectangle) [256]float64 {
	var counts [256]int
	r = r.Intersect(gray.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := gray.PixOffset(r.Min.X, y)
		for _, v := range gray.Pix[off : off+r.Dx()] {
			counts[v]++
		}
	}
	var hist [256]float64
	total := r.Dx() * r.Dy()
	if total == 0 {
		return hist
	}
	for i, c := range counts {
		hist[i] = float64(c) / float64(total)
	}
	return hist
}

// Bhattacharyya computes sqrt(1 - BC) for two normalized histograms, where BC
// is the Bhattacharyya coefficient. Rounding noise is clamped to 0.
func Bhattacharyya(p, q [256]float64) float64 {
	var bc float64
	for i := range p {
		bc += math.Sqrt(p[i] * q[i])
	}
	if bc >= 1 {
		return 0
	}
	return math.Sqrt(1 - bc)
}
