// Package extractor turns raw recognition engine output into the text and
// code payloads consumed by the date resolver.
package extractor

import (
	"math"
	"strings"

	"medverify/internal/domain"
)

// SummarizeWords joins the usable words in document order and averages their
// confidences, rescaled from the engine's 0-100 range to [0,1]. Words with a
// blank text or an absent (negative or NaN) confidence are discarded.
func SummarizeWords(words []domain.RecognizedWord) domain.RecognitionResult {
	texts := make([]string, 0, len(words))
	var sum float64
	for _, w := range words {
		t := strings.TrimSpace(w.Text)
		if t == "" || w.Confidence < 0 || math.IsNaN(w.Confidence) {
			continue
		}
		texts = append(texts, t)
		sum += w.Confidence
	}
	if len(texts) == 0 {
		return domain.RecognitionResult{}
	}
	avg := sum / float64(len(texts)) / 100
	return domain.RecognitionResult{
		Text:    strings.Join(texts, " "),
		AvgConf: math.Min(math.Max(avg, 0), 1),
	}
}
