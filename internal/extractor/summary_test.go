package extractor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"medverify/internal/domain"
	"medverify/internal/extractor"
)

func TestSummarizeWords(t *testing.T) {
	res := extractor.SummarizeWords([]domain.RecognizedWord{
		{Text: "EXP", Confidence: 90},
		{Text: "  ", Confidence: 95},
		{Text: "05/2026", Confidence: 80},
		{Text: "ghost", Confidence: -1},
		{Text: "nan", Confidence: math.NaN()},
	})

	assert.Equal(t, "EXP 05/2026", res.Text)
	assert.InDelta(t, 0.85, res.AvgConf, 1e-9)
}

func TestSummarizeWords_Empty(t *testing.T) {
	assert.Equal(t, domain.RecognitionResult{}, extractor.SummarizeWords(nil))
	assert.Equal(t, domain.RecognitionResult{}, extractor.SummarizeWords([]domain.RecognizedWord{{Text: "x", Confidence: -1}}))
}

func TestSummarizeWords_ClampsConfidence(t *testing.T) {
	res := extractor.SummarizeWords([]domain.RecognizedWord{{Text: "x", Confidence: 150}})
	assert.Equal(t, 1.0, res.AvgConf)
}
