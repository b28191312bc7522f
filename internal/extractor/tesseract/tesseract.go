package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"medverify/internal/domain"
	"medverify/internal/port"
)

// Config holds Tesseract engine settings.
type Config struct {
	Languages      []string
	TessdataPrefix string
}

type recognizer struct {
	cfg           Config
	clientFactory func() *gosseract.Client
}

// NewRecognizer creates a gosseract-backed TextRecognizer. A fresh client is
// used per call because gosseract clients are not safe for concurrent use.
func NewRecognizer(cfg Config) port.TextRecognizer {
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}
	return &recognizer{cfg: cfg, clientFactory: gosseract.NewClient}
}

func (r *recognizer) Recognize(ctx context.Context, plane *image.Gray) ([]domain.RecognizedWord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, plane, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode plane: %w", err)
	}

	client := r.clientFactory()
	defer client.Close()

	if r.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(r.cfg.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(r.cfg.Languages...); err != nil {
		return nil, fmt.Errorf("set languages: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognize words: %w", err)
	}
	words := make([]domain.RecognizedWord, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, domain.RecognizedWord{Text: b.Word, Confidence: b.Confidence})
	}
	return words, nil
}
