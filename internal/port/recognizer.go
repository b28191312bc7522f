package port

import (
	"context"
	"image"

	"medverify/internal/domain"
)

// TextRecognizer runs OCR over a binarized plane and reports every word
// region with its engine-native confidence.
type TextRecognizer interface {
	Recognize(ctx context.Context, plane *image.Gray) ([]domain.RecognizedWord, error)
}

// CodeScanner decodes embedded 2D barcodes from a grayscale plane.
// An image without any code yields an empty payload and a nil error.
type CodeScanner interface {
	Scan(ctx context.Context, plane *image.Gray) (domain.CodePayload, error)
}
