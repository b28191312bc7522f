package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP decoder

	"medverify/internal/domain"
)

// Decode reads an uploaded image, rejecting payloads whose pixel count
// exceeds maxPixels before the full bitmap is allocated.
func Decode(data []byte, maxPixels int64) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, domain.ErrInvalidImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, domain.ErrImageTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	return img, nil
}
