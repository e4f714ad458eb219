package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor handles image processing like resizing.
type ImageProcessor struct{}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// FitPNG scales the source image down to fit within the bounding box while
// keeping aspect ratio, and re-encodes it as PNG. Images already inside the
// box are re-encoded unchanged. Ticket QR codes must stay PNG: lossy
// compression can break scanning.
func (p *ImageProcessor) FitPNG(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fitted := imaging.Fit(img, maxWidth, maxHeight, imaging.NearestNeighbor)

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, fitted); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf, nil
}
