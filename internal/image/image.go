package image

import (
	"bytes"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
)

// Pages smaller than this on either side are upscaled before OCR.
const minSide = 300

type ImageProcessor struct {
	contrast float64
	sharpen  float64
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{contrast: 10, sharpen: 1.1}
}

// EnhanceQuality decodes an encoded image, upscales it when small, converts it
// to grayscale, raises contrast and sharpens it. The result is PNG encoded.
func (ip *ImageProcessor) EnhanceQuality(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() < minSide || bounds.Dy() < minSide {
		img = imaging.Resize(img, bounds.Dx()*2, bounds.Dy()*2, imaging.Lanczos)
	}

	gray := imaging.Grayscale(img)
	contrast := imaging.AdjustContrast(gray, ip.contrast)
	sharp := imaging.Sharpen(contrast, ip.sharpen)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, sharp, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding processed image: %w", err)
	}
	return buf.Bytes(), nil
}

// EnhanceFile reads path and returns its enhanced PNG encoding.
func (ip *ImageProcessor) EnhanceFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", path, err)
	}
	out, err := ip.EnhanceQuality(data)
	if err != nil {
		return nil, fmt.Errorf("enhancing image %s: %w", path, err)
	}
	return out, nil
}
