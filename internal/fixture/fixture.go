// Package fixture renders synthetic text pages and encodes them in the image
// formats the OCR binding understands. It backs the CLI self test and the
// integration tests.
package fixture

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/tiff"
)

const (
	defaultFontSize = 48
	margin          = 40
	lineSpacing     = 1.5
)

// Options controls page rendering.
type Options struct {
	FontSize float64
}

// Render draws each line black on a white page sized to fit the text.
func Render(opts Options, lines ...string) (image.Image, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("render: no text")
	}
	size := opts.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	face, err := loadFace(size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)
	var width float64
	for _, line := range lines {
		w, _ := measure.MeasureString(line)
		width = math.Max(width, w)
	}
	lineHeight := size * lineSpacing

	w := int(math.Ceil(width)) + 2*margin
	h := int(math.Ceil(lineHeight*float64(len(lines)))) + 2*margin
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(face)
	for i, line := range lines {
		dc.DrawString(line, margin, margin+size+float64(i)*lineHeight)
	}
	return dc.Image(), nil
}

// Encode writes img in one of png, jpeg, tiff, gif or bmp.
func Encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(format) {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg", "jpg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95})
	case "tiff", "tif":
		err = tiff.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	default:
		return nil, fmt.Errorf("encode: unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Page renders lines with default options and encodes them as format.
func Page(format string, lines ...string) ([]byte, error) {
	img, err := Render(Options{}, lines...)
	if err != nil {
		return nil, err
	}
	return Encode(img, format)
}

func loadFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}
