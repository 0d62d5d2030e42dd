package image

import (
	"bytes"
	stdimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gocr/internal/fixture"
)

func TestEnhanceQuality_UpscalesSmallPages(t *testing.T) {
	// Arrange
	src, err := fixture.Render(fixture.Options{FontSize: 12}, "tiny")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := fixture.Encode(src, "jpeg")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Act
	out, err := NewImageProcessor().EnhanceQuality(data)

	// Assert
	if err != nil {
		t.Fatalf("EnhanceQuality() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
	if img.Bounds().Dx() != 2*src.Bounds().Dx() || img.Bounds().Dy() != 2*src.Bounds().Dy() {
		t.Errorf("expected 2x upscale of %v, got %v", src.Bounds(), img.Bounds())
	}
	if !isGray(img) {
		t.Errorf("expected grayscale output")
	}
}

func TestEnhanceQuality_KeepsLargePages(t *testing.T) {
	// Arrange
	src := stdimage.NewRGBA(stdimage.Rect(0, 0, 400, 320))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Act
	out, err := NewImageProcessor().EnhanceQuality(buf.Bytes())

	// Assert
	if err != nil {
		t.Fatalf("EnhanceQuality() error = %v", err)
	}
	img, _ := png.Decode(bytes.NewReader(out))
	if img.Bounds() != src.Bounds() {
		t.Errorf("expected size %v, got %v", src.Bounds(), img.Bounds())
	}
}

func TestEnhanceQuality_InvalidData(t *testing.T) {
	if _, err := NewImageProcessor().EnhanceQuality([]byte("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestEnhanceFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	data, err := fixture.Page("bmp", "file")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	path := filepath.Join(dir, "page.bmp")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Act
	out, err := NewImageProcessor().EnhanceFile(path)
	_, errMissing := NewImageProcessor().EnhanceFile(filepath.Join(dir, "missing.png"))

	// Assert
	if err != nil || len(out) == 0 {
		t.Fatalf("EnhanceFile() = %d bytes, %v", len(out), err)
	}
	if errMissing == nil {
		t.Errorf("expected error for missing file")
	}
}

func isGray(img stdimage.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 7 {
		for x := b.Min.X; x < b.Max.X; x += 7 {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R != c.G || c.G != c.B {
				return false
			}
		}
	}
	return true
}
