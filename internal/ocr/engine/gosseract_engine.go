//go:build cgo

package engine

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"gocr/internal/ocr"
	"gocr/pkg/tesseract"
)

// GosseractEngine runs pages through github.com/otiai10/gosseract, which
// wraps the same native library behind its own C++ shim.
type GosseractEngine struct {
	client *gosseract.Client
}

func NewGosseractEngine(settings ocr.Settings) (*GosseractEngine, error) {
	client := gosseract.NewClient()
	if err := configureClient(client, settings); err != nil {
		client.Close()
		return nil, err
	}
	return &GosseractEngine{client: client}, nil
}

func configureClient(client *gosseract.Client, settings ocr.Settings) error {
	if settings.DataPath != "" {
		if err := client.SetTessdataPrefix(settings.DataPath); err != nil {
			return fmt.Errorf("setting tessdata prefix: %w", err)
		}
	}
	if langs := splitLanguages(settings.Language); len(langs) > 0 {
		if err := client.SetLanguage(langs...); err != nil {
			return fmt.Errorf("setting language: %w", err)
		}
	}
	for _, cfg := range settings.Configs {
		if err := client.SetConfigFile(cfg); err != nil {
			return fmt.Errorf("setting config file %s: %w", cfg, err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return fmt.Errorf("setting page segmentation mode: %w", err)
	}
	for _, v := range settings.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(v.Name), v.Value); err != nil {
			return fmt.Errorf("setting variable %s: %w", v.Name, err)
		}
	}
	return nil
}

func (g *GosseractEngine) ProcessImage(req ocr.Request) (ocr.Page, error) {
	if len(req.Data) == 0 {
		return ocr.Page{}, fmt.Errorf("failed to extract text from image %s: empty buffer", req.Filename)
	}
	if err := g.client.SetImageFromBytes(req.Data); err != nil {
		return ocr.Page{}, fmt.Errorf("loading image %s: %w", req.Filename, err)
	}

	switch req.Mode {
	case ocr.ModeWords:
		boxes, err := g.client.GetBoundingBoxes(gosseract.RIL_WORD)
		if err != nil {
			return ocr.Page{}, fmt.Errorf("failed to extract words from image %s: %w", req.Filename, err)
		}
		return ocr.Page{Words: wordsFromBoxes(boxes)}, nil
	case ocr.ModeHOCR:
		text, err := g.client.HOCRText()
		if err != nil {
			return ocr.Page{}, fmt.Errorf("failed to extract hOCR from image %s: %w", req.Filename, err)
		}
		return ocr.Page{Text: text}, nil
	default:
		text, err := g.client.Text()
		if err != nil {
			return ocr.Page{}, fmt.Errorf("failed to extract text from image %s: %w", req.Filename, err)
		}
		return ocr.Page{Text: text}, nil
	}
}

func (g *GosseractEngine) Close() error {
	if g.client != nil {
		err := g.client.Close()
		g.client = nil
		return err
	}
	return nil
}

func wordsFromBoxes(boxes []gosseract.BoundingBox) []tesseract.Word {
	words := make([]tesseract.Word, 0, len(boxes))
	for _, b := range boxes {
		if strings.TrimSpace(b.Word) == "" {
			continue
		}
		words = append(words, tesseract.Word{
			Text:       b.Word,
			Confidence: min(max(b.Confidence, 0), 100),
			Box: tesseract.BoundingBox{
				X1: b.Box.Min.X,
				Y1: b.Box.Min.Y,
				X2: b.Box.Max.X,
				Y2: b.Box.Max.Y,
			},
		})
	}
	return words
}
