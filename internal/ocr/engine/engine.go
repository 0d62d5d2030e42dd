package engine

import (
	"fmt"
	"strings"

	"gocr/internal/logger"
	"gocr/internal/ocr"
)

const (
	TypeTesseract = "tesseract"
	TypeGosseract = "gosseract"
)

// Types lists the accepted engine names.
func Types() []string {
	return []string{TypeTesseract, TypeGosseract}
}

// New builds an engine of the named type. "native" is accepted as an alias
// for the tesseract bindings, which are also the default.
func New(engineType string, settings ocr.Settings) (ocr.OCREngine, error) {
	var e ocr.OCREngine
	var err error

	switch strings.ToLower(engineType) {
	case TypeTesseract, "native", "":
		e, err = NewTesseractEngine(settings)
	case TypeGosseract:
		e, err = NewGosseractEngine(settings)
	default:
		return nil, fmt.Errorf("unknown engine type: %s", engineType)
	}
	if err != nil {
		logger.DebugLog("[engine.New]: %s engine failed: %v", engineType, err)
		return nil, err
	}
	return e, nil
}

func splitLanguages(lang string) []string {
	var out []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
