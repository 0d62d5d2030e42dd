//go:build !cgo

package engine

import (
	"errors"

	"gocr/internal/ocr"
)

type GosseractEngine struct{}

func NewGosseractEngine(ocr.Settings) (*GosseractEngine, error) {
	return nil, errors.New("gosseract engine requires cgo")
}

func (g *GosseractEngine) ProcessImage(ocr.Request) (ocr.Page, error) {
	return ocr.Page{}, errors.New("gosseract engine requires cgo")
}

func (g *GosseractEngine) Close() error { return nil }
