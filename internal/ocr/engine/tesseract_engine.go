package engine

import (
	"gocr/internal/ocr"
	"gocr/pkg/tesseract"
)

// TesseractEngine runs pages through the in-tree native bindings.
type TesseractEngine struct {
	engine *tesseract.Engine
}

func NewTesseractEngine(settings ocr.Settings) (*TesseractEngine, error) {
	opts := []tesseract.Option{
		tesseract.WithDataPath(settings.DataPath),
		tesseract.WithLanguage(splitLanguages(settings.Language)...),
		tesseract.WithConfigFiles(settings.Configs...),
	}
	for _, v := range settings.Variables {
		opts = append(opts, tesseract.WithVariable(v.Name, v.Value))
	}

	e, err := tesseract.New(opts...)
	if err != nil {
		return nil, err
	}
	return &TesseractEngine{engine: e}, nil
}

func (t *TesseractEngine) ProcessImage(req ocr.Request) (ocr.Page, error) {
	img := tesseract.ImageFromBytesWithFormat(req.Data, req.Format)

	switch req.Mode {
	case ocr.ModeWords:
		words, err := t.engine.RecognizeWords(img)
		if err != nil {
			return ocr.Page{}, err
		}
		return ocr.Page{Words: words}, nil
	case ocr.ModeHOCR:
		text, err := t.engine.RecognizeText(img, tesseract.ModeHOCR)
		return ocr.Page{Text: text}, err
	default:
		if req.Format != tesseract.FormatAuto {
			text, err := t.engine.RecognizeBytesWithFormat(req.Data, string(req.Format))
			return ocr.Page{Text: text}, err
		}
		text, err := t.engine.RecognizeText(img, tesseract.ModeText)
		return ocr.Page{Text: text}, err
	}
}

func (t *TesseractEngine) Close() error {
	return t.engine.Close()
}
