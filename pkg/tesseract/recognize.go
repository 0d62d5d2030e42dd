package tesseract

import (
	"runtime"

	"gocr/internal/logger"
)

// Mode selects the output of RecognizeText.
type Mode int

const (
	// ModeText returns the UTF-8 transcription of the page.
	ModeText Mode = iota
	// ModeHOCR returns the page as hOCR markup.
	ModeHOCR
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeHOCR:
		return "hocr"
	default:
		return "unknown"
	}
}

// Below this source resolution Tesseract warns and guesses; images reporting
// less are treated as scans at replacementResolution.
const (
	minSourceResolution   = 70
	replacementResolution = 300
)

// RecognizeText runs recognition on img and returns the page text or hOCR.
func (e *Engine) RecognizeText(img Image, mode Mode) (string, error) {
	var out string
	err := e.recognize(img, func(api nativeAPI) error {
		var (
			text string
			ok   bool
		)
		switch mode {
		case ModeHOCR:
			text, ok = api.hocrText()
		default:
			text, ok = api.utf8Text()
		}
		if !ok {
			return newError(CodeRecognition, img.String(), "no %s result for %s", mode, img)
		}
		out = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// RecognizeWords runs recognition on img and returns one Word per recognised
// word in reading order.
func (e *Engine) RecognizeWords(img Image) ([]Word, error) {
	var words []Word
	err := e.recognize(img, func(api nativeAPI) error {
		if !api.recognize() {
			return newError(CodeRecognition, img.String(), "recognition failed for %s", img)
		}
		words = collectWords(api.words())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// RecognizeBytesWithFormat decodes data with the decoder for the format token
// only and returns the page text. An unknown token fails with
// ErrUnsupportedFormat before anything is decoded.
func (e *Engine) RecognizeBytesWithFormat(data []byte, format string) (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	return e.RecognizeText(ImageFromBytesWithFormat(data, f), ModeText)
}

func (e *Engine) recognize(img Image, run func(api nativeAPI) error) error {
	if err := e.check(); err != nil {
		return err
	}
	defer runtime.KeepAlive(e)

	pix, err := img.decode()
	if err != nil {
		logger.DebugLog("[tesseract.recognize]: decode %s: %v", img, err)
		return err
	}
	api := e.api
	defer func() {
		api.clear()
		pix.destroy()
	}()

	api.clearAdaptiveClassifier()
	api.setImage(pix)
	if res := api.sourceYResolution(); res < minSourceResolution {
		logger.DebugLog("[tesseract.recognize]: source resolution %d below %d, using %d", res, minSourceResolution, replacementResolution)
		api.setSourceResolution(replacementResolution)
	}
	return run(api)
}
