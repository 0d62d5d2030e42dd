package ocr

import (
	"fmt"
	"strings"

	"gocr/pkg/tesseract"
)

// Mode selects what an engine produces for a page.
type Mode int

const (
	ModeText Mode = iota
	ModeHOCR
	ModeWords
)

func (m Mode) String() string {
	switch m {
	case ModeHOCR:
		return "hocr"
	case ModeWords:
		return "words"
	default:
		return "text"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return ModeText, nil
	case "hocr":
		return ModeHOCR, nil
	case "words":
		return ModeWords, nil
	}
	return ModeText, fmt.Errorf("unknown output mode: %s", s)
}

// Request is one encoded image handed to an engine.
type Request struct {
	Filename string
	Data     []byte
	Format   tesseract.Format
	Mode     Mode
}

// Page is what an engine read from one image. Words is only filled in
// ModeWords; Text holds the plain or hOCR text otherwise.
type Page struct {
	Text  string
	Words []tesseract.Word
}

type OCRResult struct {
	Page
	Filename string
	Error    error
}

type Variable struct {
	Name  string
	Value string
}

// ParseVariable splits a "name=value" pair. The value may be empty.
func ParseVariable(s string) (Variable, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Variable{}, fmt.Errorf("variable must be name=value, got: %s", s)
	}
	return Variable{Name: name, Value: value}, nil
}

// Settings configure every engine built for a run.
type Settings struct {
	DataPath  string
	Language  string
	Configs   []string
	Variables []Variable
}

type OCREngine interface {
	ProcessImage(req Request) (Page, error)
	Close() error
}
