package data

import (
	"strconv"
	"strings"

	"gocr/pkg/tesseract"
)

// WordRecord is one row of a word table file.
type WordRecord struct {
	Filename   string
	Index      int
	Word       string
	Confidence float64
	BBox       string
}

// TextRecord is one row of a page text file.
type TextRecord struct {
	Filename string
	Words    int
	Text     string
}

// WordRecords numbers the words of one page from 1 in reading order.
func WordRecords(filename string, words []tesseract.Word) []WordRecord {
	records := make([]WordRecord, 0, len(words))
	for i, w := range words {
		records = append(records, WordRecord{
			Filename:   filename,
			Index:      i + 1,
			Word:       w.Text,
			Confidence: w.Confidence,
			BBox:       w.Box.String(),
		})
	}
	return records
}

// NewTextRecord flattens the page text onto one line.
func NewTextRecord(filename, text string) TextRecord {
	clean := NormalizeText(text)
	words := 0
	if clean != "" {
		words = strings.Count(clean, " ") + 1
	}
	return TextRecord{Filename: filename, Words: words, Text: clean}
}

// NormalizeText collapses runs of whitespace, newlines included, into single
// spaces and trims the ends.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// JoinWords concatenates word texts the way NormalizeText renders page text,
// so the two can be compared.
func JoinWords(words []tesseract.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return NormalizeText(strings.Join(parts, " "))
}

func MapWordRecord(item WordRecord) []string {
	return []string{
		item.Filename,
		strconv.Itoa(item.Index),
		item.Word,
		strconv.FormatFloat(item.Confidence, 'f', 2, 64),
		item.BBox,
	}
}

func GetWordHeader() []string {
	return []string{"Filename", "Index", "Word", "Confidence", "BBox"}
}

func MapTextRecord(item TextRecord) []string {
	return []string{item.Filename, strconv.Itoa(item.Words), item.Text}
}

func GetTextHeader() []string {
	return []string{"Filename", "Words", "Text"}
}
