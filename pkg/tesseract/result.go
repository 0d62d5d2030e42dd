package tesseract

import "strings"

// collectWords drains it into Go values and releases it. Elements without
// text are skipped without ending the walk.
func collectWords(it wordIterator) []Word {
	if it == nil {
		return []Word{}
	}
	defer it.release()

	words := []Word{}
	for {
		if text, ok := it.text(); ok && strings.TrimSpace(text) != "" {
			w := Word{Text: text, Confidence: clampConfidence(it.confidence())}
			if box, ok := it.boundingBox(); ok {
				w.Box = box
			}
			words = append(words, w)
		}
		if !it.next() {
			break
		}
	}
	return words
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 100:
		return 100
	default:
		return c
	}
}
