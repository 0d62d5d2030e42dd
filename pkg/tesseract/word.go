package tesseract

import (
	"fmt"
	"strconv"
	"strings"
)

// BoundingBox is a word rectangle in source image pixels. (X1,Y1) is the top
// left corner and (X2,Y2) the bottom right one.
type BoundingBox struct {
	X1, Y1, X2, Y2 int
}

// String formats the box as "x1,y1,x2,y2".
func (b BoundingBox) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", b.X1, b.Y1, b.X2, b.Y2)
}

// Valid reports whether the box has positive width and height.
func (b BoundingBox) Valid() bool {
	return b.X2 > b.X1 && b.Y2 > b.Y1
}

// ParseBoundingBox reads the "x1,y1,x2,y2" form produced by String.
func ParseBoundingBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("bounding box %q: want 4 comma-separated integers, got %d fields", s, len(parts))
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return BoundingBox{}, fmt.Errorf("bounding box %q: %w", s, err)
		}
		v[i] = n
	}
	return BoundingBox{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
}

// Word is one row of a word table.
type Word struct {
	Text string
	// Confidence is the engine's score in [0,100].
	Confidence float64
	Box        BoundingBox
}
