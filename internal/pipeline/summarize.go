package pipeline

import (
	"context"

	"gocr/internal/logger"
	"gocr/internal/ocr"
)

// Stats aggregate what the engines read during a run.
type Stats struct {
	Pages          int
	Failed         int
	Words          int
	MeanConfidence float64
}

func summarize(ctx context.Context, ocrChan <-chan ocr.OCRResult) Stats {
	var stats Stats
	var confidence float64

	for res := range ocrChan {
		if ctx.Err() != nil {
			logger.DebugLog("[summarize]: context cancelled")
			break
		}
		if res.Error != nil {
			stats.Failed++
			continue
		}
		stats.Pages++
		stats.Words += len(res.Words)
		for _, w := range res.Words {
			confidence += w.Confidence
		}
	}

	if stats.Words > 0 {
		stats.MeanConfidence = confidence / float64(stats.Words)
	}
	return stats
}
