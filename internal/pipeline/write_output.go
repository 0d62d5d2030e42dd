package pipeline

import (
	"context"
	"fmt"

	"gocr/internal/logger"
	"gocr/internal/writer"
)

func writeOutput[T any](ctx context.Context,
	w *writer.CSVWriter[T],
	rowsChan <-chan result[T],
	results *writeResult) {
	output, _ := ctx.Value(outputFileKey).(string)
	defer func() {
		logger.DebugLog("[writeOutput]: closing CSV writer")
		w.Close()
		logger.DebugLog("[writeOutput]: CSV writer closed")
	}()

	for res := range rowsChan {
		if ctx.Err() != nil {
			logger.DebugLog("[writeOutput]: context cancelled")
			return
		}

		if res.err != nil {
			logger.DebugLog("[writeOutput]: failure for %s: %v", res.path, res.err)
			results.addFailure(res.path, res.err)
			continue
		}

		logger.DebugLog("[writeOutput]: writing %d rows for %s", len(res.data), res.path)
		if err := w.WriteToFile(res.data, output); err != nil {
			logger.DebugLog("[writeOutput]: error writing to file %s: %v", output, err)
			results.addFailure(res.path, fmt.Errorf("writing to file %s: %w", output, err))
			continue
		}

		results.addWrite(res.path, len(res.data))
	}
}

func (r *writeResult) addWrite(path string, rows int) {
	r.mu.Lock()
	r.writes[path] = rows
	r.mu.Unlock()
}

func (r *writeResult) addFailure(path string, err error) {
	r.mu.Lock()
	r.failures[path] = err
	r.mu.Unlock()
}
