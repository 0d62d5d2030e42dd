package pipeline

import (
	"context"
	"fmt"

	"gocr/internal/logger"
	"gocr/internal/ocr"
)

// performOcr owns one engine for its lifetime; engines are not shared
// between workers. When the engine cannot be created every image the worker
// picks up is reported as failed. Images that could not be loaded are passed
// through as failures without touching the engine.
func performOcr(ctx context.Context, mode ocr.Mode, loadedChan <-chan loadedImage, ocrChan chan<- ocr.OCRResult, errChan chan<- error) {
	ctxClients := ctx.Value(clientsKey)
	proc, ok := ctxClients.(*Clients)
	if !ok {
		logger.DebugLog("[performOcr]: missing clients in context")
		errChan <- fmt.Errorf("[performOcr]: missing clients in context")
		return
	}

	ocrEngine, engineErr := proc.factory(proc.engineType, proc.settings)
	if engineErr != nil {
		logger.DebugLog("[performOcr]: failed to create OCR engine: %v", engineErr)
	} else {
		defer func() {
			logger.DebugLog("[performOcr]: closing OCR engine")
			ocrEngine.Close()
		}()
	}

	for item := range loadedChan {
		if ctx.Err() != nil {
			logger.DebugLog("[performOcr]: context cancelled")
			item.release()
			return
		}

		res := ocr.OCRResult{Filename: item.Path, Error: engineErr}
		if item.err != nil {
			res.Error = item.err
		} else if engineErr == nil {
			logger.DebugLog("[performOcr]: processing image %s", item.Path)
			res.Page, res.Error = ocrEngine.ProcessImage(ocr.Request{
				Filename: item.Path,
				Data:     item.Data,
				Format:   item.Format,
				Mode:     mode,
			})
		}
		item.release()

		logger.DebugLog("[performOcr]: sending OCR result for %s (err=%v)", item.Path, res.Error)
		select {
		case ocrChan <- res:
		case <-ctx.Done():
			logger.DebugLog("[performOcr]: context done while sending OCR result for %s", item.Path)
			return
		}
	}
}
