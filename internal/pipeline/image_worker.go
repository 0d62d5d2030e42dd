package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gocr/internal/logger"
	"gocr/pkg/tesseract"
)

type loadedImage struct {
	Path    string
	Data    []byte
	Format  tesseract.Format
	err     error
	release func()
}

func loadImage(ctx context.Context, files <-chan string, results chan<- loadedImage, throttledChan chan struct{}, errChan chan<- error) {
	ctxClients := ctx.Value(clientsKey)
	proc, ok := ctxClients.(*Clients)
	if !ok {
		logger.DebugLog("[loadImage]: missing clients in context")
		errChan <- fmt.Errorf("[loadImage]: missing clients in context")
		return
	}

	for file := range files {
		if ctx.Err() != nil {
			logger.DebugLog("[loadImage]: context cancelled")
			return
		}

		select {
		case throttledChan <- struct{}{}:
		case <-ctx.Done():
			logger.DebugLog("[loadImage]: context done before acquiring semaphore for %s", file)
			return
		}

		logger.DebugLog("[loadImage]: loading file %s (in-flight permits=%d)", file, len(throttledChan))
		item, err := readImage(proc, file)
		if err != nil {
			logger.DebugLog("[loadImage]: error loading %s: %v", file, err)
			item = loadedImage{Path: file, err: fmt.Errorf("loading image %s: %w", file, err)}
		}

		item.release = func() { <-throttledChan }
		select {
		case results <- item:
		case <-ctx.Done():
			logger.DebugLog("[loadImage]: context done while sending %s", file)
			item.release()
			return
		}
	}
}

// readImage returns the file bytes, enhanced when the run asks for it. The
// format is taken from the extension; unknown extensions fall back to
// content sniffing.
func readImage(proc *Clients, path string) (loadedImage, error) {
	if proc.enhance {
		data, err := proc.image.EnhanceFile(path)
		if err != nil {
			return loadedImage{}, err
		}
		return loadedImage{Path: path, Data: data, Format: tesseract.FormatPNG}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return loadedImage{}, err
	}
	format, err := tesseract.ParseFormat(filepath.Ext(path))
	if err != nil {
		format = tesseract.FormatAuto
	}
	return loadedImage{Path: path, Data: data, Format: format}, nil
}
