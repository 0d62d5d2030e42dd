package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"gocr/internal/data"
	"gocr/internal/image"
	"gocr/internal/logger"
	"gocr/internal/ocr"
	"gocr/internal/ocr/engine"
	"gocr/internal/writer"
)

// EngineFactory builds one engine per OCR worker.
type EngineFactory func(engineType string, settings ocr.Settings) (ocr.OCREngine, error)

// Options configure a batch run. Mode is ocr.ModeText for one row per page
// or ocr.ModeWords for one row per word.
type Options struct {
	Engine    string
	Settings  ocr.Settings
	ImagesDir string
	OutputDir string
	Mode      ocr.Mode
	Workers   int
	Enhance   bool
	TSV       bool
	Factory   EngineFactory
}

// Report summarises a batch run. Writes maps each image to the number of
// rows written for it.
type Report struct {
	RunID      string
	OutputFile string
	Writes     map[string]int
	Failures   map[string]error
	Stats      Stats
}

type result[T any] struct {
	path string
	data []T
	err  error
}

type writeResult struct {
	mu       sync.Mutex
	writes   map[string]int
	failures map[string]error
}

type Clients struct {
	engineType string
	settings   ocr.Settings
	factory    EngineFactory
	image      *image.ImageProcessor
	enhance    bool
}

type contextKey string

const clientsKey contextKey = "all_my_clients"

const outputFileKey contextKey = "output_file"

func (o Options) outputFile() string {
	kind := "text"
	if o.Mode == ocr.ModeWords {
		kind = "words"
	}
	ext := "csv"
	if o.TSV {
		ext = "tsv"
	}
	name := o.Engine
	if name == "" {
		name = engine.TypeTesseract
	}
	return filepath.Join(o.OutputDir, fmt.Sprintf("%s_%s.%s", name, kind, ext))
}

// Run recognises every image in opts.ImagesDir and writes the results to a
// single CSV file under opts.OutputDir.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Mode == ocr.ModeHOCR {
		return nil, fmt.Errorf("batch output does not support %s mode", opts.Mode)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Factory == nil {
		opts.Factory = engine.New
	}

	report := &Report{RunID: uuid.NewString(), OutputFile: opts.outputFile()}
	logger.DebugLog("Pipeline %s started with engine=%s, directory=%s, output=%s, workers=%d",
		report.RunID, opts.Engine, opts.ImagesDir, report.OutputFile, opts.Workers)

	var comma []writer.Option
	if opts.TSV {
		comma = append(comma, writer.WithComma('\t'))
	}

	var results *writeResult
	if opts.Mode == ocr.ModeWords {
		w := writer.NewCSVWriter(data.MapWordRecord, data.GetWordHeader, comma...)
		results, report.Stats = run(ctx, opts, report.OutputFile, w, wordRows)
	} else {
		w := writer.NewCSVWriter(data.MapTextRecord, data.GetTextHeader, comma...)
		results, report.Stats = run(ctx, opts, report.OutputFile, w, textRows)
	}

	report.Writes = results.writes
	report.Failures = results.failures
	logger.DebugLog("Pipeline %s finished: %d written, %d failed", report.RunID, len(report.Writes), len(report.Failures))
	return report, nil
}

func wordRows(res ocr.OCRResult) []data.WordRecord {
	return data.WordRecords(filepath.Base(res.Filename), res.Words)
}

func textRows(res ocr.OCRResult) []data.TextRecord {
	return []data.TextRecord{data.NewTextRecord(filepath.Base(res.Filename), res.Text)}
}

func run[T any](ctx context.Context, opts Options, outputFile string, w *writer.CSVWriter[T], rows func(ocr.OCRResult) []T) (*writeResult, Stats) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clients := &Clients{
		engineType: opts.Engine,
		settings:   opts.Settings,
		factory:    opts.Factory,
		image:      image.NewImageProcessor(),
		enhance:    opts.Enhance,
	}

	// Embed clients in context
	ctx = context.WithValue(ctx, clientsKey, clients)
	ctx = context.WithValue(ctx, outputFileKey, outputFile)

	errChan := make(chan error, 10)                    // Errors from every stage, drained by the collector below
	files := make(chan string)                         // Unbuffered channel for file paths
	loadedChan := make(chan loadedImage, opts.Workers) // Bounded buffer to throttle image loading
	ocrChan := make(chan ocr.OCRResult)                // OCR results from all workers
	rowsChan := make(chan result[T], 10)               // Rows ready for the writer
	results := &writeResult{
		writes:   make(map[string]int),
		failures: make(map[string]error),
	}

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for err := range errChan {
			if err != nil {
				logger.DebugLog("Error received in errChan: %v", err)
				results.addFailure("pipeline_error", err)
			}
		}
	}()

	var stages sync.WaitGroup
	stages.Add(1)
	go func() {
		defer stages.Done()
		defer close(files)
		logger.DebugLog("Starting [walkFiles] goroutine")
		walkFiles(ctx, opts.ImagesDir, files, errChan)
		defer logger.DebugLog("[walkFiles] goroutine finished")
	}()

	throttle := make(chan struct{}, opts.Workers*2)
	stages.Add(1)
	go func() {
		defer stages.Done()
		defer close(loadedChan)
		logger.DebugLog("Starting [loadImage] goroutine")
		loadImage(ctx, files, loadedChan, throttle, errChan)
		defer logger.DebugLog("[loadImage] goroutine finished")
	}()

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			logger.DebugLog("Starting [performOcr] worker #%d", worker+1)
			performOcr(ctx, opts.Mode, loadedChan, ocrChan, errChan)
			defer logger.DebugLog("[performOcr] worker #%d finished", worker+1)
		}(i)
	}
	go func() {
		wg.Wait()
		logger.DebugLog("All [performOcr] workers finished, closing ocrChan")
		close(ocrChan)
	}()

	// fan-out - forward ocr results to row building + statistics
	rowsInput := make(chan ocr.OCRResult)
	statsInput := make(chan ocr.OCRResult, 10)

	stages.Add(1)
	go func() {
		defer stages.Done()
		logger.DebugLog("Starting [forwardChan] for ocrChan -> rowsInput, statsInput")
		forwardChan(ctx, ocrChan, rowsInput, statsInput)
		defer logger.DebugLog("[forwardChan] for ocrChan finished")
	}()

	stages.Add(1)
	go func() {
		defer stages.Done()
		defer close(rowsChan)
		logger.DebugLog("Starting [buildRows] goroutine")
		buildRows(ctx, rowsInput, rowsChan, rows)
		defer logger.DebugLog("[buildRows] goroutine finished")
	}()

	var stats Stats
	stages.Add(1)
	go func() {
		defer stages.Done()
		logger.DebugLog("Starting [summarize] goroutine")
		stats = summarize(ctx, statsInput)
		defer logger.DebugLog("[summarize] goroutine finished")
	}()

	stages.Add(1)
	go func() {
		defer stages.Done()
		logger.DebugLog("Starting [writeOutput] goroutine")
		writeOutput(ctx, w, rowsChan, results)
		defer logger.DebugLog("[writeOutput] goroutine finished")
	}()

	stages.Wait()
	wg.Wait()
	logger.DebugLog("All stages finished, closing errChan")
	close(errChan)
	<-collected

	return results, stats
}

func buildRows[T any](ctx context.Context, in <-chan ocr.OCRResult, out chan<- result[T], rows func(ocr.OCRResult) []T) {
	for res := range in {
		if ctx.Err() != nil {
			logger.DebugLog("[buildRows]: context cancelled")
			return
		}

		r := result[T]{path: res.Filename, err: res.Error}
		if res.Error == nil {
			r.data = rows(res)
		}
		select {
		case out <- r:
		case <-ctx.Done():
			return
		}
	}
}

func forwardChan[T any](ctx context.Context, in <-chan T, outs ...chan<- T) {
	defer func() {
		for _, out := range outs {
			close(out)
		}
	}()

	for res := range in {
		if ctx.Err() != nil {
			logger.DebugLog("forwardChan: context cancelled")
			return
		}

		logger.DebugLog("forwardChan: forwarding result to %d outputs", len(outs))
		for _, out := range outs {
			select {
			case out <- res:
			case <-ctx.Done():
				logger.DebugLog("forwardChan: context done while forwarding")
				return
			}
		}
	}
}
