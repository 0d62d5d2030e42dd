package writer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

type WriteMode int

const (
	ModeReplace WriteMode = iota
	ModeAppend
)

var ErrClosed = errors.New("writer is shutting down")

type MapperFunc[T any] func(T) []string

type HeaderFunc[T any] func() []string

type WriteRequest[T any] struct {
	Data       []T
	OutputPath string
	Mode       WriteMode
	ResponseCh chan error
}

type Option func(*options)

type options struct {
	comma rune
}

// WithComma sets the field delimiter, '\t' for TSV output.
func WithComma(r rune) Option {
	return func(o *options) { o.comma = r }
}

// CSVWriter serialises record writes from many goroutines through a single
// worker so rows of one request are never interleaved with another's.
type CSVWriter[T any] struct {
	queue         chan WriteRequest[T]
	shutdown      chan struct{}
	done          chan struct{}
	wg            sync.WaitGroup
	once          sync.Once
	headerTracker map[string]bool // Track if file has header written
	mu            sync.Mutex
	mapper        MapperFunc[T]
	header        HeaderFunc[T]
	comma         rune
}

func NewCSVWriter[T any](mapper MapperFunc[T], header HeaderFunc[T], opts ...Option) *CSVWriter[T] {
	o := options{comma: ','}
	for _, opt := range opts {
		opt(&o)
	}
	cw := &CSVWriter[T]{
		queue:         make(chan WriteRequest[T], 100),
		shutdown:      make(chan struct{}),
		done:          make(chan struct{}),
		headerTracker: make(map[string]bool),
		mapper:        mapper,
		header:        header,
		comma:         o.comma,
	}
	cw.startWorker()
	return cw
}

func (cw *CSVWriter[T]) startWorker() {
	cw.wg.Add(1)
	go func() {
		defer cw.wg.Done()
		defer close(cw.done)
		for {
			select {
			case req := <-cw.queue:
				req.ResponseCh <- cw.writeToFileSync(req.Data, req.OutputPath, req.Mode)
			case <-cw.shutdown:
				cw.drain()
				return
			}
		}
	}()
}

// drain finishes requests that were queued before shutdown.
func (cw *CSVWriter[T]) drain() {
	for {
		select {
		case req := <-cw.queue:
			req.ResponseCh <- cw.writeToFileSync(req.Data, req.OutputPath, req.Mode)
		default:
			return
		}
	}
}

func (cw *CSVWriter[T]) Close() {
	cw.once.Do(func() {
		close(cw.shutdown)
		cw.wg.Wait()
	})
}

func (cw *CSVWriter[T]) WriteToFile(data []T, outputPath string, overwrite ...bool) error {
	if len(overwrite) > 0 && overwrite[0] {
		return cw.WriteToFileWithMode(data, outputPath, ModeReplace)
	}
	return cw.WriteToFileWithMode(data, outputPath, ModeAppend)
}

func (cw *CSVWriter[T]) WriteToFileWithMode(data []T, outputPath string, mode WriteMode) error {
	select {
	case <-cw.shutdown:
		return ErrClosed
	default:
	}

	responseCh := make(chan error, 1)
	req := WriteRequest[T]{
		Data:       data,
		OutputPath: outputPath,
		Mode:       mode,
		ResponseCh: responseCh,
	}

	select {
	case cw.queue <- req:
	case <-cw.shutdown:
		return ErrClosed
	}

	select {
	case err := <-responseCh:
		return err
	case <-cw.done:
		// the worker may have answered just before exiting
		select {
		case err := <-responseCh:
			return err
		default:
		}
		return ErrClosed
	}
}

// Write streams a header and data to w without going through the worker.
func (cw *CSVWriter[T]) Write(w io.Writer, data []T) error {
	return cw.write(w, data, true)
}

func (cw *CSVWriter[T]) write(w io.Writer, data []T, withHeader bool) error {
	writer := csv.NewWriter(w)
	writer.Comma = cw.comma

	if withHeader && len(data) > 0 {
		if err := writer.Write(cw.header()); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}
	for _, item := range data {
		if err := writer.Write(cw.mapper(item)); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (cw *CSVWriter[T]) writeToFileSync(data []T, outputPath string, mode WriteMode) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	cw.mu.Lock()
	defer cw.mu.Unlock()
	hasHeader := cw.headerTracker[outputPath]

	var file *os.File
	var err error

	// Append only to files this writer has already started; anything else is recreated
	if mode == ModeAppend && hasHeader {
		file, err = os.OpenFile(outputPath, os.O_APPEND|os.O_WRONLY, 0644)
	} else {
		file, err = os.Create(outputPath)
		hasHeader = false
	}
	if err != nil {
		return fmt.Errorf("opening CSV file: %w", err)
	}
	defer file.Close()

	if err := cw.write(file, data, !hasHeader); err != nil {
		return err
	}
	if !hasHeader && len(data) > 0 {
		cw.headerTracker[outputPath] = true
	}
	return nil
}
