package tesseract

import (
	"runtime"

	"gocr/internal/logger"
)

// Engine is an initialised Tesseract instance. The zero value is not usable;
// create engines with New and release them with Close.
type Engine struct {
	api      nativeAPI
	dataPath string
	language string
	configs  []string
}

// New initialises a native engine. It fails with ErrInitialization when the
// engine cannot load the requested language data.
func New(opts ...Option) (*Engine, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	logger.DebugLog("[tesseract.New]: datapath=%q lang=%q configs=%v vars=%d", s.dataPath, s.language, s.configs, len(s.names))
	api, err := native.open(initParams{
		dataPath: s.dataPath,
		language: s.language,
		configs:  s.configs,
		names:    s.names,
		values:   s.values,
	})
	if err != nil {
		logger.DebugLog("[tesseract.New]: init failed for %q: %v", s.language, err)
		return nil, initializationError(s.language, err)
	}

	e := &Engine{
		api:      api,
		dataPath: s.dataPath,
		language: s.language,
		configs:  s.configs,
	}
	runtime.SetFinalizer(e, (*Engine).finalize)
	return e, nil
}

// Close releases the native engine. It is safe to call more than once.
func (e *Engine) Close() error {
	if e == nil || e.api == nil {
		return nil
	}
	runtime.SetFinalizer(e, nil)
	e.release()
	return nil
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	return e == nil || e.api == nil
}

// Language returns the language string the engine was created with; "" means
// the engine default ("eng").
func (e *Engine) Language() string {
	if e == nil {
		return ""
	}
	return e.language
}

// DataPath returns the data path the engine was created with, "" when none
// was given.
func (e *Engine) DataPath() string {
	if e == nil {
		return ""
	}
	return e.dataPath
}

func (e *Engine) finalize() {
	logger.DebugLog("[tesseract.Engine]: released by finalizer, lang=%q", e.language)
	e.release()
}

func (e *Engine) release() {
	api := e.api
	e.api = nil
	api.end()
}

func (e *Engine) check() error {
	if e == nil || e.api == nil {
		return invalidHandleError()
	}
	return nil
}

// analyse runs fn against a throwaway analysis-only engine that is released
// before returning.
func analyse(fn func(api nativeAPI)) error {
	api, err := native.openAnalysis()
	if err != nil {
		return initializationError("", err)
	}
	defer api.end()
	fn(api)
	return nil
}
