package tesseract

import (
	"fmt"
	"runtime"

	"gocr/internal/logger"
)

// Variable is the current value of one engine parameter. Known is false when
// the engine has no parameter with that name.
type Variable struct {
	Name  string
	Value string
	Known bool
}

// Info describes the models available to an engine.
type Info struct {
	DataPath  string
	Loaded    []string
	Available []string
}

// Config describes the linked Tesseract library.
type Config struct {
	Version  string
	DataPath string
}

// SetVariable sets an engine parameter. It returns the engine so calls can be
// chained, and fails with ErrInvalidParameter when the engine rejects name.
func (e *Engine) SetVariable(name, value string) (*Engine, error) {
	if err := e.check(); err != nil {
		return e, err
	}
	defer runtime.KeepAlive(e)

	if !e.api.setVariable(name, value) {
		return e, newError(CodeInvalidParameter, name, "failed to set variable %s", name)
	}
	logger.DebugLog("[tesseract.SetVariable]: %s=%q", name, value)
	return e, nil
}

// GetVariables reads the current value of each named parameter. Unknown
// names are reported with Known=false rather than as an error.
func (e *Engine) GetVariables(names ...string) ([]Variable, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	defer runtime.KeepAlive(e)

	out := make([]Variable, len(names))
	for i, name := range names {
		value, ok := e.api.variable(name)
		out[i] = Variable{Name: name, Value: value, Known: ok}
	}
	return out, nil
}

// Info reports the engine's data path with its loaded and available languages.
func (e *Engine) Info() (Info, error) {
	if err := e.check(); err != nil {
		return Info{}, err
	}
	defer runtime.KeepAlive(e)

	return Info{
		DataPath:  e.api.dataPath(),
		Loaded:    e.api.loadedLanguages(),
		Available: e.api.availableLanguages(),
	}, nil
}

// ValidateParams reports, for each name, whether it is a Tesseract parameter.
// It uses a private analysis-only engine and never touches live engines.
func ValidateParams(names ...string) ([]bool, error) {
	out := make([]bool, len(names))
	err := analyse(func(api nativeAPI) {
		for i, name := range names {
			_, out[i] = api.variable(name)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListConfig returns the library version and its default data path.
func ListConfig() (Config, error) {
	cfg := Config{Version: native.version()}
	err := analyse(func(api nativeAPI) {
		cfg.DataPath = api.dataPath()
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// PrintParams writes every engine parameter with its default value and
// description to path.
func PrintParams(path string) error {
	var ok bool
	err := analyse(func(api nativeAPI) {
		ok = api.printVariables(path)
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("tesseract: write parameters to %s: cannot open file", path)
	}
	return nil
}
