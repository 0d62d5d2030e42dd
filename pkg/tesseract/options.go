package tesseract

import "strings"

const defaultLanguage = "eng"

type settings struct {
	dataPath string
	language string
	configs  []string
	names    []string
	values   []string
}

// Option configures an Engine at creation.
type Option func(*settings)

// WithDataPath sets the directory holding the traineddata files. Without it
// the engine uses TESSDATA_PREFIX or its compiled-in default.
func WithDataPath(path string) Option {
	return func(s *settings) { s.dataPath = path }
}

// WithLanguage selects the models to load. Several languages are combined as
// "eng+deu". The engine loads "eng" when no language is given.
func WithLanguage(langs ...string) Option {
	return func(s *settings) {
		s.language = strings.Join(nonEmpty(langs), "+")
	}
}

// WithConfigFiles adds Tesseract config files, applied in order.
func WithConfigFiles(paths ...string) Option {
	return func(s *settings) { s.configs = append(s.configs, nonEmpty(paths)...) }
}

// WithVariable sets an engine parameter during initialisation. When the same
// name is given twice the later value wins.
func WithVariable(name, value string) Option {
	return func(s *settings) {
		s.names = append(s.names, name)
		s.values = append(s.values, value)
	}
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
