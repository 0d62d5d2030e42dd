package tesseract

// The binding talks to Tesseract and Leptonica only through the types in this
// file. native_cgo.go implements them on top of the C APIs; native_stub.go is
// used when cgo is disabled.

// nativeAPI is one TessBaseAPI instance.
type nativeAPI interface {
	clearAdaptiveClassifier()
	setImage(pix nativePix)
	sourceYResolution() int
	setSourceResolution(ppi int)
	// utf8Text and hocrText return false when the engine produced no text
	// object at all.
	utf8Text() (string, bool)
	hocrText() (string, bool)
	recognize() bool
	// words returns nil when there is no result to iterate.
	words() wordIterator
	clear()
	end()

	setVariable(name, value string) bool
	variable(name string) (string, bool)
	dataPath() string
	loadedLanguages() []string
	availableLanguages() []string
	printVariables(path string) bool
}

// nativePix is a decoded Leptonica image.
type nativePix interface {
	destroy()
}

// wordIterator walks a recognition result at word level in reading order.
type wordIterator interface {
	// text returns false when the current element has no text.
	text() (string, bool)
	confidence() float64
	boundingBox() (BoundingBox, bool)
	next() bool
	release()
}

type initParams struct {
	dataPath string
	language string
	configs  []string
	names    []string
	values   []string
}

type nativeLibrary struct {
	version      func() string
	open         func(p initParams) (nativeAPI, error)
	openAnalysis func() (nativeAPI, error)
	// Readers return nil when the image cannot be decoded.
	readFile      func(path string) nativePix
	readMem       func(data []byte) nativePix
	readMemFormat func(data []byte, format Format) nativePix
}

var native = newNativeLibrary()
