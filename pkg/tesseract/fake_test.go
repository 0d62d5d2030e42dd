package tesseract

import (
	"errors"
	"strings"
	"testing"
)

// fakeAPI records the native calls made by an Engine.
type fakeAPI struct {
	calls     []string
	yres      int
	setRes    int
	text      string
	noText    bool
	failRec   bool
	iterWords []fakeWord
	vars      map[string]string
	datapath  string
	loaded    []string
	available []string
	ended     int
	image     *fakePix
	printed   string
}

type fakeWord struct {
	text string
	null bool
	conf float64
	box  BoundingBox
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		yres:      300,
		text:      "HELLO\n",
		vars:      map[string]string{"tessedit_pageseg_mode": "3", "tessedit_char_whitelist": ""},
		datapath:  "/usr/share/tessdata/",
		loaded:    []string{"eng"},
		available: []string{"eng", "osd"},
	}
}

func (f *fakeAPI) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeAPI) clearAdaptiveClassifier() { f.record("clearAdaptive") }

func (f *fakeAPI) setImage(pix nativePix) {
	f.record("setImage")
	f.image = pix.(*fakePix)
}

func (f *fakeAPI) sourceYResolution() int { return f.yres }

func (f *fakeAPI) setSourceResolution(ppi int) {
	f.record("setResolution")
	f.setRes = ppi
}

func (f *fakeAPI) utf8Text() (string, bool) {
	f.record("utf8")
	return f.text, !f.noText
}

func (f *fakeAPI) hocrText() (string, bool) {
	f.record("hocr")
	return "<div class='ocr_page'>" + f.text + "</div>", !f.noText
}

func (f *fakeAPI) recognize() bool {
	f.record("recognize")
	return !f.failRec
}

func (f *fakeAPI) words() wordIterator {
	f.record("words")
	if f.iterWords == nil {
		return nil
	}
	return &fakeIterator{api: f, words: f.iterWords}
}

func (f *fakeAPI) clear() { f.record("clear") }

func (f *fakeAPI) end() {
	f.record("end")
	f.ended++
}

func (f *fakeAPI) setVariable(name, value string) bool {
	f.record("setVariable")
	if _, ok := f.vars[name]; !ok {
		return false
	}
	f.vars[name] = value
	return true
}

func (f *fakeAPI) variable(name string) (string, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func (f *fakeAPI) dataPath() string            { return f.datapath }
func (f *fakeAPI) loadedLanguages() []string    { return f.loaded }
func (f *fakeAPI) availableLanguages() []string { return f.available }

func (f *fakeAPI) printVariables(path string) bool {
	f.printed = path
	return !strings.HasPrefix(path, "/nonexistent/")
}

type fakePix struct {
	data      []byte
	format    Format
	destroyed int
}

func (p *fakePix) destroy() { p.destroyed++ }

type fakeIterator struct {
	api      *fakeAPI
	words    []fakeWord
	pos      int
	released bool
}

func (it *fakeIterator) text() (string, bool) {
	w := it.words[it.pos]
	return w.text, !w.null
}

func (it *fakeIterator) confidence() float64 { return it.words[it.pos].conf }

func (it *fakeIterator) boundingBox() (BoundingBox, bool) { return it.words[it.pos].box, true }

func (it *fakeIterator) next() bool {
	it.pos++
	return it.pos < len(it.words)
}

func (it *fakeIterator) release() {
	it.released = true
	it.api.record("releaseIterator")
}

// fakeNative installs a native library backed by fakes for the duration of
// the test and returns a handle to inspect it.
type fakeNative struct {
	api      *fakeAPI
	analysis []*fakeAPI
	opened   []initParams
	failOpen bool
	decodes  int
	lastPix  *fakePix
	lastPath string
}

func installFake(t *testing.T) *fakeNative {
	t.Helper()
	fn := &fakeNative{api: newFakeAPI()}
	saved := native
	native = nativeLibrary{
		version: func() string { return "5.3.0-fake" },
		open: func(p initParams) (nativeAPI, error) {
			fn.opened = append(fn.opened, p)
			if fn.failOpen || p.language == "zzz" {
				return nil, errors.New("init returned -1")
			}
			return fn.api, nil
		},
		openAnalysis: func() (nativeAPI, error) {
			a := newFakeAPI()
			a.datapath = "/usr/share/tesseract-ocr/5/tessdata/"
			fn.analysis = append(fn.analysis, a)
			return a, nil
		},
		readFile: func(path string) nativePix {
			fn.decodes++
			fn.lastPath = path
			if !strings.HasSuffix(path, ".png") {
				return nil
			}
			fn.lastPix = &fakePix{}
			return fn.lastPix
		},
		readMem: func(data []byte) nativePix {
			fn.decodes++
			if string(data) == "corrupt" {
				return nil
			}
			fn.lastPix = &fakePix{data: data}
			return fn.lastPix
		},
		readMemFormat: func(data []byte, format Format) nativePix {
			fn.decodes++
			if string(data) == "corrupt" {
				return nil
			}
			fn.lastPix = &fakePix{data: data, format: format}
			return fn.lastPix
		},
	}
	t.Cleanup(func() { native = saved })
	return fn
}

func newFakeEngine(t *testing.T, opts ...Option) (*Engine, *fakeNative) {
	t.Helper()
	fn := installFake(t)
	eng, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { eng.Close() })
	return eng, fn
}
