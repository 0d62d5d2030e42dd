//go:build cgo

package tesseract

/*
#cgo pkg-config: tesseract lept
#include <stdlib.h>
#include <tesseract/capi.h>
#include <leptonica/allheaders.h>

static struct Pix* gocr_read_file(const char *path) { return pixRead(path); }
static struct Pix* gocr_read_mem(const unsigned char *d, size_t n) { return pixReadMem(d, n); }
static struct Pix* gocr_read_png(const unsigned char *d, size_t n) { return pixReadMemPng(d, n); }
static struct Pix* gocr_read_jpeg(const unsigned char *d, size_t n) { return pixReadMemJpeg(d, n, 0, 1, NULL, 0); }
static struct Pix* gocr_read_tiff(const unsigned char *d, size_t n) { return pixReadMemTiff(d, n, 0); }
static struct Pix* gocr_read_gif(const unsigned char *d, size_t n) { return pixReadMemGif(d, n); }
static struct Pix* gocr_read_bmp(const unsigned char *d, size_t n) { return pixReadMemBmp(d, n); }
static void gocr_destroy_pix(struct Pix *pix) { pixDestroy(&pix); }

static int gocr_get_int(TessBaseAPI *api, const char *name, int *out) {
	return TessBaseAPIGetIntVariable(api, name, out) ? 1 : 0;
}
static int gocr_get_bool(TessBaseAPI *api, const char *name, int *out) {
	BOOL v = 0;
	if (!TessBaseAPIGetBoolVariable(api, name, &v)) return 0;
	*out = v ? 1 : 0;
	return 1;
}
static int gocr_get_double(TessBaseAPI *api, const char *name, double *out) {
	return TessBaseAPIGetDoubleVariable(api, name, out) ? 1 : 0;
}
*/
import "C"

import (
	"fmt"
	"strconv"
	"unsafe"
)

func newNativeLibrary() nativeLibrary {
	return nativeLibrary{
		version:       cVersion,
		open:          cOpen,
		openAnalysis:  cOpenAnalysis,
		readFile:      cReadFile,
		readMem:       cReadMem,
		readMemFormat: cReadMemFormat,
	}
}

func cVersion() string {
	return C.GoString(C.TessVersion())
}

func cOpen(p initParams) (nativeAPI, error) {
	h := C.TessBaseAPICreate()
	if h == nil {
		return nil, fmt.Errorf("TessBaseAPICreate returned NULL")
	}

	path := cStringOrNil(p.dataPath)
	defer C.free(unsafe.Pointer(path))
	lang := cStringOrNil(p.language)
	defer C.free(unsafe.Pointer(lang))
	configs, freeConfigs := cStringArray(p.configs)
	defer freeConfigs()
	names, freeNames := cStringArray(p.names)
	defer freeNames()
	values, freeValues := cStringArray(p.values)
	defer freeValues()

	rc := C.TessBaseAPIInit4(h, path, lang, C.OEM_DEFAULT,
		configs, C.int(len(p.configs)),
		names, values, C.size_t(len(p.names)), 0)
	if rc != 0 {
		C.TessBaseAPIDelete(h)
		return nil, fmt.Errorf("TessBaseAPIInit4 returned %d", int(rc))
	}
	return &cAPI{h: h}, nil
}

func cOpenAnalysis() (nativeAPI, error) {
	h := C.TessBaseAPICreate()
	if h == nil {
		return nil, fmt.Errorf("TessBaseAPICreate returned NULL")
	}
	C.TessBaseAPIInitForAnalysePage(h)
	return &cAPI{h: h}, nil
}

// cStringOrNil returns NULL for "" so the engine falls back to its defaults.
func cStringOrNil(s string) *C.char {
	if s == "" {
		return nil
	}
	return C.CString(s)
}

func cStringArray(ss []string) (**C.char, func()) {
	if len(ss) == 0 {
		return nil, func() {}
	}
	arr := (**C.char)(C.malloc(C.size_t(len(ss)) * C.size_t(unsafe.Sizeof((*C.char)(nil)))))
	view := unsafe.Slice(arr, len(ss))
	for i, s := range ss {
		view[i] = C.CString(s)
	}
	return arr, func() {
		for _, p := range view {
			C.free(unsafe.Pointer(p))
		}
		C.free(unsafe.Pointer(arr))
	}
}

// goText copies a Tesseract-allocated string and frees it.
func goText(t *C.char) (string, bool) {
	if t == nil {
		return "", false
	}
	defer C.TessDeleteText(t)
	return C.GoString(t), true
}

// goTextArray copies a NULL-terminated Tesseract string array and frees it.
func goTextArray(arr **C.char) []string {
	out := []string{}
	if arr == nil {
		return out
	}
	defer C.TessDeleteTextArray(arr)
	for p := arr; *p != nil; p = (**C.char)(unsafe.Add(unsafe.Pointer(p), unsafe.Sizeof(*p))) {
		out = append(out, C.GoString(*p))
	}
	return out
}

type cAPI struct {
	h *C.TessBaseAPI
}

func (a *cAPI) clearAdaptiveClassifier() { C.TessBaseAPIClearAdaptiveClassifier(a.h) }

func (a *cAPI) setImage(pix nativePix) { C.TessBaseAPISetImage2(a.h, pix.(*cPix).p) }

func (a *cAPI) sourceYResolution() int { return int(C.TessBaseAPIGetSourceYResolution(a.h)) }

func (a *cAPI) setSourceResolution(ppi int) { C.TessBaseAPISetSourceResolution(a.h, C.int(ppi)) }

func (a *cAPI) utf8Text() (string, bool) { return goText(C.TessBaseAPIGetUTF8Text(a.h)) }

func (a *cAPI) hocrText() (string, bool) { return goText(C.TessBaseAPIGetHOCRText(a.h, 0)) }

func (a *cAPI) recognize() bool { return C.TessBaseAPIRecognize(a.h, nil) == 0 }

func (a *cAPI) words() wordIterator {
	ri := C.TessBaseAPIGetIterator(a.h)
	if ri == nil {
		return nil
	}
	return &cWordIterator{ri: ri}
}

func (a *cAPI) clear() { C.TessBaseAPIClear(a.h) }

func (a *cAPI) end() {
	C.TessBaseAPIEnd(a.h)
	C.TessBaseAPIDelete(a.h)
	a.h = nil
}

func (a *cAPI) setVariable(name, value string) bool {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cValue := C.CString(value)
	defer C.free(unsafe.Pointer(cValue))
	return C.TessBaseAPISetVariable(a.h, cName, cValue) != 0
}

// variable probes the typed getters in turn; the C API has no untyped lookup.
func (a *cAPI) variable(name string) (string, bool) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var i C.int
	if C.gocr_get_int(a.h, cName, &i) != 0 {
		return strconv.Itoa(int(i)), true
	}
	var b C.int
	if C.gocr_get_bool(a.h, cName, &b) != 0 {
		return strconv.Itoa(int(b)), true
	}
	var d C.double
	if C.gocr_get_double(a.h, cName, &d) != 0 {
		return strconv.FormatFloat(float64(d), 'g', -1, 64), true
	}
	if s := C.TessBaseAPIGetStringVariable(a.h, cName); s != nil {
		return C.GoString(s), true
	}
	return "", false
}

func (a *cAPI) dataPath() string { return C.GoString(C.TessBaseAPIGetDatapath(a.h)) }

func (a *cAPI) loadedLanguages() []string {
	return goTextArray(C.TessBaseAPIGetLoadedLanguagesAsVector(a.h))
}

func (a *cAPI) availableLanguages() []string {
	return goTextArray(C.TessBaseAPIGetAvailableLanguagesAsVector(a.h))
}

func (a *cAPI) printVariables(path string) bool {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	return C.TessBaseAPIPrintVariablesToFile(a.h, cPath) != 0
}

type cPix struct {
	p *C.struct_Pix
}

func (p *cPix) destroy() {
	if p.p != nil {
		C.gocr_destroy_pix(p.p)
		p.p = nil
	}
}

func wrapPix(p *C.struct_Pix) nativePix {
	if p == nil {
		return nil
	}
	return &cPix{p: p}
}

func cReadFile(path string) nativePix {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	return wrapPix(C.gocr_read_file(cPath))
}

func cReadMem(data []byte) nativePix {
	if len(data) == 0 {
		return nil
	}
	return wrapPix(C.gocr_read_mem((*C.uchar)(unsafe.Pointer(&data[0])), C.size_t(len(data))))
}

func cReadMemFormat(data []byte, format Format) nativePix {
	if len(data) == 0 {
		return nil
	}
	d := (*C.uchar)(unsafe.Pointer(&data[0]))
	n := C.size_t(len(data))
	switch format {
	case FormatPNG:
		return wrapPix(C.gocr_read_png(d, n))
	case FormatJPEG:
		return wrapPix(C.gocr_read_jpeg(d, n))
	case FormatTIFF:
		return wrapPix(C.gocr_read_tiff(d, n))
	case FormatGIF:
		return wrapPix(C.gocr_read_gif(d, n))
	case FormatBMP:
		return wrapPix(C.gocr_read_bmp(d, n))
	default:
		return nil
	}
}

type cWordIterator struct {
	ri *C.TessResultIterator
}

func (it *cWordIterator) text() (string, bool) {
	return goText(C.TessResultIteratorGetUTF8Text(it.ri, C.RIL_WORD))
}

func (it *cWordIterator) confidence() float64 {
	return float64(C.TessResultIteratorConfidence(it.ri, C.RIL_WORD))
}

func (it *cWordIterator) boundingBox() (BoundingBox, bool) {
	pi := C.TessResultIteratorGetPageIterator(it.ri)
	var left, top, right, bottom C.int
	if C.TessPageIteratorBoundingBox(pi, C.RIL_WORD, &left, &top, &right, &bottom) == 0 {
		return BoundingBox{}, false
	}
	return BoundingBox{X1: int(left), Y1: int(top), X2: int(right), Y2: int(bottom)}, true
}

func (it *cWordIterator) next() bool {
	return C.TessResultIteratorNext(it.ri, C.RIL_WORD) != 0
}

func (it *cWordIterator) release() {
	C.TessResultIteratorDelete(it.ri)
	it.ri = nil
}
