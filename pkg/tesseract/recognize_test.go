package tesseract

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestRecognizeText_CallSequence(t *testing.T) {
	// Arrange
	eng, fn := newFakeEngine(t)

	// Act
	text, err := eng.RecognizeText(ImageFromBytes([]byte("png-bytes")), ModeText)

	// Assert
	if err != nil {
		t.Fatalf("RecognizeText() error = %v", err)
	}
	if text != "HELLO\n" {
		t.Errorf("unexpected text %q", text)
	}
	want := []string{"clearAdaptive", "setImage", "utf8", "clear"}
	if !reflect.DeepEqual(fn.api.calls, want) {
		t.Errorf("expected calls %v, got %v", want, fn.api.calls)
	}
	if fn.lastPix.destroyed != 1 {
		t.Errorf("expected image destroyed once, got %d", fn.lastPix.destroyed)
	}
}

func TestRecognizeText_HOCR(t *testing.T) {
	// Arrange
	eng, fn := newFakeEngine(t)

	// Act
	markup, err := eng.RecognizeText(ImageFromFile("page.png"), ModeHOCR)

	// Assert
	if err != nil {
		t.Fatalf("RecognizeText() error = %v", err)
	}
	if !strings.Contains(markup, "ocr_page") {
		t.Errorf("expected hOCR markup, got %q", markup)
	}
	if fn.lastPath != "page.png" {
		t.Errorf("expected file read of page.png, got %q", fn.lastPath)
	}
}

func TestRecognize_ResolutionGuard(t *testing.T) {
	testCases := []struct {
		yres    int
		wantSet int
	}{
		{yres: 0, wantSet: 300},
		{yres: 69, wantSet: 300},
		{yres: 70, wantSet: 0},
		{yres: 300, wantSet: 0},
	}

	for _, tc := range testCases {
		// Arrange
		eng, fn := newFakeEngine(t)
		fn.api.yres = tc.yres

		// Act
		if _, err := eng.RecognizeText(ImageFromBytes([]byte("img")), ModeText); err != nil {
			t.Fatalf("RecognizeText() error = %v", err)
		}

		// Assert
		if fn.api.setRes != tc.wantSet {
			t.Errorf("yres=%d: expected resolution set to %d, got %d", tc.yres, tc.wantSet, fn.api.setRes)
		}
	}
}

func TestRecognize_DecodeErrors(t *testing.T) {
	testCases := []struct {
		name    string
		img     Image
		code    Code
		decodes int
		subject string
	}{
		{name: "empty buffer", img: ImageFromBytes(nil), code: CodeImageDecode, decodes: 0},
		{name: "corrupt buffer", img: ImageFromBytes([]byte("corrupt")), code: CodeImageDecode, decodes: 1},
		{name: "unreadable file", img: ImageFromFile("/missing/scan.tif"), code: CodeImageDecode, decodes: 1, subject: "/missing/scan.tif"},
		{name: "empty path", img: ImageFromFile(""), code: CodeImageDecode, decodes: 0},
		{name: "corrupt with format", img: ImageFromBytesWithFormat([]byte("corrupt"), FormatGIF), code: CodeImageDecode, decodes: 1},
		{name: "unknown format", img: ImageFromBytesWithFormat([]byte("RIFF"), Format("webp")), code: CodeUnsupportedFormat, decodes: 0, subject: "webp"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			eng, fn := newFakeEngine(t)

			// Act
			text, err := eng.RecognizeText(tc.img, ModeText)

			// Assert
			if CodeOf(err) != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
			if text != "" {
				t.Errorf("expected no result on failure, got %q", text)
			}
			if fn.decodes != tc.decodes {
				t.Errorf("expected %d decode attempts, got %d", tc.decodes, fn.decodes)
			}
			if tc.subject != "" && !strings.Contains(err.Error(), tc.subject) {
				t.Errorf("error %q does not name %q", err, tc.subject)
			}
			if len(fn.api.calls) != 0 {
				t.Errorf("engine touched after decode failure: %v", fn.api.calls)
			}
		})
	}
}

func TestRecognizeBytesWithFormat(t *testing.T) {
	testCases := []struct {
		token string
		want  Format
	}{
		{token: "png", want: FormatPNG},
		{token: "JPEG", want: FormatJPEG},
		{token: "jpg", want: FormatJPEG},
		{token: "tiff", want: FormatTIFF},
		{token: ".tif", want: FormatTIFF},
		{token: "gif", want: FormatGIF},
		{token: "bmp", want: FormatBMP},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			// Arrange
			eng, fn := newFakeEngine(t)

			// Act
			text, err := eng.RecognizeBytesWithFormat([]byte("data"), tc.token)

			// Assert
			if err != nil {
				t.Fatalf("RecognizeBytesWithFormat() error = %v", err)
			}
			if text != "HELLO\n" {
				t.Errorf("unexpected text %q", text)
			}
			if fn.lastPix.format != tc.want {
				t.Errorf("expected %s decoder, got %s", tc.want, fn.lastPix.format)
			}
		})
	}
}

func TestRecognizeBytesWithFormat_Unsupported(t *testing.T) {
	// Arrange
	eng, fn := newFakeEngine(t)

	// Act
	_, err := eng.RecognizeBytesWithFormat([]byte("RIFF....WEBP"), "webp")

	// Assert
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "webp") {
		t.Errorf("error %q does not name the format", err)
	}
	if fn.decodes != 0 {
		t.Errorf("expected no decode attempt, got %d", fn.decodes)
	}
}

func TestRecognizeWords_SkipsEmptyAndKeepsWalking(t *testing.T) {
	// Arrange
	eng, fn := newFakeEngine(t)
	fn.api.iterWords = []fakeWord{
		{text: "one", conf: 91.5, box: BoundingBox{10, 10, 40, 30}},
		{null: true},
		{text: " ", conf: 12},
		{text: "two", conf: 120, box: BoundingBox{50, 10, 80, 30}},
		{text: "three", conf: -1, box: BoundingBox{90, 10, 140, 30}},
	}

	// Act
	words, err := eng.RecognizeWords(ImageFromBytes([]byte("img")))

	// Assert
	if err != nil {
		t.Fatalf("RecognizeWords() error = %v", err)
	}
	want := []Word{
		{Text: "one", Confidence: 91.5, Box: BoundingBox{10, 10, 40, 30}},
		{Text: "two", Confidence: 100, Box: BoundingBox{50, 10, 80, 30}},
		{Text: "three", Confidence: 0, Box: BoundingBox{90, 10, 140, 30}},
	}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("expected %+v, got %+v", want, words)
	}
	wantCalls := []string{"clearAdaptive", "setImage", "recognize", "words", "releaseIterator", "clear"}
	if !reflect.DeepEqual(fn.api.calls, wantCalls) {
		t.Errorf("expected calls %v, got %v", wantCalls, fn.api.calls)
	}
}

func TestRecognizeWords_NoIterator(t *testing.T) {
	// Arrange
	eng, _ := newFakeEngine(t)

	// Act
	words, err := eng.RecognizeWords(ImageFromBytes([]byte("blank")))

	// Assert
	if err != nil {
		t.Fatalf("RecognizeWords() error = %v", err)
	}
	if words == nil || len(words) != 0 {
		t.Errorf("expected empty, non-nil table, got %#v", words)
	}
}

func TestRecognize_FailureReleasesAndKeepsEngineUsable(t *testing.T) {
	// Arrange
	eng, fn := newFakeEngine(t)
	fn.api.failRec = true

	// Act
	words, err := eng.RecognizeWords(ImageFromBytes([]byte("img")))
	failedPix := fn.lastPix
	fn.api.failRec = false
	fn.api.iterWords = []fakeWord{{text: "ok", conf: 80, box: BoundingBox{1, 1, 5, 5}}}
	again, errAgain := eng.RecognizeWords(ImageFromBytes([]byte("img")))

	// Assert
	if !errors.Is(err, ErrRecognition) || words != nil {
		t.Fatalf("expected ErrRecognition and no result, got %v %v", words, err)
	}
	if failedPix.destroyed != 1 {
		t.Errorf("image not released after failure")
	}
	if errAgain != nil || len(again) != 1 {
		t.Errorf("engine unusable after failure: %v %v", again, errAgain)
	}
}

func TestRecognizeText_NoResult(t *testing.T) {
	// Arrange
	eng, fn := newFakeEngine(t)
	fn.api.noText = true

	// Act
	_, err := eng.RecognizeText(ImageFromBytes([]byte("img")), ModeHOCR)

	// Assert
	if !errors.Is(err, ErrRecognition) {
		t.Fatalf("expected ErrRecognition, got %v", err)
	}
	if fn.api.calls[len(fn.api.calls)-1] != "clear" {
		t.Errorf("per-call state not cleared: %v", fn.api.calls)
	}
}

func TestRecognize_DoesNotMutateConfiguration(t *testing.T) {
	// Arrange
	eng, fn := newFakeEngine(t, WithLanguage("eng"), WithDataPath("/data"))
	before, _ := eng.GetVariables("tessedit_pageseg_mode", "tessedit_char_whitelist")

	// Act
	for i := 0; i < 3; i++ {
		if _, err := eng.RecognizeText(ImageFromBytes([]byte("img")), ModeText); err != nil {
			t.Fatalf("RecognizeText() error = %v", err)
		}
	}
	after, _ := eng.GetVariables("tessedit_pageseg_mode", "tessedit_char_whitelist")

	// Assert
	if eng.Language() != "eng" || eng.DataPath() != "/data" {
		t.Errorf("configuration changed: %q %q", eng.Language(), eng.DataPath())
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("variables changed: %v -> %v", before, after)
	}
	for _, c := range fn.api.calls {
		if c == "setVariable" {
			t.Errorf("recognition set a variable")
		}
	}
}
