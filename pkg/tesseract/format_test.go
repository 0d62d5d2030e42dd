package tesseract

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		token   string
		want    Format
		wantErr bool
	}{
		{token: "png", want: FormatPNG},
		{token: "PNG", want: FormatPNG},
		{token: "jpeg", want: FormatJPEG},
		{token: "jpg", want: FormatJPEG},
		{token: "tiff", want: FormatTIFF},
		{token: "tif", want: FormatTIFF},
		{token: " gif ", want: FormatGIF},
		{token: ".bmp", want: FormatBMP},
		{token: "webp", wantErr: true},
		{token: "", wantErr: true},
		{token: "pdf", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ParseFormat(tc.token)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) error = %v", tc.token, err)
			}
			if got != tc.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tc.token, got, tc.want)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(string(f))
		if err != nil || got != f {
			t.Errorf("format %s does not round-trip: %s %v", f, got, err)
		}
	}
}
