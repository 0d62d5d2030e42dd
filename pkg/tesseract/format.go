package tesseract

import "strings"

// Format selects a specific Leptonica decoder for in-memory images.
type Format string

const (
	// FormatAuto lets Leptonica sniff the format from the data.
	FormatAuto Format = ""
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	// FormatTIFF decodes the first page of a (possibly multi-page) TIFF.
	FormatTIFF Format = "tiff"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
)

var formatTokens = map[string]Format{
	"png":  FormatPNG,
	"jpeg": FormatJPEG,
	"jpg":  FormatJPEG,
	"tiff": FormatTIFF,
	"tif":  FormatTIFF,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
}

// Formats lists the explicit formats understood by RecognizeBytesWithFormat.
func Formats() []Format {
	return []Format{FormatPNG, FormatJPEG, FormatTIFF, FormatGIF, FormatBMP}
}

// ParseFormat maps a format token to a Format. Tokens are case-insensitive and
// may carry a leading dot, so file extensions can be passed directly.
func ParseFormat(token string) (Format, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(token), "."))
	if f, ok := formatTokens[key]; ok {
		return f, nil
	}
	return FormatAuto, newError(CodeUnsupportedFormat, token,
		"unsupported image format %q (want png, jpeg, tiff, gif or bmp)", token)
}

func (f Format) String() string {
	if f == FormatAuto {
		return "auto"
	}
	return string(f)
}
