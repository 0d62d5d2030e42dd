package tesseract

// Image is the payload of one recognition call: an encoded image held in
// memory or a path to one on disk.
type Image struct {
	data   []byte
	path   string
	format Format
	inMem  bool
}

// ImageFromBytes wraps an encoded image whose format Leptonica detects.
func ImageFromBytes(data []byte) Image {
	return Image{data: data, inMem: true}
}

// ImageFromBytesWithFormat wraps an encoded image that must be decoded with
// the decoder for format only.
func ImageFromBytesWithFormat(data []byte, format Format) Image {
	return Image{data: data, format: format, inMem: true}
}

// ImageFromFile refers to an image file read by Leptonica at recognition time.
func ImageFromFile(path string) Image {
	return Image{path: path}
}

// String names the image in error messages and logs.
func (img Image) String() string {
	if img.inMem {
		return "<memory:" + img.format.String() + ">"
	}
	return img.path
}

func (img Image) decode() (nativePix, error) {
	if !img.inMem {
		if img.path == "" {
			return nil, newError(CodeImageDecode, "", "failed to read image: empty file path")
		}
		pix := native.readFile(img.path)
		if pix == nil {
			return nil, newError(CodeImageDecode, img.path, "failed to read image %s", img.path)
		}
		return pix, nil
	}

	if img.format != FormatAuto {
		if _, err := ParseFormat(string(img.format)); err != nil {
			return nil, err
		}
	}
	if len(img.data) == 0 {
		return nil, newError(CodeImageDecode, img.String(), "failed to read image: empty buffer")
	}
	if img.format == FormatAuto {
		pix := native.readMem(img.data)
		if pix == nil {
			return nil, newError(CodeImageDecode, img.String(),
				"failed to read image: unrecognised or corrupt data (%d bytes)", len(img.data))
		}
		return pix, nil
	}

	pix := native.readMemFormat(img.data, img.format)
	if pix == nil {
		return nil, newError(CodeImageDecode, img.String(),
			"failed to read image as %s (%d bytes)", img.format, len(img.data))
	}
	return pix, nil
}
