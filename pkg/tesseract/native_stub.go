//go:build !cgo

package tesseract

import "errors"

var errNoCgo = errors.New("built without cgo: native tesseract bindings unavailable")

func newNativeLibrary() nativeLibrary {
	return nativeLibrary{
		version:       func() string { return "" },
		open:          func(initParams) (nativeAPI, error) { return nil, errNoCgo },
		openAnalysis:  func() (nativeAPI, error) { return nil, errNoCgo },
		readFile:      func(string) nativePix { return nil },
		readMem:       func([]byte) nativePix { return nil },
		readMemFormat: func([]byte, Format) nativePix { return nil },
	}
}
