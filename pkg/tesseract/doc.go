// Package tesseract binds the Tesseract OCR engine and the Leptonica image
// library to Go through cgo.
//
// An Engine owns one native TessBaseAPI instance. Create it with New, issue
// any number of recognition calls against it and release it with Close:
//
//	eng, err := tesseract.New(tesseract.WithLanguage("eng"))
//	if err != nil {
//		return err
//	}
//	defer eng.Close()
//
//	text, err := eng.RecognizeText(tesseract.ImageFromFile("page.png"), tesseract.ModeText)
//
// An Engine is not safe for concurrent use. Calls on one engine must be
// serialised by the caller; distinct engines are independent.
//
// Building with CGO_ENABLED=0 yields a package whose constructors report
// ErrInitialization, which keeps dependent packages compilable on hosts
// without the native libraries.
package tesseract
