package tesseract

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure reported by the binding.
type Code string

const (
	CodeInitialization    Code = "INITIALIZATION"
	CodeInvalidHandle     Code = "INVALID_HANDLE"
	CodeInvalidParameter  Code = "INVALID_PARAMETER"
	CodeImageDecode       Code = "IMAGE_DECODE"
	CodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	CodeRecognition       Code = "RECOGNITION"
)

// Error is returned by every failing operation of the package. Subject names
// the offending input (language, parameter, file or format) when there is one.
type Error struct {
	Code    Code
	Message string
	Subject string
	cause   error
}

// Sentinels for errors.Is. Matching is by Code only.
var (
	ErrInitialization    = &Error{Code: CodeInitialization}
	ErrInvalidHandle     = &Error{Code: CodeInvalidHandle}
	ErrInvalidParameter  = &Error{Code: CodeInvalidParameter}
	ErrImageDecode       = &Error{Code: CodeImageDecode}
	ErrUnsupportedFormat = &Error{Code: CodeUnsupportedFormat}
	ErrRecognition       = &Error{Code: CodeRecognition}
)

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tesseract: %s", e.Code)
	}
	return "tesseract: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// CodeOf returns the Code carried by err, or "" when err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func newError(code Code, subject, format string, args ...any) *Error {
	return &Error{Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

func initializationError(lang string, cause error) *Error {
	if lang == "" {
		lang = defaultLanguage
	}
	e := newError(CodeInitialization, lang,
		"unable to find training data for: %s. Install the %s.traineddata file or point TESSDATA_PREFIX (or WithDataPath) at the tessdata directory",
		lang, lang)
	e.cause = cause
	return e
}

func invalidHandleError() *Error {
	return newError(CodeInvalidHandle, "", "engine is closed")
}
