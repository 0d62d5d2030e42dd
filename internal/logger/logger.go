package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

var (
	debug atomic.Bool
	std   = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
)

func init() {
	debug.Store(os.Getenv("DEBUG") == "1")
}

// SetDebug turns debug logging on or off, overriding DEBUG from the environment.
func SetDebug(on bool) {
	debug.Store(on)
}

// Enabled reports whether DebugLog writes anything.
func Enabled() bool {
	return debug.Load()
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func DebugLog(format string, args ...any) {
	if debug.Load() {
		std.Output(2, fmt.Sprintf("[DEBUG] "+format, args...))
	}
}
