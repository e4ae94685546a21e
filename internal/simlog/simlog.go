// Package simlog provides a small logger wrapping the standard log
// package, mirroring the teacher's use of it for fatal startup errors.
// Hot loops never log, and no other package of this module imports it.
package simlog

import (
	"io"
	"log"
	"os"
)

// Logger wraps the standard library logger with the "pic: " prefix used
// throughout this module's diagnostics.
type Logger struct {
	*log.Logger
}

// New creates a Logger writing to w with the standard "pic: " prefix.
func New(w io.Writer) *Logger {
	return &Logger{Logger: log.New(w, "pic: ", log.LstdFlags)}
}

// Default is the package-level logger used when callers don't need their
// own prefix or output stream.
var Default = New(os.Stderr)
