// Package monitoring holds the process-wide diagnostic logger.
package monitoring

import (
	"io"
	"log"
	"os"
)

const prefix = "twolink: "

// Logf writes server diagnostics to stderr. Replace it with SetLogger to
// redirect or mute them.
var Logf = NewLogf(os.Stderr)

// NewLogf returns a Printf-style logger writing timestamped, prefixed lines
// to w.
func NewLogf(w io.Writer) func(format string, v ...interface{}) {
	return log.New(w, prefix, log.LstdFlags|log.Lmsgprefix).Printf
}

// SetLogger replaces Logf. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
