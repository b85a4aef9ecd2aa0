// Package obslog provides the kernel's structured logging, built directly
// on github.com/rs/zerolog — the backend the teacher's own logging adapter
// (joeycumines-go-utilpkg/logiface-zerolog) wraps. Unlike that adapter, this
// package does not reimplement the teacher's generic logiface.Event
// abstraction: the kernel has exactly one logging backend and no downstream
// caller that needs to swap it, so the abstraction layer would sit unused
// (see DESIGN.md).
package obslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger writing to w (os.Stderr if w is nil) at the
// given minimum level. Every kernel component that logs takes a
// zerolog.Logger value via constructor injection rather than reaching for a
// package-level global, so multiple engines in the same process (e.g. in
// tests) never share a log sink by accident.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, for callers (mainly tests)
// that don't care about kernel diagnostics.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
