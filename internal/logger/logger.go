// Package logger provides a small leveled logging facility shared by
// the pricer packages.
//
// Verbosity levels, in increasing order:
//
//	Error < Info < Debug < Trace
//
// Verbosity is set once at startup (after flag/config parsing) and all
// call sites use the printf-style helpers:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("pricing %s", underlying)
//	logger.Debugf("lattice n=%d p*=%.6f", n, pUp)
package logger

import (
	"log"
	"os"
)

// Level is a logging verbosity level; higher means chattier.
type Level int

const (
	Error Level = iota // critical failures only
	Info               // high-level progress
	Debug              // diagnostic detail
	Trace              // per-node / per-request detail
)

// current is the active verbosity. Messages with level <= current are
// emitted.
var current Level = Info

func init() {
	// Logs go to stderr so prices on stdout stay pipeable.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// SetVerbosity sets the global verbosity, typically once at startup.
func SetVerbosity(v int) {
	current = Level(v)
}

func logf(l Level, prefix, format string, args ...any) {
	if current >= l {
		log.Printf(prefix+format, args...)
	}
}

// Errorf logs a failure that requires attention.
func Errorf(format string, args ...any) {
	logf(Error, "[ERROR] ", format, args...)
}

// Infof logs a major lifecycle event.
func Infof(format string, args ...any) {
	logf(Info, "[INFO]  ", format, args...)
}

// Debugf logs diagnostic output useful during development.
func Debugf(format string, args ...any) {
	logf(Debug, "[DEBUG] ", format, args...)
}

// Tracef logs very fine-grained detail; use sparingly.
func Tracef(format string, args ...any) {
	logf(Trace, "[TRACE] ", format, args...)
}
