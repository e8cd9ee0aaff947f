// Package logger prints pipeline progress for the tuberag CLI. Debug, Info,
// Warn and Section lines only appear when the user passes --verbose; Error
// always prints. Output goes to stderr so that piped stdout stays clean
// answer text or JSON.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var state = struct {
	sync.RWMutex
	verbose bool
	out     io.Writer
}{out: os.Stderr}

// SetVerbose toggles verbose output.
func SetVerbose(v bool) {
	state.Lock()
	state.verbose = v
	state.Unlock()
}

// IsVerbose reports whether verbose output is on.
func IsVerbose() bool {
	state.RLock()
	defer state.RUnlock()
	return state.verbose
}

// SetOutput redirects log output. The default is os.Stderr; tests swap in a
// buffer.
func SetOutput(w io.Writer) {
	state.Lock()
	state.out = w
	state.Unlock()
}

// emit writes one tagged line, suppressed in quiet mode unless always is set.
func emit(tag string, always bool, format string, args ...any) {
	state.RLock()
	defer state.RUnlock()
	if !always && !state.verbose {
		return
	}
	fmt.Fprintf(state.out, "["+tag+"] "+format+"\n", args...)
}

// Debug prints fine-grained pipeline detail in verbose mode.
func Debug(format string, args ...any) { emit("DEBUG", false, format, args...) }

// Info prints progress lines in verbose mode.
func Info(format string, args ...any) { emit("INFO", false, format, args...) }

// Warn prints recoverable problems in verbose mode.
func Warn(format string, args ...any) { emit("WARN", false, format, args...) }

// Error prints regardless of verbose mode.
func Error(format string, args ...any) { emit("ERROR", true, format, args...) }

// Section prints a phase header in verbose mode.
func Section(name string) {
	state.RLock()
	defer state.RUnlock()
	if state.verbose {
		fmt.Fprintf(state.out, "\n=== %s ===\n", name)
	}
}
