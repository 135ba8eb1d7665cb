// Package logger provides verbose logging for boardsync.
// When verbose mode is enabled via the --verbose flag (or RUNNER_DEBUG
// inside a workflow), debug messages are printed to stderr so that each
// GraphQL document and response can be followed.
//
// In Actions format, warnings and errors are written as workflow commands
// so that the runner annotates the run.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Format selects how log lines are rendered.
type Format int

const (
	// FormatPlain writes bracketed level prefixes.
	FormatPlain Format = iota

	// FormatActions writes GitHub Actions workflow commands.
	FormatActions
)

var (
	mu      sync.RWMutex
	verbose bool
	format  Format
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetFormat selects plain or Actions output.
func SetFormat(f Format) {
	mu.Lock()
	defer mu.Unlock()
	format = f
}

// CurrentFormat returns the active output format.
func CurrentFormat() Format {
	mu.RLock()
	defer mu.RUnlock()
	return format
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(true, "[DEBUG] ", "::debug::", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	if format == FormatActions {
		fmt.Fprintf(output, "::group::%s\n::endgroup::\n", name)
		return
	}
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(true, "[INFO] ", "", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(true, "[WARN] ", "::warning::", format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	logf(false, "[ERROR] ", "::error::", format, args...)
}

func logf(gated bool, plainPrefix, actionsPrefix, msgFormat string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if gated && !verbose {
		return
	}

	msg := fmt.Sprintf(msgFormat, args...)
	if format == FormatActions && actionsPrefix != "" {
		fmt.Fprintf(output, "%s%s\n", actionsPrefix, escapeCommand(msg))
		return
	}
	fmt.Fprintf(output, "%s%s\n", plainPrefix, msg)
}

// escapeCommand encodes a message so it stays on one workflow command line.
func escapeCommand(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
