// Package diag implements the front-end's two distinct diagnostic
// surfaces: Log, a bounded ring buffer of user-facing Error/Warning/
// Advice/Fatal diagnostics guarded by a mutex -- writers Report, readers
// Flush, with auto-flush triggered when the buffer fills or a Fatal
// diagnostic arrives, on top of an explicit Flush call -- and Trace, an
// internal --D* write-through logger built on logrus that buffers
// nothing, since its output is meant to be read live rather than
// collected.
package diag

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

// Severity classifies a user-facing diagnostic.
type Severity int

const (
	// Error severities abort the compilation of the owning module.
	Error Severity = iota
	// Warning severities are reported but do not fail compilation.
	Warning
	// Advice severities are purely informational.
	Advice
	// Fatal severities force an immediate flush of the owning Log, in
	// addition to aborting compilation like Error.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Advice:
		return "advice"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

var severityColor = map[Severity]*color.Color{
	Error:   color.New(color.FgRed),
	Warning: color.New(color.FgYellow),
	Advice:  color.New(color.FgGreen),
	Fatal:   color.New(color.FgRed, color.Bold),
}

// Diagnostic is one user-visible message: an optional file, an optional
// 1-based line, a severity, and free text. Two Diagnostics built from
// identical inputs are equal, which is what lets callers assert on the
// deterministic-content property of the front-end's error reporting.
type Diagnostic struct {
	File     string
	Line     int // 0 means "no line"
	Severity Severity
	Message  string
}

// String renders a diagnostic the way it appears on standard error, minus
// color (color is applied only by Log, since it depends on terminal state).
func (d Diagnostic) String() string {
	switch {
	case d.File != "" && d.Line > 0:
		return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Severity, d.Message)
	case d.File != "":
		return fmt.Sprintf("%s: %s: %s", d.File, d.Severity, d.Message)
	case d.Line > 0:
		return fmt.Sprintf("line %d: %s: %s", d.Line, d.Severity, d.Message)
	default:
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
}

// defaultLogCapacity bounds a Log's ring buffer. It is sized generously
// against realistic per-module diagnostic counts; hitting it in practice
// means a module is producing diagnostics in numbers unusual enough that
// flushing early, rather than waiting for the caller's own Flush, is the
// right behavior.
const defaultLogCapacity = 256

// Log is a bounded ring buffer of user-facing diagnostics guarded by a
// mutex, plus an error counter used to decide whether a module's
// compilation failed. Writers Report; readers Flush. A Flush is
// triggered automatically when the buffer reaches capacity or a Fatal
// diagnostic is reported, in addition to an explicit caller-invoked
// Flush. It is safe for concurrent use: multiple scanner/parser
// goroutines may report diagnostics for their own module concurrently,
// though in this front-end's scheduling model only one module is ever
// being parsed at a time.
type Log struct {
	mu          sync.Mutex
	capacity    int
	diagnostics []Diagnostic
	errorCount  int
	colorize    bool
}

// NewLog constructs an empty diagnostic log bounded to defaultLogCapacity.
func NewLog() *Log {
	return &Log{capacity: defaultLogCapacity}
}

// SetColor sets whether ANSI color is applied on flush, including the
// auto-flushes Report may trigger. Callers that invoke Flush directly
// still pass their own colorize argument; SetColor only affects
// auto-flush, which has no caller to ask.
func (l *Log) SetColor(colorize bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.colorize = colorize
}

// Report appends a diagnostic, in order, bumps the error counter for
// Error-severity diagnostics, and flushes immediately if the buffer is
// now full or d is Fatal.
func (l *Log) Report(d Diagnostic) {
	l.mu.Lock()

	l.diagnostics = append(l.diagnostics, d)
	if d.Severity == Error || d.Severity == Fatal {
		l.errorCount++
	}

	trigger := len(l.diagnostics) >= l.capacity || d.Severity == Fatal
	colorize := l.colorize

	l.mu.Unlock()

	if trigger {
		l.Flush(colorize)
	}
}

// Reportf is a convenience wrapper around Report for formatted messages.
func (l *Log) Reportf(sev Severity, file string, line int, format string, args ...any) {
	l.Report(Diagnostic{File: file, Line: line, Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// ErrorCount returns the number of Error- and Fatal-severity diagnostics
// reported so far. A nonzero count turns parsing (or resolution) of the owning module
// into a user-reported failure.
func (l *Log) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.errorCount
}

// Diagnostics returns a snapshot of all diagnostics reported so far, in
// report order.
func (l *Log) Diagnostics() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Diagnostic, len(l.diagnostics))
	copy(out, l.diagnostics)

	return out
}

// Flush writes every buffered diagnostic to standard error (via logrus'
// configured output) and empties the ring buffer; the error count is
// untouched, since ErrorCount must keep reflecting the whole compilation,
// not just whatever is currently buffered. Color is applied per-severity
// when colorize is true.
func (l *Log) Flush(colorize bool) {
	l.mu.Lock()
	diagnostics := l.diagnostics
	l.diagnostics = nil
	l.mu.Unlock()

	for _, d := range diagnostics {
		if colorize {
			c := severityColor[d.Severity]
			fmt.Fprintln(log.StandardLogger().Out, c.Sprint(d.String()))
		} else {
			fmt.Fprintln(log.StandardLogger().Out, d.String())
		}
	}
}
