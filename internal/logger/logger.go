// Package logger provides levelled logging for the medlens CLI.
//
// Warnings are written unless quiet mode is on; debug and info messages
// only appear with --verbose. On a terminal the level tags are coloured.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Level orders log messages by severity.
type Level int

// Log levels, least severe first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

// String returns the tag printed before a message.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "LOG"
	}
}

var tagStyles = map[Level]lipgloss.Style{
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Bold(true),
}

var (
	mu      sync.RWMutex
	verbose bool
	quiet   bool
	output  io.Writer = os.Stderr
	colour  = isTerminal(os.Stderr)
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetVerbose enables or disables debug and info messages.
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

// SetQuiet suppresses warnings. The MCP stdio server sets it so that
// stderr noise does not end up in client logs.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput sets the output writer for logs. Defaults to os.Stderr.
// Tags are only coloured when w is a terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	colour = isTerminal(w)
}

// enabled reports whether a message at l is written. Caller holds mu.
func enabled(l Level) bool {
	if l >= LevelWarn {
		return verbose || !quiet
	}
	return verbose
}

func logf(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled(l) {
		return
	}
	tag := "[" + l.String() + "]"
	if colour {
		tag = tagStyles[l].Render(tag)
	}
	fmt.Fprintf(output, tag+" "+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info prints a progress message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn prints a warning unless quiet mode is enabled.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if enabled(LevelInfo) {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
