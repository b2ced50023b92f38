// Package logging builds the zerolog logger shared by the parser, validator
// and commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Format selects how log lines are written.
type Format int

const (
	// Auto writes console lines to terminals and JSON otherwise.
	Auto Format = iota
	// Console writes human-readable lines.
	Console
	// JSON writes one JSON object per line.
	JSON
)

// ParseLevel maps a config level name to a zerolog level. Unknown or empty
// names fall back to warn.
func ParseLevel(name string) zerolog.Level {
	if name == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string, format Format) zerolog.Logger {
	if format == Auto {
		format = JSON
		if isTerminal(w) {
			format = Console
		}
	}

	out := w
	if format == Console {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Stderr is New on os.Stderr with automatic format selection.
func Stderr(level string) zerolog.Logger {
	return New(os.Stderr, level, Auto)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
