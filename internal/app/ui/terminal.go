package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

var isTerminalFn = term.IsTerminal

// ColorEnabled reports whether output written to f should carry ANSI color.
// mode is "always", "never" or "auto"; auto colors only interactive
// terminals and honors NO_COLOR.
func ColorEnabled(mode string, f *os.File) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if f == nil {
		return false
	}
	return isTerminalFn(int(f.Fd()))
}

// Colorize wraps s in a raw escape code when enabled is set.
func Colorize(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return code + s + ColorReset
}
