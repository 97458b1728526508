//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

const forbiddenChars = "/:"

func trimName(name string) string {
	return name
}

func reservedName(string) bool {
	return false
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return !noColor() && term.IsTerminal(int(stream.Fd()))
}
