package config

import (
	"os"
	"strings"
)

// SafeFileName turns block kind, id or document name into a single path
// element usable on the current platform.
func SafeFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym < 0x20 || sym == 0x7f || strings.ContainsRune(forbiddenChars, sym) {
			return -1
		}
		return sym
	}, in)
	// no hidden files, no "." and ".."
	out = trimName(strings.TrimLeft(out, "."))
	if len(out) == 0 {
		return "_unnamed_"
	}
	if reservedName(out) {
		out = "_" + out
	}
	return out
}

// noColor honours NO_COLOR convention and dumb terminals.
func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return os.Getenv("TERM") == "dumb"
}
