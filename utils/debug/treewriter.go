// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TreeWriter accumulates indented dump, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
	// Limit is maximum number of runes of text value kept in dump, rest is
	// replaced with count of dropped runes. Zero keeps everything.
	Limit int
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.w.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.Line(depth, "%s: %s", label, tw.encodeText(value))
}

// Value writes scalar under label, strings are quoted, everything else is
// formatted with %v.
func (tw *TreeWriter) Value(depth int, label string, value any) {
	if s, ok := value.(string); ok {
		tw.TextBlock(depth, label, s)
		return
	}
	tw.Line(depth, "%s: %v", label, value)
}

// Entry writes header of collection entry.
func (tw *TreeWriter) Entry(depth, index int, id string) {
	tw.Line(depth, "#%d id=%s", index, id)
}

func (tw *TreeWriter) encodeText(raw string) string {
	if raw == "" {
		return `""`
	}
	if tw.Limit <= 0 || utf8.RuneCountInString(raw) <= tw.Limit {
		return strconv.Quote(raw)
	}
	runes := []rune(raw)
	return fmt.Sprintf("%s...(+%d)", strconv.Quote(string(runes[:tw.Limit])), len(runes)-tw.Limit)
}
