package render

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Anchors produces readable element ids unique within one rendering. It must
// be created anew for every rendering so output stays idempotent.
type Anchors struct {
	prefix string
	used   map[string]int
}

func NewAnchors(prefix string) *Anchors {
	return &Anchors{prefix: prefix, used: make(map[string]int)}
}

// ID returns id derived from text, colliding ids get numeric suffix.
func (a *Anchors) ID(text string) string {
	base := slug.Make(PlainText(text))
	if base == "" {
		base = "item"
	}
	if a.prefix != "" {
		base = a.prefix + "-" + base
	}
	a.used[base]++
	if n := a.used[base]; n > 1 {
		id := fmt.Sprintf("%s-%d", base, n)
		// suffixed id could be taken by text which already ended with number
		for a.used[id] > 0 {
			n++
			id = fmt.Sprintf("%s-%d", base, n)
		}
		a.used[base] = n
		a.used[id]++
		return id
	}
	return base
}
