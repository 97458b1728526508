// Package render holds building blocks shared by editor and static renderers
// of every block: markup helpers, style composition, labels, derived editor
// state and unit extraction used to check both outputs agree.
package render

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cblocks/common"
	"cblocks/config"
	"cblocks/css"
)

// Context carries everything renderers need besides attributes. It is
// read-only during rendering and could be shared by renderers of the same
// block instance.
type Context struct {
	Kind    common.BlockKind
	BlockID string

	Labels  *Labels
	Preview *Preview
	Log     *zap.Logger

	styles  *css.Parser
	printer *message.Printer
}

// NewContext prepares rendering context for a block instance.
func NewContext(kind common.BlockKind, blockID string, cfg *config.RenderConfig, log *zap.Logger) (*Context, error) {
	labels, err := NewLabels(&cfg.Labels)
	if err != nil {
		return nil, err
	}
	preview, err := NewPreview(cfg.PreviewSentences)
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("bad render language %q: %w", cfg.Language, err)
	}
	log = log.Named("render").With(zap.Stringer("kind", kind), zap.String("block", blockID))
	return &Context{
		Kind:    kind,
		BlockID: blockID,
		Labels:  labels,
		Preview: preview,
		Log:     log,
		styles:  css.NewParser(log),
		printer: message.NewPrinter(tag),
	}, nil
}

// Style returns fresh inline style builder.
func (c *Context) Style() *css.Style {
	return c.styles.NewStyle()
}

// Number formats integer with locale digit grouping.
func (c *Context) Number(n int64) string {
	return c.printer.Sprintf("%d", n)
}
