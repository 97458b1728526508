// Package common keeps enums shared between configuration, block packages
// and commands so neither has to import the other.
package common

//go:generate go tool go-enum --names --marshal

// Kind of content block.
// ENUM(comparison-table, faq, stats-card, information-hub, dropdown-switcher, hero)
type BlockKind string

// Requested renderer.
// ENUM(static, editor)
type RenderMode int

func (m RenderMode) Ext() string {
	switch m {
	case RenderModeStatic:
		return ".html"
	case RenderModeEditor:
		return ".editor.html"
	default:
		// this should never happen
		panic("unsupported render mode requested")
	}
}

// Class returns wrapper class name the host uses for the block.
func (k BlockKind) Class() string {
	return "wp-block-custom-blocks-" + string(k)
}
