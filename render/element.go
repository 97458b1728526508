package render

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"cblocks/collection"
	"cblocks/common"
	"cblocks/css"
)

// Attribute names linking markup to attribute state.
const (
	AttrUnit    = "data-unit"
	AttrEntryID = "data-entry-id"
	AttrBlockID = "data-block-id"
	AttrAction  = "data-action"
)

// Root creates block wrapper element.
func Root(ctx *Context, mode common.RenderMode) *etree.Element {
	root := etree.NewElement("div")
	classes := []string{"wp-block", ctx.Kind.Class()}
	if mode == common.RenderModeEditor {
		classes = append(classes, "is-editing")
	}
	SetClass(root, classes...)
	root.CreateAttr(AttrBlockID, ctx.BlockID)
	return root
}

// Unit creates element representing single collection entry. Every entry has
// exactly one unit in each rendering, keyed by entry id.
func Unit(parent *etree.Element, tag, list string, e *collection.Entry, classes ...string) *etree.Element {
	el := parent.CreateElement(tag)
	SetClass(el, classes...)
	el.CreateAttr(AttrUnit, list)
	el.CreateAttr(AttrEntryID, e.ID)
	return el
}

// Child creates element with optional class.
func Child(parent *etree.Element, tag string, classes ...string) *etree.Element {
	el := parent.CreateElement(tag)
	SetClass(el, classes...)
	return el
}

// Text creates element with text content.
func Text(parent *etree.Element, tag, class, text string) *etree.Element {
	el := Child(parent, tag, class)
	el.SetText(text)
	return el
}

// SetClass sets class attribute from non empty names.
func SetClass(el *etree.Element, classes ...string) {
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			names = append(names, c)
		}
	}
	if len(names) > 0 {
		el.CreateAttr("class", strings.Join(names, " "))
	}
}

// SetStyle sets style attribute unless style is empty.
func SetStyle(el *etree.Element, s *css.Style) {
	if s != nil && s.Len() > 0 {
		el.CreateAttr("style", s.String())
	}
}

// SetBool sets attribute to "true" or "false".
func SetBool(el *etree.Element, name string, v bool) {
	el.CreateAttr(name, strconv.FormatBool(v))
}

// Control describes editor action element. Negative Index means the action
// is not addressed to an entry, Item is only emitted for nested actions.
type Control struct {
	Action    string
	Label     string
	List      string
	Index     int
	Item      int
	Nested    bool
	Direction collection.Direction
	Disabled  bool
}

// Button creates editor control. Controls never carry data-unit so they do
// not affect structural comparison of renderings.
func Button(parent *etree.Element, c Control) *etree.Element {
	b := Child(parent, "button", "components-button")
	b.CreateAttr("type", "button")
	b.CreateAttr(AttrAction, c.Action)
	if c.List != "" {
		b.CreateAttr("data-list", c.List)
	}
	if c.Index >= 0 {
		b.CreateAttr("data-index", strconv.Itoa(c.Index))
	}
	if c.Nested {
		b.CreateAttr("data-item", strconv.Itoa(c.Item))
	}
	if c.Direction != 0 {
		b.CreateAttr("data-direction", strconv.Itoa(int(c.Direction)))
	}
	if c.Disabled {
		b.CreateAttr("disabled", "disabled")
	}
	b.SetText(c.Label)
	return b
}

// MoveButtons adds up/down controls for entry i of n, disabled at the edges.
func MoveButtons(parent *etree.Element, action, list string, i, n int) {
	Button(parent, Control{Action: action, Label: "↑", List: list, Index: i, Direction: collection.Up, Disabled: i == 0})
	Button(parent, Control{Action: action, Label: "↓", List: list, Index: i, Direction: collection.Down, Disabled: i == n-1})
}

// Field creates editor input bound to attribute field.
func Field(parent *etree.Element, field, label, value string) *etree.Element {
	l := Child(parent, "label", "components-base-control")
	l.CreateText(label)
	in := l.CreateElement("input")
	in.CreateAttr("type", "text")
	in.CreateAttr("data-field", field)
	in.CreateAttr("value", value)
	return in
}

// TextArea creates multi line editor input bound to attribute field.
func TextArea(parent *etree.Element, field, label, value string) *etree.Element {
	l := Child(parent, "label", "components-base-control")
	l.CreateText(label)
	ta := l.CreateElement("textarea")
	ta.CreateAttr("data-field", field)
	ta.SetText(value)
	return ta
}

// MoveItemButtons is MoveButtons for item j of n in nested collection of
// entry i.
func MoveItemButtons(parent *etree.Element, action, list string, i, j, n int) {
	Button(parent, Control{Action: action, Label: "↑", List: list, Index: i, Item: j, Nested: true, Direction: collection.Up, Disabled: j == 0})
	Button(parent, Control{Action: action, Label: "↓", List: list, Index: i, Item: j, Nested: true, Direction: collection.Down, Disabled: j == n-1})
}
