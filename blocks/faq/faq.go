// Package faq implements frequently asked questions block with contact
// details on one side and expandable questions on the other.
package faq

import (
	"strconv"

	"github.com/beevik/etree"

	"cblocks/blocks"
	"cblocks/collection"
	"cblocks/common"
	"cblocks/config"
	"cblocks/css"
	"cblocks/render"
)

const Items = "faqItems"

const (
	ActionSet        = "set"
	ActionAddItem    = "add-item"
	ActionRemoveItem = "remove-item"
	ActionUpdateItem = "update-item"
	ActionMoveItem   = "move-item"
	// ActionToggleItem changes editor display state only, it is never
	// applied to attributes.
	ActionToggleItem = "toggle-item"
)

const (
	phonePath = "M22 16.92v3a2 2 0 0 1-2.18 2 19.79 19.79 0 0 1-8.63-3.07 19.5 19.5 0 0 1-6-6 19.79 19.79 0 0 1-3.07-8.67A2 2 0 0 1 4.11 2h3a2 2 0 0 1 2 1.72 12.84 12.84 0 0 0 .7 2.81 2 2 0 0 1-.45 2.11L8.09 9.91a16 16 0 0 0 6 6l1.27-1.27a2 2 0 0 1 2.11-.45 12.84 12.84 0 0 0 2.81.7A2 2 0 0 1 22 16.92z"
	emailPath = "M4 4h16c1.1 0 2 .9 2 2v12c0 1.1-.9 2-2 2H4c-1.1 0-2-.9-2-2V6c0-1.1.9-2 2-2z"
)

type Block struct {
	cfg *config.FAQConfig
}

func New(cfg *config.FAQConfig) *Block {
	return &Block{cfg: cfg}
}

func (b *Block) Kind() common.BlockKind {
	return common.BlockKindFaq
}

func (b *Block) Defaults() collection.Fields {
	items := collection.Collection{
		collection.New(collection.Fields{"question": "What services do you offer?", "answer": "We offer individual and family counseling. Sessions are available in person and online."}),
		collection.New(collection.Fields{"question": "How long is a session?", "answer": "A typical session lasts 50 minutes."}),
		collection.New(collection.Fields{"question": "Do you accept insurance?", "answer": "Most major plans are accepted. Contact us to verify your coverage."}),
	}
	return collection.Fields{
		"sectionTitle":              "FAQ",
		"mainHeading":               "Frequently Asked Questions",
		"description":               "Can't find the answer you're looking for? Reach out to our team.",
		"phoneNumber":               "+1 (555) 000-0000",
		"email":                     "hello@example.com",
		"phoneIcon":                 "",
		"emailIcon":                 "",
		"backgroundColor":           "#ffffff",
		"sectionLabelColor":         "#6366f1",
		"headingColor":              "#111827",
		"textColor":                 "#4b5563",
		"iconBackgroundColor":       "#eef2ff",
		"iconColor":                 "#6366f1",
		"faqBorderColor":            "#e5e7eb",
		"faqQuestionColor":          "#111827",
		"faqAnswerColor":            "#4b5563",
		"toggleIconColor":           "#6366f1",
		"toggleIconBackgroundColor": "#eef2ff",
		Items:                       items,
	}
}

func (b *Block) Apply(attrs collection.Fields, op blocks.Op, _ *blocks.Env) (collection.Fields, error) {
	switch op.Action {
	case ActionSet:
		return blocks.Set(attrs, op.Updates(), Items)
	case ActionAddItem:
		template := blocks.Template(b.cfg.Templates, Items, collection.Fields{"question": "New Question", "answer": "New Answer"})
		return blocks.Add(attrs, Items, template, b.cfg.MaxItems)
	case ActionRemoveItem:
		return blocks.Remove(attrs, Items, op.Index, 0)
	case ActionUpdateItem:
		return blocks.Update(attrs, Items, op.Index, op.Updates())
	case ActionMoveItem:
		return blocks.Move(attrs, Items, op.Index, op.Direction)
	}
	return blocks.Unknown(b.Kind(), attrs, op)
}

// Display expands or collapses item op.Index.
func (b *Block) Display(state *render.EditorState, attrs collection.Fields, op blocks.Op) (bool, error) {
	if op.Action != ActionToggleItem {
		return false, nil
	}
	return true, state.ToggleAt(Items, attrs.List(Items), op.Index)
}

// Follow keeps disclosure keyed by entry id: added items start collapsed,
// removed ones are forgotten on the next sync.
func (b *Block) Follow(state *render.EditorState, _, after collection.Fields, _ blocks.Op) {
	state.Disclosure(Items, after.List(Items))
}

func (b *Block) Save(attrs collection.Fields, ctx *render.Context) *etree.Element {
	root := render.Root(ctx, common.RenderModeStatic)
	render.SetStyle(root, color(ctx, "background-color", attrs.String("backgroundColor", "")))
	right := b.layout(root, attrs, ctx)

	anchors := render.NewAnchors("faq")
	list := render.Child(right, "div", "faq-1-items")
	for i, item := range attrs.List(Items) {
		expanded := i == 0
		id := anchors.ID(item.String("question", ""))

		unit := render.Unit(list, "div", Items, item, "faq-1-item", expandedClass(expanded))
		unit.CreateAttr("data-faq-index", strconv.Itoa(i))
		render.SetStyle(unit, color(ctx, "border-bottom-color", attrs.String("faqBorderColor", "")))

		header := render.Child(unit, "button", "faq-1-item-header")
		header.CreateAttr("type", "button")
		render.SetBool(header, "aria-expanded", expanded)
		header.CreateAttr("aria-controls", id)
		question(header, attrs, item, ctx)
		toggle(header, attrs, ctx, expanded)

		content := render.Child(unit, "div", "faq-1-item-content")
		content.CreateAttr("id", id)
		render.SetBool(content, "aria-hidden", !expanded)
		answer := render.RichTextElement(content, "p", "faq-1-answer", item.String("answer", ""))
		render.SetStyle(answer, color(ctx, "color", attrs.String("faqAnswerColor", "")))
	}
	return root
}

func (b *Block) Edit(attrs collection.Fields, state *render.EditorState, ctx *render.Context) *etree.Element {
	if state == nil {
		state = render.NewEditorState()
	}
	root := render.Root(ctx, common.RenderModeEditor)
	render.SetStyle(root, color(ctx, "background-color", attrs.String("backgroundColor", "")))
	right := b.layout(root, attrs, ctx)

	items := attrs.List(Items)
	disclosure := state.Disclosure(Items, items)
	list := render.Child(right, "div", "faq-1-items")
	for i, item := range items {
		expanded := disclosure.Expanded(item.ID)

		unit := render.Unit(list, "div", Items, item, "faq-1-item", expandedClass(expanded))
		render.SetStyle(unit, color(ctx, "border-bottom-color", attrs.String("faqBorderColor", "")))

		header := render.Child(unit, "div", "faq-1-item-header")
		question(header, attrs, item, ctx)
		controls := render.Child(header, "div", "faq-1-item-controls")
		render.MoveButtons(controls, ActionMoveItem, Items, i, len(items))
		render.Button(controls, render.Control{Action: ActionRemoveItem, Label: "Remove", List: Items, Index: i})
		t := render.Button(controls, render.Control{Action: ActionToggleItem, Label: toggleSign(expanded), List: Items, Index: i})
		render.SetBool(t, "aria-expanded", expanded)

		content := render.Child(unit, "div", "faq-1-item-content")
		if expanded {
			render.Field(content, "question", "Question", item.String("question", "")).CreateAttr("data-index", strconv.Itoa(i))
			render.TextArea(content, "answer", "Answer", item.String("answer", "")).CreateAttr("data-index", strconv.Itoa(i))
			continue
		}
		preview, cut := ctx.Preview.Leading(item.String("answer", ""))
		if cut {
			preview += "…"
		}
		render.Text(content, "p", "faq-1-answer-preview", preview)
	}

	if b.cfg.MaxItems <= 0 || len(items) < b.cfg.MaxItems {
		render.Button(right, render.Control{Action: ActionAddItem, Label: "Add FAQ Item", List: Items, Index: -1})
	}
	return root
}

// layout renders parts shared by both views and returns container of
// question list.
func (b *Block) layout(root *etree.Element, attrs collection.Fields, ctx *render.Context) *etree.Element {
	grid := render.Child(render.Child(root, "div", "faq-1-wrapper"), "div", "faq-1-grid")
	left := render.Child(grid, "div", "faq-1-left")

	text := func(tag, class, field, colorField string) {
		el := render.RichTextElement(left, tag, class, attrs.String(field, ""))
		render.SetStyle(el, color(ctx, "color", attrs.String(colorField, "")))
	}
	text("span", "faq-1-section-label", "sectionTitle", "sectionLabelColor")
	text("h2", "faq-1-heading", "mainHeading", "headingColor")
	text("p", "faq-1-description", "description", "textColor")

	contact := render.Child(left, "div", "faq-1-contact")
	contactItem(contact, attrs, ctx, attrs.String("phoneIcon", ""), attrs.String("phoneNumber", ""), phonePath)
	contactItem(contact, attrs, ctx, attrs.String("emailIcon", ""), attrs.String("email", ""), emailPath)

	return render.Child(grid, "div", "faq-1-right")
}

func contactItem(parent *etree.Element, attrs collection.Fields, ctx *render.Context, emoji, value, path string) {
	item := render.Child(parent, "div", "faq-1-contact-item")
	if emoji != "" {
		render.Text(item, "span", "faq-1-icon-emoji", emoji)
	} else {
		icon := render.Child(item, "div", "faq-1-icon")
		s := ctx.Style()
		s.Set("background-color", attrs.String("iconBackgroundColor", ""))
		s.Set("color", attrs.String("iconColor", ""))
		render.SetStyle(icon, s)

		svg := icon.CreateElement("svg")
		for _, a := range [][2]string{
			{"width", "24"}, {"height", "24"}, {"viewBox", "0 0 24 24"}, {"fill", "none"},
			{"stroke", "currentColor"}, {"stroke-width", "2"}, {"stroke-linecap", "round"}, {"stroke-linejoin", "round"},
		} {
			svg.CreateAttr(a[0], a[1])
		}
		svg.CreateElement("path").CreateAttr("d", path)
		if path == emailPath {
			svg.CreateElement("polyline").CreateAttr("points", "22,6 12,13 2,6")
		}
	}
	span := render.Text(item, "span", "", value)
	render.SetStyle(span, color(ctx, "color", attrs.String("textColor", "")))
}

func question(parent *etree.Element, attrs collection.Fields, item *collection.Entry, ctx *render.Context) {
	q := render.RichTextElement(parent, "h3", "faq-1-question", item.String("question", ""))
	render.SetStyle(q, color(ctx, "color", attrs.String("faqQuestionColor", "")))
}

func toggle(parent *etree.Element, attrs collection.Fields, ctx *render.Context, expanded bool) {
	t := render.Text(parent, "span", "faq-1-toggle", toggleSign(expanded))
	s := ctx.Style()
	s.Set("color", attrs.String("toggleIconColor", ""))
	s.Set("background-color", attrs.String("toggleIconBackgroundColor", ""))
	render.SetStyle(t, s)
	render.SetBool(t, "aria-hidden", true)
}

func toggleSign(expanded bool) string {
	if expanded {
		return "−"
	}
	return "+"
}

func expandedClass(expanded bool) string {
	if expanded {
		return "is-expanded"
	}
	return ""
}

func color(ctx *render.Context, property, value string) *css.Style {
	s := ctx.Style()
	s.Set(property, value)
	return s
}
