package comparison

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"cblocks/collection"
	"cblocks/common"
	"cblocks/css"
	"cblocks/render"
)

func (b *Block) Save(attrs collection.Fields, ctx *render.Context) *etree.Element {
	root := render.Root(ctx, common.RenderModeStatic)
	wrapper := render.Child(root, "div", "comparison-table-wrapper")

	competitors, features := attrs.List(Competitors), attrs.List(Features)
	ourStyle := columnStyle(ctx, attrs, "ourColumnColor", "ourColumnBorderColor")
	theirStyle := columnStyle(ctx, attrs, "competitorColumnColor", "competitorBorderColor")

	container := render.Child(wrapper, "div", "comparison-table-container")
	table := render.Child(container, "table", "comparison-table")
	render.SetStyle(table, columnStyle(ctx, attrs, "tableBackgroundColor", "tableBorderColor"))

	head := render.Child(render.Child(table, "thead"), "tr")
	render.Text(head, "th", "feature-column", "Features")
	our := render.Child(head, "th", "company-column", "our-column")
	render.SetStyle(our, ourStyle)
	render.RichTextElement(our, "span", "", attrs.String("ourCompanyName", ""))
	for _, c := range competitors {
		th := render.Unit(head, "th", Competitors, c, "company-column", "competitor-column")
		render.SetStyle(th, theirStyle)
		render.RichTextElement(th, "span", "", c.String("name", ""))
	}

	body := render.Child(table, "tbody")
	for _, f := range features {
		tr := render.Unit(body, "tr", Features, f)
		cell := render.Child(tr, "td", "feature-cell")
		featureName(cell, f)

		td := render.Child(tr, "td", "value-cell", "our-value")
		render.SetStyle(td, ourStyle)
		valueIcon(td, ctx, f.Fields.Map(OurValue), "check")

		lane := f.Fields.List(CompetitorValues)
		for k := range competitors {
			var td *etree.Element
			if lane.Valid(k) {
				td = render.Unit(tr, "td", CompetitorValues, lane[k], "value-cell", "competitor-value")
			} else {
				td = render.Child(tr, "td", "value-cell", "competitor-value")
			}
			render.SetStyle(td, theirStyle)
			valueIcon(td, ctx, competitorValue(f, k), "cross")
		}
	}

	if len(features) > 0 {
		b.saveMobile(wrapper, attrs, ctx, ourStyle, theirStyle)
	}
	return root
}

// saveMobile renders cards shown instead of table on narrow screens. Cards
// repeat table content and are not units of their own.
func (b *Block) saveMobile(parent *etree.Element, attrs collection.Fields, ctx *render.Context, ourStyle, theirStyle *css.Style) {
	competitors, features := attrs.List(Competitors), attrs.List(Features)
	visible := b.cfg.MobileVisibleFeatures
	hidden := len(features) - visible

	mobile := render.Child(parent, "div", "mobile-view")
	mobile.CreateAttr("data-feature-count", strconv.Itoa(len(features)))
	classes := []string{"mobile-features-container"}
	if hidden > 0 {
		classes = append(classes, "fade-out", "collapsed")
	}
	container := render.Child(mobile, "div", classes...)

	for i, f := range features {
		card := render.Child(container, "div", "mobile-feature-card")
		card.CreateAttr("data-feature-index", strconv.Itoa(i))
		featureName(render.Child(card, "div", "mobile-feature-header"), f)

		values := render.Child(card, "div", "mobile-values")
		our := render.Child(values, "div", "mobile-value", "our-value")
		render.SetStyle(our, ourStyle)
		render.RichTextElement(render.Child(our, "span", "company-name"), "span", "", attrs.String("ourCompanyName", ""))
		valueIcon(our, ctx, f.Fields.Map(OurValue), "check")

		for k, c := range competitors {
			v := render.Child(values, "div", "mobile-value", "competitor-value")
			render.SetStyle(v, theirStyle)
			render.RichTextElement(render.Child(v, "span", "company-name"), "span", "", c.String("name", ""))
			valueIcon(v, ctx, competitorValue(f, k), "cross")
		}
	}

	if hidden <= 0 {
		return
	}
	more := render.Child(mobile, "div", "mobile-show-more")
	button := render.Child(more, "button", "show-more-button")
	button.CreateAttr("type", "button")
	render.SetBool(button, "aria-expanded", false)
	button.CreateAttr("aria-label", fmt.Sprintf("Show %d more features", hidden))
	button.CreateAttr("data-show-less", ctx.Labels.ShowLess())
	render.Text(button, "span", "button-text", ctx.Labels.ShowMore(hidden))
	arrow(button)
}

func (b *Block) Edit(attrs collection.Fields, state *render.EditorState, ctx *render.Context) *etree.Element {
	if state == nil {
		state = render.NewEditorState()
	}
	root := render.Root(ctx, common.RenderModeEditor)
	editor := render.Child(root, "div", "comparison-table-editor")

	competitors, features := attrs.List(Competitors), attrs.List(Features)

	panel := render.Child(editor, "div", "competitors-panel")
	header := render.Child(panel, "div", "panel-header")
	render.Text(header, "h3", "", "Competitors")
	render.Text(header, "span", "capacity-counter", ctx.Labels.Capacity(len(competitors), b.cfg.MaxCompetitors))
	render.Field(panel, "ourCompanyName", "Our company", render.PlainText(attrs.String("ourCompanyName", "")))

	list := render.Child(panel, "ul", "competitor-list")
	for i, c := range competitors {
		li := render.Unit(list, "li", Competitors, c, "competitor-item")
		in := render.Field(li, "name", "Name", render.PlainText(c.String("name", "")))
		in.CreateAttr("data-index", strconv.Itoa(i))
		render.MoveButtons(li, ActionMoveCompetitor, Competitors, i, len(competitors))
		render.Button(li, render.Control{Action: ActionRemoveCompetitor, Label: "Remove", List: Competitors, Index: i})
	}
	if b.cfg.MaxCompetitors <= 0 || len(competitors) < b.cfg.MaxCompetitors {
		render.Button(panel, render.Control{Action: ActionAddCompetitor, Label: "Add Competitor", List: Competitors, Index: -1})
	}

	if len(features) == 0 {
		placeholder := render.Child(editor, "div", "comparison-placeholder")
		render.Text(placeholder, "p", "", "Add your first feature to start comparing.")
		render.Button(placeholder, render.Control{Action: ActionAddFeature, Label: "Add Feature", List: Features, Index: -1})
		return root
	}

	selected := state.Selected(Features, features)
	if selected < 0 {
		selected = 0
	}
	fp := render.Child(editor, "div", "features-panel")
	for i, f := range features {
		open := i == selected
		classes := []string{"feature-panel"}
		if open {
			classes = append(classes, "is-selected")
		}
		unit := render.Unit(fp, "div", Features, f, classes...)

		head := render.Child(unit, "div", "feature-panel-header")
		render.Button(head, render.Control{Action: ActionSelectFeature, Label: f.String("name", ""), List: Features, Index: i})
		render.MoveButtons(head, ActionMoveFeature, Features, i, len(features))
		render.Button(head, render.Control{Action: ActionRemoveFeature, Label: "Remove", List: Features, Index: i})

		if open {
			body := render.Child(unit, "div", "feature-panel-body")
			render.Field(body, "name", "Feature name", f.String("name", ""))
			render.Field(body, "tooltip", "Tooltip", f.String("tooltip", ""))
		}

		values := render.Child(unit, "div", "feature-values")
		our := render.Child(values, "div", "value-editor", "our-value")
		our.CreateAttr("data-list", Our)
		if open {
			valueControls(our, "Our company", f.Fields.Map(OurValue), "check")
		}
		valueIcon(our, ctx, f.Fields.Map(OurValue), "check")

		lane := f.Fields.List(CompetitorValues)
		for k, c := range competitors {
			var v *etree.Element
			if lane.Valid(k) {
				v = render.Unit(values, "div", CompetitorValues, lane[k], "value-editor", "competitor-value")
			} else {
				v = render.Child(values, "div", "value-editor", "competitor-value")
			}
			v.CreateAttr("data-item", strconv.Itoa(k))
			if open {
				valueControls(v, render.PlainText(c.String("name", "")), competitorValue(f, k), "cross")
			}
			valueIcon(v, ctx, competitorValue(f, k), "cross")
		}
	}
	render.Button(editor, render.Control{Action: ActionAddFeature, Label: "Add Feature", List: Features, Index: -1})
	return root
}

func featureName(parent *etree.Element, f *collection.Entry) {
	render.Text(parent, "span", "feature-name", f.String("name", ""))
	if tooltip := f.String("tooltip", ""); tooltip != "" {
		tip := render.Text(parent, "span", "tooltip-icon", "?")
		tip.CreateAttr("data-tooltip", tooltip)
		tip.CreateAttr("aria-label", tooltip)
	}
}

func competitorValue(f *collection.Entry, k int) collection.Fields {
	if lane := f.Fields.List(CompetitorValues); lane.Valid(k) {
		return lane[k].Fields
	}
	return competitorValueDefault
}

func columnStyle(ctx *render.Context, attrs collection.Fields, background, border string) *css.Style {
	s := ctx.Style()
	s.Set("background-color", attrs.String(background, ""))
	s.Set("border-color", attrs.String(border, ""))
	return s
}

// valueIcon renders value of the cell, text values are written out with
// default text color.
func valueIcon(parent *etree.Element, ctx *render.Context, value collection.Fields, def string) {
	kind := value.String("type", def)
	span := render.Child(parent, "span", "value-icon", "type-"+kind)
	if kind != "text" {
		render.Icon(span, kind)
		return
	}
	text := render.Text(span, "span", "", value.String("value", ""))
	s := ctx.Style()
	s.Set("color", render.IconColors["text"])
	s.Set("font-size", "14px")
	s.Set("font-weight", "500")
	render.SetStyle(text, s)
}

func valueControls(parent *etree.Element, label string, value collection.Fields, def string) {
	l := render.Child(parent, "label", "components-base-control")
	l.CreateText(label)
	sel := l.CreateElement("select")
	sel.CreateAttr("data-field", "type")
	current := value.String("type", def)
	for _, t := range ValueTypes {
		opt := sel.CreateElement("option")
		opt.CreateAttr("value", t)
		if t == current {
			opt.CreateAttr("selected", "selected")
		}
		opt.SetText(t)
	}
	if current == "text" {
		render.Field(parent, "value", "Text", value.String("value", ""))
	}
}

func arrow(parent *etree.Element) {
	svg := parent.CreateElement("svg")
	svg.CreateAttr("class", "arrow-icon")
	svg.CreateAttr("viewBox", "0 0 24 24")
	svg.CreateAttr("fill", "none")
	svg.CreateAttr("stroke", "currentColor")
	svg.CreateAttr("stroke-width", "2")
	path := svg.CreateElement("path")
	path.CreateAttr("d", "M6 9l6 6 6-6")
	path.CreateAttr("stroke-linecap", "round")
	path.CreateAttr("stroke-linejoin", "round")
}
