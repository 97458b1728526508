package dropdown

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"cblocks/collection"
	"cblocks/common"
	"cblocks/render"
)

func (b *Block) Save(attrs collection.Fields, ctx *render.Context) *etree.Element {
	root := render.Root(ctx, common.RenderModeStatic)
	wrapper := b.wrapper(root, attrs, ctx)

	categories := attrs.List(Categories)
	if len(categories) == 0 {
		return root
	}
	b.selector(wrapper, attrs, ctx, -1)

	content := render.Child(wrapper, "div", "information-content")
	for i, category := range categories {
		items := category.Fields.List(Items)
		grid := render.Unit(content, "div", Categories, category, "information-grid", activeClass(i == 0))
		grid.CreateAttr("data-category", strconv.Itoa(i))
		grid.CreateAttr("data-item-count", strconv.Itoa(len(items)))
		for _, item := range items {
			unit := render.Unit(grid, "div", Items, item, "information-item")
			if item.Bool("checked") {
				checkmark(unit, attrs)
			}
			label := render.Text(unit, "span", "information-label", item.String("label", ""))
			render.SetStyle(label, ctx.Style().Set("color", attrs.String("textColor", "")))
			b.tooltip(unit, attrs, item, ctx)
		}
	}
	return root
}

func (b *Block) Edit(attrs collection.Fields, _ *render.EditorState, ctx *render.Context) *etree.Element {
	root := render.Root(ctx, common.RenderModeEditor)
	wrapper := b.wrapper(root, attrs, ctx)

	categories := attrs.List(Categories)
	current := selected(attrs)
	if len(categories) > 0 {
		b.selector(wrapper, attrs, ctx, current)
	}

	content := render.Child(wrapper, "div", "information-content")
	for i, category := range categories {
		items := category.Fields.List(Items)
		panel := render.Unit(content, "div", Categories, category, "information-grid", activeClass(i == current))
		panel.CreateAttr("data-category", strconv.Itoa(i))
		if i != current {
			panel.CreateAttr("hidden", "hidden")
		}

		controls := render.Child(panel, "div", "category-controls")
		render.Field(controls, "name", "Category name", category.String("name", "")).CreateAttr("data-index", strconv.Itoa(i))
		render.MoveButtons(controls, ActionMoveCategory, Categories, i, len(categories))
		remove := render.Button(controls, render.Control{Action: ActionRemoveCategory, Label: "Delete", List: Categories, Index: i})
		if len(categories) <= b.cfg.MinCategories {
			remove.CreateAttr("disabled", "disabled")
		}

		for j, item := range items {
			unit := render.Unit(panel, "div", Items, item, "information-item")
			if item.Bool("checked") {
				checkmark(unit, attrs)
			}
			render.Field(unit, "label", "Label", item.String("label", "")).CreateAttr("data-item", strconv.Itoa(j))
			render.TextArea(unit, "tooltip", "Tooltip", item.String("tooltip", ""))
			render.Field(unit, "link", "Link", item.String("link", ""))
			render.MoveItemButtons(unit, ActionMoveItem, Categories, i, j, len(items))
			render.Button(unit, render.Control{Action: ActionRemoveItem, Label: "Delete", List: Categories, Index: i, Item: j, Nested: true})
		}
		render.Button(panel, render.Control{Action: ActionAddItem, Label: "Add Item", List: Categories, Index: i})
	}
	render.Button(wrapper, render.Control{Action: ActionAddCategory, Label: "Add Category", List: Categories, Index: -1})
	return root
}

// wrapper renders container with title. Its id is derived from block id so
// repeated renderings are identical.
func (b *Block) wrapper(root *etree.Element, attrs collection.Fields, ctx *render.Context) *etree.Element {
	w := render.Child(root, "div", "information-dropdown-wrapper")
	s := ctx.Style()
	s.Set("background-color", attrs.String("wrapperBackgroundColor", ""))
	s.Set("border-color", attrs.String("borderColor", ""))
	render.SetStyle(w, s)
	w.CreateAttr(render.AttrBlockID, fmt.Sprintf("information-dropdown-%s", ctx.BlockID))
	w.CreateAttr("data-border-side", attrs.String("borderSide", "none"))

	title := render.RichTextElement(w, "h2", "information-title", attrs.String("title", ""))
	render.SetStyle(title, ctx.Style().Set("color", attrs.String("textColor", "")))
	return w
}

// selector renders category select, negative current leaves browser default.
func (b *Block) selector(parent *etree.Element, attrs collection.Fields, ctx *render.Context, current int) {
	textColor := attrs.String("textColor", "")
	container := render.Child(parent, "div", "dropdown-container")
	sel := render.Child(container, "select", "category-dropdown")
	render.SetStyle(sel, ctx.Style().Set("color", textColor))
	sel.CreateAttr("data-text-color", textColor)
	if current >= 0 {
		sel.CreateAttr(render.AttrAction, ActionSelectCategory)
	}
	for i, category := range attrs.List(Categories) {
		opt := sel.CreateElement("option")
		opt.CreateAttr("value", strconv.Itoa(i))
		if i == current {
			opt.CreateAttr("selected", "selected")
		}
		opt.SetText(render.PlainText(category.String("name", "")))
	}

	svg := container.CreateElement("svg")
	svg.CreateAttr("class", "dropdown-arrow")
	svg.CreateAttr("viewBox", "0 0 24 24")
	svg.CreateAttr("fill", "none")
	svg.CreateAttr("stroke", textColor)
	svg.CreateAttr("stroke-width", "2")
	path := svg.CreateElement("path")
	path.CreateAttr("d", "M6 9l6 6 6-6")
	path.CreateAttr("stroke-linecap", "round")
	path.CreateAttr("stroke-linejoin", "round")
}

func (b *Block) tooltip(parent *etree.Element, attrs collection.Fields, item *collection.Entry, ctx *render.Context) {
	trigger := render.Child(parent, "div", "tooltip-trigger")
	trigger.CreateAttr("tabindex", "0")
	trigger.CreateAttr("role", "button")
	trigger.CreateAttr("aria-label", "Information about "+render.PlainText(item.String("label", "")))

	svg := trigger.CreateElement("svg")
	svg.CreateAttr("class", "info-icon")
	svg.CreateAttr("viewBox", "0 0 24 24")
	svg.CreateAttr("fill", "none")
	circle := svg.CreateElement("circle")
	for _, a := range [][2]string{{"cx", "12"}, {"cy", "12"}, {"r", "10"}, {"fill", "#DBEAFE"}} {
		circle.CreateAttr(a[0], a[1])
	}
	text := svg.CreateElement("text")
	for _, a := range [][2]string{{"x", "12"}, {"y", "16"}, {"text-anchor", "middle"}, {"fill", "#3B82F6"}, {"font-size", "14"}, {"font-weight", "bold"}} {
		text.CreateAttr(a[0], a[1])
	}
	text.SetText("i")

	content := render.Child(trigger, "div", "tooltip-content")
	s := ctx.Style()
	s.Set("background-color", attrs.String("tooltipBackgroundColor", ""))
	s.Set("color", attrs.String("tooltipTextColor", ""))
	render.SetStyle(content, s)
	render.Text(content, "p", "", item.String("tooltip", ""))
	if link := item.String("link", ""); link != "" && render.SafeURL(link) {
		a := render.Text(content, "a", "learn-more-link", "Learn More")
		a.CreateAttr("href", link)
		render.SetStyle(a, ctx.Style().Set("color", "#DC2626"))
	}
}

func checkmark(parent *etree.Element, attrs collection.Fields) {
	svg := parent.CreateElement("svg")
	svg.CreateAttr("class", "checkmark")
	svg.CreateAttr("viewBox", "0 0 24 24")
	svg.CreateAttr("fill", "none")
	svg.CreateAttr("stroke", attrs.String("checkmarkColor", ""))
	svg.CreateAttr("stroke-width", "3")
	path := svg.CreateElement("path")
	path.CreateAttr("d", "M20 6L9 17l-5-5")
	path.CreateAttr("stroke-linecap", "round")
	path.CreateAttr("stroke-linejoin", "round")
}

func activeClass(active bool) string {
	if active {
		return "active"
	}
	return ""
}
