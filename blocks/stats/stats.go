// Package stats implements stats card block: a titled card with numeric
// values or checklist entries.
package stats

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"cblocks/blocks"
	"cblocks/collection"
	"cblocks/common"
	"cblocks/config"
	"cblocks/css"
	"cblocks/render"
)

const Items = "items"

const (
	ActionSet        = "set"
	ActionAddItem    = "add-item"
	ActionUpdateItem = "update-item"
	ActionSetType    = "set-type"
	ActionRemoveItem = "remove-item"
	ActionMoveItem   = "move-item"
	ActionSelectItem = "select-item"
)

// Item types.
const (
	TypeText       = "text"
	TypePercentage = "percentage"
	TypeCurrency   = "currency"
	TypeChecklist  = "checklist"
)

var Types = []string{TypeText, TypePercentage, TypeCurrency, TypeChecklist}

const maxBorderWidth = 20

type Block struct {
	cfg *config.StatsCardConfig
}

func New(cfg *config.StatsCardConfig) *Block {
	return &Block{cfg: cfg}
}

func (b *Block) Kind() common.BlockKind {
	return common.BlockKindStatsCard
}

func (b *Block) Defaults() collection.Fields {
	return collection.Fields{
		"title":           "Our Impact",
		"backgroundColor": "#ffffff",
		"borderColor":     "#3b82f6",
		"borderWidth":     4,
		"titleColor":      "#111827",
		"itemColor":       "#1f2937",
		"labelColor":      "#6b7280",
		Items: collection.Collection{
			collection.New(item(TypeText, "1500", "Clients served", false)),
			collection.New(item(TypePercentage, "98", "Satisfaction rate", false)),
			collection.New(item(TypeChecklist, "", "Licensed therapists", true)),
		},
	}
}

func item(kind, value, label string, checked bool) collection.Fields {
	return collection.Fields{
		"type":        kind,
		"value":       value,
		"label":       label,
		"isChecklist": kind == TypeChecklist,
		"isChecked":   checked,
	}
}

func (b *Block) Apply(attrs collection.Fields, op blocks.Op, _ *blocks.Env) (collection.Fields, error) {
	switch op.Action {
	case ActionSet:
		updates := op.Updates()
		if updates.Has("borderWidth") {
			updates = updates.With("borderWidth", clampWidth(updates.Int("borderWidth", 0)))
		}
		return blocks.Set(attrs, updates, Items)
	case ActionAddItem:
		template := blocks.Template(b.cfg.Templates, Items, item(TypeText, "0", "New Item", false))
		template["isChecklist"] = template.String("type", TypeText) == TypeChecklist
		return blocks.Add(attrs, Items, template, b.cfg.MaxItems)
	case ActionUpdateItem:
		updates := op.Updates()
		if updates.Has("type") || updates.Has("isChecklist") {
			return attrs, fmt.Errorf("item type has to be changed with %s: %w", ActionSetType, blocks.ErrUnknownAction)
		}
		return blocks.Update(attrs, Items, op.Index, updates)
	case ActionSetType:
		kind, _ := op.Value.(string)
		if !slices.Contains(Types, kind) {
			return attrs, fmt.Errorf("item type %q: %w", kind, blocks.ErrInvalidValue)
		}
		// type and checklist flag always change together
		return blocks.Update(attrs, Items, op.Index, collection.Fields{"type": kind, "isChecklist": kind == TypeChecklist})
	case ActionRemoveItem:
		return blocks.Remove(attrs, Items, op.Index, 0)
	case ActionMoveItem:
		return blocks.Move(attrs, Items, op.Index, op.Direction)
	}
	return blocks.Unknown(b.Kind(), attrs, op)
}

var itemSelection = blocks.Selection{List: Items}

// Display selects item op.Index for editing.
func (b *Block) Display(state *render.EditorState, attrs collection.Fields, op blocks.Op) (bool, error) {
	if op.Action != ActionSelectItem {
		return false, nil
	}
	return true, state.SelectAt(Items, attrs.List(Items), op.Index)
}

func (b *Block) Follow(state *render.EditorState, before, after collection.Fields, _ blocks.Op) {
	itemSelection.Follow(state, before, after)
}

func clampWidth(w int) int {
	return min(max(w, 0), maxBorderWidth)
}

func (b *Block) Save(attrs collection.Fields, ctx *render.Context) *etree.Element {
	root := render.Root(ctx, common.RenderModeStatic)
	card := b.card(root, attrs, ctx)

	items := attrs.List(Items)
	if len(items) == 0 {
		return root
	}
	list := render.Child(card, "div", "card-items")
	for _, it := range items {
		if it.Bool("isChecklist") {
			unit := render.Unit(list, "div", Items, it, "card-item", "checklist-item")
			id := "checklist-" + it.ID
			box := render.Child(unit, "input", "checklist-checkbox")
			box.CreateAttr("type", "checkbox")
			box.CreateAttr("id", id)
			if it.Bool("isChecked") {
				box.CreateAttr("checked", "checked")
			}
			label := render.Text(unit, "label", "item-label checklist-label", it.String("label", ""))
			label.CreateAttr("for", id)
			render.SetStyle(label, color(ctx, attrs, "labelColor"))
			continue
		}
		unit := render.Unit(list, "div", Items, it, "card-item")
		b.value(unit, attrs, it, ctx)
		label := render.Text(unit, "div", "item-label", it.String("label", ""))
		render.SetStyle(label, color(ctx, attrs, "labelColor"))
	}
	return root
}

func (b *Block) Edit(attrs collection.Fields, state *render.EditorState, ctx *render.Context) *etree.Element {
	if state == nil {
		state = render.NewEditorState()
	}
	root := render.Root(ctx, common.RenderModeEditor)
	card := b.card(root, attrs, ctx)

	items := attrs.List(Items)
	if len(items) == 0 {
		placeholder := render.Child(card, "div", "placeholder-content")
		render.Text(placeholder, "p", "", "Add items to display in this card")
		render.Button(placeholder, render.Control{Action: ActionAddItem, Label: "Add First Item", List: Items, Index: -1})
		return root
	}

	selected := state.Selected(Items, items)
	list := render.Child(card, "div", "card-items")
	for i, it := range items {
		editing := i == selected
		classes := []string{"card-item"}
		if editing {
			classes = append(classes, "editing")
		}
		unit := render.Unit(list, "div", Items, it, classes...)
		unit.CreateAttr(render.AttrAction, ActionSelectItem)
		unit.CreateAttr("data-index", strconv.Itoa(i))

		if it.Bool("isChecklist") {
			box := render.Child(unit, "input", "checklist-checkbox")
			box.CreateAttr("type", "checkbox")
			box.CreateAttr("data-field", "isChecked")
			if it.Bool("isChecked") {
				box.CreateAttr("checked", "checked")
			}
			label := render.Text(unit, "span", "item-label checklist-label", it.String("label", ""))
			render.SetStyle(label, color(ctx, attrs, "labelColor"))
		} else {
			b.value(unit, attrs, it, ctx)
			label := render.Text(unit, "div", "item-label", it.String("label", ""))
			render.SetStyle(label, color(ctx, attrs, "labelColor"))
		}

		if !editing {
			continue
		}
		settings := render.Child(unit, "div", "item-settings")
		render.Text(settings, "div", "item-heading", ctx.Labels.ItemHeading("item", i+1))
		typeSelect(settings, it.String("type", TypeText))
		if !it.Bool("isChecklist") {
			render.Field(settings, "value", "Value", it.String("value", ""))
		}
		render.Field(settings, "label", "Label", it.String("label", ""))
		actions := render.Child(settings, "div", "item-actions")
		render.MoveButtons(actions, ActionMoveItem, Items, i, len(items))
		render.Button(actions, render.Control{Action: ActionRemoveItem, Label: "Delete", List: Items, Index: i})
	}
	if b.cfg.MaxItems <= 0 || len(items) < b.cfg.MaxItems {
		render.Button(card, render.Control{Action: ActionAddItem, Label: "Add Item", List: Items, Index: -1})
	}
	return root
}

func (b *Block) card(root *etree.Element, attrs collection.Fields, ctx *render.Context) *etree.Element {
	card := render.Child(render.Child(root, "div", "stats-card-wrapper"), "div", "stats-card")
	s := ctx.Style()
	s.Set("background-color", attrs.String("backgroundColor", ""))
	s.Set("border-left-color", attrs.String("borderColor", ""))
	s.Set("border-left-width", strconv.Itoa(clampWidth(attrs.Int("borderWidth", 0)))+"px")
	render.SetStyle(card, s)

	title := render.RichTextElement(card, "h3", "card-title", attrs.String("title", ""))
	render.SetStyle(title, color(ctx, attrs, "titleColor"))
	return card
}

// value renders item value with its unit symbol. Integer values are grouped
// and keep raw number in data-count for counter animation.
func (b *Block) value(parent *etree.Element, attrs collection.Fields, it *collection.Entry, ctx *render.Context) {
	el := render.Child(parent, "div", "item-value")
	render.SetStyle(el, color(ctx, attrs, "itemColor"))

	kind := it.String("type", TypeText)
	if kind == TypeCurrency {
		render.Text(el, "span", "currency-symbol", "$")
	}
	raw := strings.TrimSpace(it.String("value", ""))
	text := render.Text(el, "span", "value-text", raw)
	if n, err := strconv.ParseInt(strings.ReplaceAll(raw, ",", ""), 10, 64); err == nil {
		text.SetText(ctx.Number(n))
		text.CreateAttr("data-count", strconv.FormatInt(n, 10))
	}
	if kind == TypePercentage {
		render.Text(el, "span", "percentage-symbol", "%")
	}
}

func typeSelect(parent *etree.Element, current string) {
	l := render.Child(parent, "label", "components-base-control")
	l.CreateText("Type")
	sel := l.CreateElement("select")
	sel.CreateAttr(render.AttrAction, ActionSetType)
	for _, t := range Types {
		opt := sel.CreateElement("option")
		opt.CreateAttr("value", t)
		if t == current {
			opt.CreateAttr("selected", "selected")
		}
		opt.SetText(t)
	}
}

func color(ctx *render.Context, attrs collection.Fields, field string) *css.Style {
	s := ctx.Style()
	s.Set("color", attrs.String(field, ""))
	return s
}
