// Package hub implements information hub block: grid of cards each holding
// its own list of items.
package hub

import (
	"strconv"

	"github.com/beevik/etree"

	"cblocks/blocks"
	"cblocks/collection"
	"cblocks/common"
	"cblocks/config"
	"cblocks/render"
)

const (
	Cards = "cards"
	Items = "items"
)

const (
	ActionSet         = "set"
	ActionAddCard     = "add-card"
	ActionUpdateCard  = "update-card"
	ActionRemoveCard  = "remove-card"
	ActionMoveCard    = "move-card"
	ActionAddItem     = "add-item"
	ActionUpdateItem  = "update-item"
	ActionRemoveItem  = "remove-item"
	ActionMoveItem    = "move-item"
	ActionApplyColors = "apply-colors"
	ActionSelectCard  = "select-card"
)

// Item types.
var ItemTypes = []string{"checkmark", "checklist", "bullet", "link"}

type Block struct {
	cfg *config.InformationHubConfig
}

func New(cfg *config.InformationHubConfig) *Block {
	return &Block{cfg: cfg}
}

func (b *Block) Kind() common.BlockKind {
	return common.BlockKindInformationHub
}

func (b *Block) Defaults() collection.Fields {
	card := func(title, bg, border string, items ...collection.Fields) *collection.Entry {
		list := make(collection.Collection, 0, len(items))
		for _, it := range items {
			list = append(list, collection.New(it))
		}
		return collection.New(collection.Fields{"title": title, "backgroundColor": bg, "borderColor": border, Items: list})
	}
	return collection.Fields{
		"globalBackgroundColor": "",
		"globalBorderColor":     "",
		"applyGlobalColors":     false,
		Cards: collection.Collection{
			card("Getting Started", "#E3F2FD", "#1976D2",
				collection.Fields{"text": "Book your first session", "type": "checklist", "url": "", "completed": false},
				collection.Fields{"text": "Read our guide", "type": "link", "url": "https://example.com/guide", "completed": false},
			),
			card("What to Expect", "#F1F8E9", "#689F38",
				collection.Fields{"text": "Confidential sessions", "type": "checkmark", "url": "", "completed": false},
				collection.Fields{"text": "Flexible scheduling", "type": "bullet", "url": "", "completed": false},
			),
		},
	}
}

func (b *Block) Apply(attrs collection.Fields, op blocks.Op, _ *blocks.Env) (collection.Fields, error) {
	switch op.Action {
	case ActionSet:
		return blocks.Set(attrs, op.Updates(), Cards)
	case ActionAddCard:
		template := blocks.Template(b.cfg.Templates, Cards, collection.Fields{
			"title": "New Card", "backgroundColor": "#E3F2FD", "borderColor": "#1976D2",
		})
		template[Items] = collection.Collection{}
		return blocks.Add(attrs, Cards, template, b.cfg.MaxCards)
	case ActionUpdateCard:
		updates := op.Updates()
		if updates.Has(Items) {
			return blocks.Unknown(b.Kind(), attrs, op)
		}
		return blocks.Update(attrs, Cards, op.Index, updates)
	case ActionRemoveCard:
		return blocks.Remove(attrs, Cards, op.Index, 0)
	case ActionMoveCard:
		return blocks.Move(attrs, Cards, op.Index, op.Direction)
	case ActionAddItem:
		template := blocks.Template(b.cfg.Templates, Items, collection.Fields{"text": "New item", "type": "bullet", "url": "", "completed": false})
		return blocks.Nested(attrs, Cards, op.Index, Items, func(c collection.Collection) (collection.Collection, error) {
			return collection.Add(c, template, b.cfg.MaxItems)
		})
	case ActionUpdateItem:
		return blocks.Nested(attrs, Cards, op.Index, Items, func(c collection.Collection) (collection.Collection, error) {
			return collection.Update(c, op.Item, op.Updates())
		})
	case ActionRemoveItem:
		return blocks.Nested(attrs, Cards, op.Index, Items, func(c collection.Collection) (collection.Collection, error) {
			return collection.Remove(c, op.Item)
		})
	case ActionMoveItem:
		return blocks.Nested(attrs, Cards, op.Index, Items, func(c collection.Collection) (collection.Collection, error) {
			return collection.Move(c, op.Item, op.Direction)
		})
	case ActionApplyColors:
		if err := blocks.Collections(attrs, Cards); err != nil {
			return attrs, err
		}
		return applyColors(attrs), nil
	}
	return blocks.Unknown(b.Kind(), attrs, op)
}

var cardSelection = blocks.Selection{List: Cards, Clamp: true}

// Display selects card op.Index for editing.
func (b *Block) Display(state *render.EditorState, attrs collection.Fields, op blocks.Op) (bool, error) {
	if op.Action != ActionSelectCard {
		return false, nil
	}
	return true, state.SelectAt(Cards, attrs.List(Cards), op.Index)
}

func (b *Block) Follow(state *render.EditorState, before, after collection.Fields, _ blocks.Op) {
	cardSelection.Follow(state, before, after)
}

// applyColors copies non empty global colors into every card.
func applyColors(attrs collection.Fields) collection.Fields {
	bg, border := attrs.String("globalBackgroundColor", ""), attrs.String("globalBorderColor", "")
	if bg == "" && border == "" {
		return attrs
	}
	updates := collection.Fields{}
	if bg != "" {
		updates["backgroundColor"] = bg
	}
	if border != "" {
		updates["borderColor"] = border
	}
	return attrs.With(Cards, collection.Map(attrs.List(Cards), func(e *collection.Entry) collection.Fields {
		return e.Fields.Merge(updates)
	}))
}

// cardColor resolves card color, enabled non empty global color wins.
func cardColor(attrs collection.Fields, card *collection.Entry, field, global string) string {
	if attrs.Bool("applyGlobalColors") {
		if g := attrs.String(global, ""); g != "" {
			return g
		}
	}
	return card.String(field, "")
}

func itemIcon(item *collection.Entry) string {
	switch item.String("type", "") {
	case "checkmark":
		return "✓"
	case "checklist":
		if item.Bool("completed") {
			return "☑"
		}
		return "☐"
	case "link":
		return "🔗"
	default:
		return "•"
	}
}

func (b *Block) Save(attrs collection.Fields, ctx *render.Context) *etree.Element {
	root := render.Root(ctx, common.RenderModeStatic)
	wrapper := render.Child(root, "div", "information-hub-wrapper")
	cards := attrs.List(Cards)
	if len(cards) == 0 {
		return root
	}
	grid := render.Child(wrapper, "div", "information-hub-cards")
	for _, card := range cards {
		unit := render.Unit(grid, "div", Cards, card, "information-card")
		b.cardStyle(unit, attrs, card, ctx)
		render.RichTextElement(unit, "h3", "", card.String("title", ""))

		items := card.Fields.List(Items)
		if len(items) == 0 {
			continue
		}
		ul := render.Child(unit, "ul", "card-items")
		for _, item := range items {
			li := render.Unit(ul, "li", Items, item, "item-type-"+item.String("type", "bullet"))
			render.SetBool(li, "data-completed", item.Bool("completed"))
			render.Text(li, "span", "item-icon", itemIcon(item))
			if url := item.String("url", ""); item.String("type", "") == "link" && url != "" && render.SafeURL(url) {
				a := render.Text(li, "a", "", item.String("text", ""))
				a.CreateAttr("href", url)
				a.CreateAttr("target", "_blank")
				a.CreateAttr("rel", "noopener noreferrer")
				continue
			}
			text := render.Text(li, "span", "", item.String("text", ""))
			if item.Bool("completed") {
				render.SetClass(text, "completed")
			}
		}
	}
	return root
}

func (b *Block) Edit(attrs collection.Fields, state *render.EditorState, ctx *render.Context) *etree.Element {
	if state == nil {
		state = render.NewEditorState()
	}
	root := render.Root(ctx, common.RenderModeEditor)
	wrapper := render.Child(root, "div", "information-hub-wrapper")

	settings := render.Child(wrapper, "div", "information-hub-settings")
	render.Field(settings, "globalBackgroundColor", "Global background", attrs.String("globalBackgroundColor", ""))
	render.Field(settings, "globalBorderColor", "Global border", attrs.String("globalBorderColor", ""))
	apply := render.Button(settings, render.Control{Action: ActionApplyColors, Label: "Apply to all cards", Index: -1})
	if attrs.String("globalBackgroundColor", "") == "" && attrs.String("globalBorderColor", "") == "" {
		apply.CreateAttr("disabled", "disabled")
	}

	cards := attrs.List(Cards)
	render.Text(settings, "span", "capacity-counter", ctx.Labels.Capacity(len(cards), b.cfg.MaxCards))
	if len(cards) == 0 {
		placeholder := render.Child(wrapper, "div", "information-hub-placeholder")
		render.Text(placeholder, "p", "", "Add your first card.")
		render.Button(placeholder, render.Control{Action: ActionAddCard, Label: "Add Card", List: Cards, Index: -1})
		return root
	}

	selected := max(state.Selected(Cards, cards), 0)
	grid := render.Child(wrapper, "div", "information-hub-cards")
	for i, card := range cards {
		classes := []string{"information-card"}
		if i == selected {
			classes = append(classes, "is-selected")
		}
		unit := render.Unit(grid, "div", Cards, card, classes...)
		unit.CreateAttr(render.AttrAction, ActionSelectCard)
		unit.CreateAttr("data-index", strconv.Itoa(i))
		b.cardStyle(unit, attrs, card, ctx)

		controls := render.Child(unit, "div", "card-controls")
		render.MoveButtons(controls, ActionMoveCard, Cards, i, len(cards))
		render.Button(controls, render.Control{Action: ActionRemoveCard, Label: "Delete", List: Cards, Index: i})
		if i == selected {
			render.Field(unit, "title", "Title", card.String("title", ""))
		} else {
			render.RichTextElement(unit, "h3", "", card.String("title", ""))
		}

		items := card.Fields.List(Items)
		if len(items) > 0 {
			ul := render.Child(unit, "ul", "card-items")
			for j, item := range items {
				li := render.Unit(ul, "li", Items, item, "item-type-"+item.String("type", "bullet"))
				render.Text(li, "span", "item-icon", itemIcon(item))
				if i != selected {
					render.Text(li, "span", "", item.String("text", ""))
					continue
				}
				in := render.Field(li, "text", "Text", item.String("text", ""))
				in.CreateAttr("data-item", strconv.Itoa(j))
				typeSelect(li, item.String("type", "bullet"))
				if item.String("type", "") == "link" {
					render.Field(li, "url", "URL", item.String("url", ""))
				}
				render.MoveItemButtons(li, ActionMoveItem, Cards, i, j, len(items))
				render.Button(li, render.Control{Action: ActionRemoveItem, Label: "Delete", List: Cards, Index: i, Item: j, Nested: true})
			}
		}
		if i == selected && (b.cfg.MaxItems <= 0 || len(items) < b.cfg.MaxItems) {
			render.Button(unit, render.Control{Action: ActionAddItem, Label: "Add Item", List: Cards, Index: i})
		}
	}
	if len(cards) < b.cfg.MaxCards {
		render.Button(wrapper, render.Control{Action: ActionAddCard, Label: "Add Card", List: Cards, Index: -1})
	}
	return root
}

func (b *Block) cardStyle(el *etree.Element, attrs collection.Fields, card *collection.Entry, ctx *render.Context) {
	s := ctx.Style()
	s.Set("background-color", cardColor(attrs, card, "backgroundColor", "globalBackgroundColor"))
	s.Set("border-color", cardColor(attrs, card, "borderColor", "globalBorderColor"))
	render.SetStyle(el, s)
}

func typeSelect(parent *etree.Element, current string) {
	sel := parent.CreateElement("select")
	sel.CreateAttr("data-field", "type")
	for _, t := range ItemTypes {
		opt := sel.CreateElement("option")
		opt.CreateAttr("value", t)
		if t == current {
			opt.CreateAttr("selected", "selected")
		}
		opt.SetText(t)
	}
}
