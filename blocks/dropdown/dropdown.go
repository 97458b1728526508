// Package dropdown implements information dropdown switcher block: one
// category of items is shown at a time, chosen from a select.
package dropdown

import (
	"fmt"
	"slices"
	"strconv"

	"cblocks/blocks"
	"cblocks/collection"
	"cblocks/common"
	"cblocks/config"
)

const (
	Categories = "categories"
	Items      = "items"
	// Selected is index of category shown in the editor, kept as string.
	Selected = "selectedCategory"
)

const (
	ActionSet            = "set"
	ActionAddCategory    = "add-category"
	ActionUpdateCategory = "update-category"
	ActionRemoveCategory = "remove-category"
	ActionMoveCategory   = "move-category"
	ActionSelectCategory = "select-category"
	ActionAddItem        = "add-item"
	ActionUpdateItem     = "update-item"
	ActionRemoveItem     = "remove-item"
	ActionMoveItem       = "move-item"
)

var BorderSides = []string{"none", "top", "right", "bottom", "left", "all"}

type Block struct {
	cfg *config.DropdownSwitcherConfig
}

func New(cfg *config.DropdownSwitcherConfig) *Block {
	return &Block{cfg: cfg}
}

func (b *Block) Kind() common.BlockKind {
	return common.BlockKindDropdownSwitcher
}

func (b *Block) Defaults() collection.Fields {
	item := func(label, tooltip string) *collection.Entry {
		return collection.New(collection.Fields{"label": label, "tooltip": tooltip, "link": "", "checked": true})
	}
	return collection.Fields{
		"title":                  "What We Offer",
		Selected:                 "0",
		"checkmarkColor":         "#10B981",
		"backgroundColor":        "#ffffff",
		"textColor":              "#1f2937",
		"tooltipBackgroundColor": "#1f2937",
		"tooltipTextColor":       "#ffffff",
		"wrapperBackgroundColor": "#ffffff",
		"borderColor":            "#e5e7eb",
		"borderSide":             "none",
		Categories: collection.Collection{
			collection.New(collection.Fields{"name": "Individuals", Items: collection.Collection{
				item("One to one sessions", "Private sessions with a licensed therapist."),
				item("Online support", "Meet from anywhere over video."),
			}}),
			collection.New(collection.Fields{"name": "Families", Items: collection.Collection{
				item("Family therapy", "Sessions for the whole family."),
			}}),
		},
	}
}

func (b *Block) Apply(attrs collection.Fields, op blocks.Op, _ *blocks.Env) (collection.Fields, error) {
	switch op.Action {
	case ActionSet:
		updates := op.Updates()
		if side, ok := updates["borderSide"]; ok && !slices.Contains(BorderSides, fmt.Sprint(side)) {
			return attrs, fmt.Errorf("border side %v: %w", side, blocks.ErrInvalidValue)
		}
		return blocks.Set(attrs, updates, Categories, Selected)
	case ActionAddCategory:
		template := blocks.Template(b.cfg.Templates, Categories, collection.Fields{"name": "New Category"})
		template[Items] = collection.Collection{}
		return blocks.Add(attrs, Categories, template, 0)
	case ActionUpdateCategory:
		updates := op.Updates()
		if updates.Has(Items) {
			return blocks.Unknown(b.Kind(), attrs, op)
		}
		return blocks.Update(attrs, Categories, op.Index, updates)
	case ActionRemoveCategory:
		next, err := blocks.Remove(attrs, Categories, op.Index, b.cfg.MinCategories)
		if err != nil {
			return attrs, err
		}
		return next.With(Selected, strconv.Itoa(afterRemove(selected(attrs), op.Index))), nil
	case ActionMoveCategory:
		next, err := blocks.Move(attrs, Categories, op.Index, op.Direction)
		if err != nil {
			return attrs, err
		}
		return next.With(Selected, strconv.Itoa(afterMove(selected(attrs), op.Index, op.Index+int(op.Direction)))), nil
	case ActionSelectCategory:
		i, err := strconv.Atoi(fmt.Sprint(op.Value))
		if err != nil {
			i = op.Index
		}
		if !attrs.List(Categories).Valid(i) {
			return attrs, fmt.Errorf("select category %d of %d: %w", i, len(attrs.List(Categories)), collection.ErrOutOfRange)
		}
		return attrs.With(Selected, strconv.Itoa(i)), nil
	case ActionAddItem:
		template := blocks.Template(b.cfg.Templates, Items, collection.Fields{
			"label": "New Item", "tooltip": "Item description", "link": "", "checked": true,
		})
		return blocks.Nested(attrs, Categories, op.Index, Items, func(c collection.Collection) (collection.Collection, error) {
			return collection.Add(c, template, 0)
		})
	case ActionUpdateItem:
		return blocks.Nested(attrs, Categories, op.Index, Items, func(c collection.Collection) (collection.Collection, error) {
			return collection.Update(c, op.Item, op.Updates())
		})
	case ActionRemoveItem:
		return blocks.Nested(attrs, Categories, op.Index, Items, func(c collection.Collection) (collection.Collection, error) {
			return collection.Remove(c, op.Item)
		})
	case ActionMoveItem:
		return blocks.Nested(attrs, Categories, op.Index, Items, func(c collection.Collection) (collection.Collection, error) {
			return collection.Move(c, op.Item, op.Direction)
		})
	}
	return blocks.Unknown(b.Kind(), attrs, op)
}

// selected returns index of selected category, values which do not address
// a category select the first one.
func selected(attrs collection.Fields) int {
	i := attrs.Int(Selected, 0)
	if !attrs.List(Categories).Valid(i) {
		return 0
	}
	return i
}

// afterRemove adjusts selection once category at index removed is gone:
// removed selection falls back to the first category, later selection shifts.
func afterRemove(sel, removed int) int {
	switch {
	case sel == removed:
		return 0
	case removed < sel:
		return sel - 1
	default:
		return sel
	}
}

// afterMove keeps selection on the same category when categories i and j
// swap places.
func afterMove(sel, i, j int) int {
	switch sel {
	case i:
		return j
	case j:
		return i
	default:
		return sel
	}
}
