// Package comparison implements comparison table block: competitors as
// columns, features as rows, one value per feature and competitor.
package comparison

import (
	"fmt"

	"cblocks/blocks"
	"cblocks/collection"
	"cblocks/common"
	"cblocks/config"
	"cblocks/render"
)

// Attribute names.
const (
	Competitors      = "competitors"
	Features         = "features"
	CompetitorValues = "competitorValues"
	OurValue         = "ourValue"
	// Our is pseudo list name addressing our column in set-value.
	Our = "our"
)

// Actions.
const (
	ActionSet              = "set"
	ActionAddCompetitor    = "add-competitor"
	ActionRemoveCompetitor = "remove-competitor"
	ActionRenameCompetitor = "rename-competitor"
	ActionMoveCompetitor   = "move-competitor"
	ActionAddFeature       = "add-feature"
	ActionRemoveFeature    = "remove-feature"
	ActionUpdateFeature    = "update-feature"
	ActionMoveFeature      = "move-feature"
	ActionSetValue         = "set-value"
	ActionSelectFeature    = "select-feature"
)

// Value types.
var ValueTypes = []string{"check", "check-empty", "cross", "dash", "text"}

var (
	ourValueDefault        = collection.Fields{"type": "check", "value": true}
	competitorValueDefault = collection.Fields{"type": "cross", "value": false}
)

type Block struct {
	cfg *config.ComparisonTableConfig
}

func New(cfg *config.ComparisonTableConfig) *Block {
	return &Block{cfg: cfg}
}

func (b *Block) Kind() common.BlockKind {
	return common.BlockKindComparisonTable
}

func (b *Block) Defaults() collection.Fields {
	attrs := collection.Fields{
		"ourCompanyName":        "Our Company",
		"tableBackgroundColor":  "#ffffff",
		"tableBorderColor":      "#e5e7eb",
		"ourColumnColor":        "#eff6ff",
		"ourColumnBorderColor":  "#3b82f6",
		"competitorColumnColor": "#ffffff",
		"competitorBorderColor": "#e5e7eb",
		Competitors:             collection.Collection{},
		Features:                collection.Collection{},
	}
	// defaults are built with the same operations author would use so
	// configured templates apply to them as well
	var err error
	for range 2 {
		if attrs, err = b.addCompetitor(attrs); err != nil {
			break
		}
	}
	attrs, _ = b.addFeature(attrs)
	return attrs
}

func (b *Block) Apply(attrs collection.Fields, op blocks.Op, _ *blocks.Env) (collection.Fields, error) {
	switch op.Action {
	case ActionSet:
		return blocks.Set(attrs, op.Updates(), Competitors, Features)
	case ActionAddCompetitor:
		return b.addCompetitor(attrs)
	case ActionRemoveCompetitor:
		return b.updateLinked(attrs, func(l collection.Linked) (collection.Linked, error) {
			return l.Remove(op.Index)
		})
	case ActionMoveCompetitor:
		return b.updateLinked(attrs, func(l collection.Linked) (collection.Linked, error) {
			return l.Move(op.Index, op.Direction)
		})
	case ActionRenameCompetitor:
		updates := op.Updates()
		if updates == nil {
			updates = collection.Fields{"name": op.Value}
		}
		return blocks.Update(attrs, Competitors, op.Index, updates)
	case ActionAddFeature:
		return b.addFeature(attrs)
	case ActionRemoveFeature:
		return blocks.Remove(attrs, Features, op.Index, 0)
	case ActionUpdateFeature:
		updates := op.Updates()
		if updates.Has(CompetitorValues) || updates.Has(OurValue) {
			return attrs, fmt.Errorf("values have to be changed with %s: %w", ActionSetValue, blocks.ErrUnknownAction)
		}
		return blocks.Update(attrs, Features, op.Index, updates)
	case ActionMoveFeature:
		return blocks.Move(attrs, Features, op.Index, op.Direction)
	case ActionSetValue:
		return setValue(attrs, op)
	}
	return blocks.Unknown(b.Kind(), attrs, op)
}

var featureSelection = blocks.Selection{List: Features, Clamp: true}

// Display selects feature op.Index for editing.
func (b *Block) Display(state *render.EditorState, attrs collection.Fields, op blocks.Op) (bool, error) {
	if op.Action != ActionSelectFeature {
		return false, nil
	}
	return true, state.SelectAt(Features, attrs.List(Features), op.Index)
}

func (b *Block) Follow(state *render.EditorState, before, after collection.Fields, _ blocks.Op) {
	featureSelection.Follow(state, before, after)
}

func (b *Block) competitorValue() collection.Fields {
	return blocks.Template(b.cfg.Templates, CompetitorValues, competitorValueDefault)
}

func (b *Block) addCompetitor(attrs collection.Fields) (collection.Fields, error) {
	n := len(attrs.List(Competitors))
	name, err := render.Expand(config.CompetitorNameTemplateFieldName, b.cfg.CompetitorNameTemplate, n+1, n)
	if err != nil {
		return attrs, err
	}
	template := blocks.Template(b.cfg.Templates, Competitors, collection.Fields{"name": name})
	value := b.competitorValue()
	return b.updateLinked(attrs, func(l collection.Linked) (collection.Linked, error) {
		return l.Add(template, collection.Repeat(value, len(l.Lanes)), b.cfg.MaxCompetitors)
	})
}

func (b *Block) addFeature(attrs collection.Fields) (collection.Fields, error) {
	n := len(attrs.List(Competitors))
	values := make(collection.Collection, 0, n)
	for range n {
		values = append(values, collection.New(b.competitorValue()))
	}
	template := blocks.Template(b.cfg.Templates, Features, collection.Fields{
		"name":    fmt.Sprintf("Feature %d", len(attrs.List(Features))+1),
		"tooltip": "",
	})
	template[OurValue] = blocks.Template(b.cfg.Templates, OurValue, ourValueDefault)
	template[CompetitorValues] = values
	return blocks.Add(attrs, Features, template, 0)
}

// setValue merges updates into our value of feature op.Index (op.List is
// "our") or into value of competitor op.Item.
func setValue(attrs collection.Fields, op blocks.Op) (collection.Fields, error) {
	updates := op.Updates()
	if op.List == Our {
		features := attrs.List(Features)
		if !features.Valid(op.Index) {
			return blocks.Update(attrs, Features, op.Index, nil)
		}
		value := features[op.Index].Fields.Map(OurValue).Merge(updates)
		return blocks.Update(attrs, Features, op.Index, collection.Fields{OurValue: value})
	}
	return blocks.Nested(attrs, Features, op.Index, CompetitorValues, func(c collection.Collection) (collection.Collection, error) {
		return collection.Update(c, op.Item, updates)
	})
}

func linked(attrs collection.Fields) collection.Linked {
	return collection.Linked{
		Primary: attrs.List(Competitors),
		Lanes:   collection.Lanes(attrs.List(Features), CompetitorValues),
	}
}

// updateLinked performs single linked mutation, competitors and values of
// every feature change together or not at all.
func (b *Block) updateLinked(attrs collection.Fields, fn func(collection.Linked) (collection.Linked, error)) (collection.Fields, error) {
	if err := blocks.Collections(attrs, Competitors, Features); err != nil {
		return attrs, err
	}
	for i, f := range attrs.List(Features) {
		if err := blocks.Collections(f.Fields, CompetitorValues); err != nil {
			return attrs, fmt.Errorf("%s[%d]: %w", Features, i, err)
		}
	}
	aligned := align(attrs, b.competitorValue())
	next, err := fn(linked(aligned))
	if err != nil {
		return attrs, fmt.Errorf("%s: %w", Competitors, err)
	}
	return aligned.Merge(collection.Fields{
		Competitors: next.Primary,
		Features:    collection.SetLanes(aligned.List(Features), CompetitorValues, next.Lanes),
	}), nil
}

// align repairs documents edited outside of the editor so every feature has
// exactly one value per competitor.
func align(attrs collection.Fields, value collection.Fields) collection.Fields {
	l := linked(attrs)
	if l.Aligned() {
		return attrs
	}
	lanes := make([]collection.Collection, len(l.Lanes))
	for k, lane := range l.Lanes {
		lanes[k] = collection.Align(lane, len(l.Primary), value)
	}
	return attrs.With(Features, collection.SetLanes(attrs.List(Features), CompetitorValues, lanes))
}
