// Package hero implements above the fold hero section: heading with service
// cards on the left, person image in the middle and benefit cards on the
// right.
package hero

import (
	"fmt"
	"strconv"

	"cblocks/blocks"
	"cblocks/collection"
	"cblocks/common"
	"cblocks/config"
	"cblocks/media"
)

const (
	ServiceCards = "serviceCards"
	BenefitCards = "benefitCards"
	PersonImage  = "personImage"
)

const (
	ActionSet               = "set"
	ActionAddServiceCard    = "add-service-card"
	ActionRemoveServiceCard = "remove-service-card"
	ActionUpdateServiceCard = "update-service-card"
	ActionMoveServiceCard   = "move-service-card"
	ActionAddBenefitCard    = "add-benefit-card"
	ActionRemoveBenefitCard = "remove-benefit-card"
	ActionUpdateBenefitCard = "update-benefit-card"
	ActionMoveBenefitCard   = "move-benefit-card"
	ActionSelectImage       = "select-image"
	ActionRemoveImage       = "remove-image"
)

// Z-index choices offered by editor.
var ZIndexes = []string{"auto", "1", "9999"}

// Ranges of position controls.
const (
	minImagePosition  = 0
	maxImagePosition  = 100
	maxBenefitsShiftX = 100
	maxBenefitsShiftY = 50
)

type Block struct {
	cfg *config.HeroConfig
}

func New(cfg *config.HeroConfig) *Block {
	return &Block{cfg: cfg}
}

func (b *Block) Kind() common.BlockKind {
	return common.BlockKindHero
}

func (b *Block) Defaults() collection.Fields {
	return collection.Fields{
		"heading":                    "Find the support you need",
		"subheading":                 "Compassionate counseling for individuals, couples and families.",
		PersonImage:                  emptyImage(),
		"personImagePosition":        50,
		"leftBackgroundColor":        "#f5f3ef",
		"rightBackgroundColor":       "#e8eee9",
		"headingColor":               "#1f2937",
		"subheadingColor":            "#4b5563",
		"cardBackgroundColor":        "#ffffff",
		"cardIconBackgroundColor":    "#e8eee9",
		"cardIconColor":              "#3f6e55",
		"cardTitleColor":             "#1f2937",
		"cardDescriptionColor":       "#6b7280",
		"benefitTextColor":           "#1f2937",
		"blockZIndex":                "1",
		"fullHeight":                 false,
		"benefitsHorizontalPosition": 0,
		"benefitsVerticalPosition":   0,
		ServiceCards: collection.Collection{
			collection.New(collection.Fields{"icon": "◉", "title": "Individual Therapy", "description": "One on one sessions", "link": "#individual"}),
			collection.New(collection.Fields{"icon": "◎", "title": "Couples Counseling", "description": "Strengthen your relationship", "link": "#couples"}),
			collection.New(collection.Fields{"icon": "●", "title": "Family Sessions", "description": "Support for the whole family", "link": "#family"}),
		},
		BenefitCards: collection.Collection{
			collection.New(collection.Fields{"text": "Licensed professionals"}),
			collection.New(collection.Fields{"text": "Flexible scheduling"}),
		},
	}
}

func emptyImage() collection.Fields {
	return media.Asset{}.Fields().With("id", 0)
}

func (b *Block) Apply(attrs collection.Fields, op blocks.Op, env *blocks.Env) (collection.Fields, error) {
	switch op.Action {
	case ActionSet:
		updates := op.Updates()
		if updates.Has(PersonImage) {
			return attrs, fmt.Errorf("person image has to be changed with %s: %w", ActionSelectImage, blocks.ErrUnknownAction)
		}
		updates, err := clampPositions(updates)
		if err != nil {
			return attrs, err
		}
		return blocks.Set(attrs, updates, ServiceCards, BenefitCards)

	case ActionAddServiceCard:
		template := blocks.Template(b.cfg.Templates, ServiceCards, collection.Fields{"icon": "◉", "title": "New Service", "description": "Description", "link": "#"})
		return blocks.Add(attrs, ServiceCards, template, b.cfg.MaxServiceCards)
	case ActionRemoveServiceCard:
		return blocks.Remove(attrs, ServiceCards, op.Index, b.cfg.MinServiceCards)
	case ActionUpdateServiceCard:
		return blocks.Update(attrs, ServiceCards, op.Index, op.Updates())
	case ActionMoveServiceCard:
		return blocks.Move(attrs, ServiceCards, op.Index, op.Direction)

	case ActionAddBenefitCard:
		template := blocks.Template(b.cfg.Templates, BenefitCards, collection.Fields{"text": "New Benefit"})
		return blocks.Add(attrs, BenefitCards, template, 0)
	case ActionRemoveBenefitCard:
		return blocks.Remove(attrs, BenefitCards, op.Index, b.cfg.MinBenefitCards)
	case ActionUpdateBenefitCard:
		return blocks.Update(attrs, BenefitCards, op.Index, op.Updates())
	case ActionMoveBenefitCard:
		return blocks.Move(attrs, BenefitCards, op.Index, op.Direction)

	case ActionSelectImage:
		asset, err := selectImage(op, env)
		if err != nil {
			return attrs, err
		}
		return attrs.With(PersonImage, asset.Fields()), nil
	case ActionRemoveImage:
		return attrs.With(PersonImage, emptyImage()), nil
	}
	return blocks.Unknown(b.Kind(), attrs, op)
}

// selectImage resolves reference through media host when there is one,
// otherwise operation has to carry the url/id/alt triple itself.
func selectImage(op blocks.Op, env *blocks.Env) (media.Asset, error) {
	if env != nil && env.Media != nil {
		ref, _ := op.Value.(string)
		if ref == "" {
			return media.Asset{}, fmt.Errorf("%s without media reference: %w", ActionSelectImage, blocks.ErrInvalidValue)
		}
		asset, err := env.Media.Select(ref)
		if err != nil {
			return media.Asset{}, fmt.Errorf("%s: %w", ActionSelectImage, err)
		}
		return asset, nil
	}
	f := collection.Fields(op.Fields)
	asset := media.Asset{URL: f.String("url", ""), ID: f.String("id", ""), Alt: f.String("alt", "")}
	if asset.URL == "" {
		return media.Asset{}, fmt.Errorf("%s without url: %w", ActionSelectImage, blocks.ErrInvalidValue)
	}
	return asset, nil
}

func clampPositions(updates collection.Fields) (collection.Fields, error) {
	for _, p := range []struct {
		field    string
		min, max int
	}{
		{"personImagePosition", minImagePosition, maxImagePosition},
		{"benefitsHorizontalPosition", -maxBenefitsShiftX, maxBenefitsShiftX},
		{"benefitsVerticalPosition", -maxBenefitsShiftY, maxBenefitsShiftY},
	} {
		if !updates.Has(p.field) {
			continue
		}
		updates = updates.With(p.field, clamp(updates.Int(p.field, 0), p.min, p.max))
	}
	if updates.Has("blockZIndex") {
		z := updates.String("blockZIndex", "")
		if !validZIndex(z) {
			return nil, fmt.Errorf("z-index %q: %w", z, blocks.ErrInvalidValue)
		}
		updates = updates.With("blockZIndex", z)
	}
	return updates, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func validZIndex(z string) bool {
	if z == "auto" {
		return true
	}
	_, err := strconv.Atoi(z)
	return err == nil
}
