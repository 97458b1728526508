package hero_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cblocks/blocks"
	"cblocks/blocks/blockstest"
	"cblocks/blocks/hero"
	"cblocks/collection"
	"cblocks/media"
	"cblocks/render"
)

func newBlock(t *testing.T) (*hero.Block, *render.Context) {
	t.Helper()
	cfg := blockstest.Config(t)
	b := hero.New(&cfg.Blocks.Hero)
	return b, blockstest.Context(t, cfg, b)
}

func units(attrs collection.Fields) []render.UnitRef {
	return append(blockstest.Refs(hero.ServiceCards, attrs.List(hero.ServiceCards)),
		blockstest.Refs(hero.BenefitCards, attrs.List(hero.BenefitCards))...)
}

type fakeMedia map[string]media.Asset

func (m fakeMedia) Select(ref string) (media.Asset, error) {
	if a, ok := m[ref]; ok {
		return a, nil
	}
	return media.Asset{}, errors.New("no such media")
}

func TestServiceCards_Limits(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()

	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionAddServiceCard})
	cards := attrs.List(hero.ServiceCards)
	if len(cards) != 4 {
		t.Fatalf("service cards = %d, want 4", len(cards))
	}
	if got := cards[3].String("title", ""); got != "New Service" {
		t.Errorf("new card title = %q", got)
	}
	if got := cards[3].String("icon", ""); got != "⭐" {
		t.Errorf("new card icon = %q, want configured template", got)
	}
	blockstest.Reject(t, b, attrs, blocks.Op{Action: hero.ActionAddServiceCard}, collection.ErrCapacityExceeded)
	if out := blockstest.Markup(t, b.Edit(attrs, nil, ctx)); strings.Contains(out, `data-action="add-service-card"`) {
		t.Errorf("add service card offered at capacity")
	}

	for range 3 {
		attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionRemoveServiceCard, Index: 0})
	}
	if got := attrs.List(hero.ServiceCards)[0].ID; got != cards[3].ID {
		t.Errorf("remaining card = %s, want %s", got, cards[3].ID)
	}
	blockstest.Reject(t, b, attrs, blocks.Op{Action: hero.ActionRemoveServiceCard, Index: 0}, collection.ErrCapacityExceeded)
	blockstest.Reject(t, b, attrs, blocks.Op{Action: hero.ActionUpdateServiceCard, Index: 3, Field: "title", Value: "x"}, collection.ErrOutOfRange)
}

func TestBenefitCards(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()
	before := attrs.List(hero.BenefitCards)

	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionAddBenefitCard})
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionUpdateBenefitCard, Index: 2, Field: "text", Value: "Online sessions"})
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionMoveBenefitCard, Index: 2, Direction: collection.Up})

	list := attrs.List(hero.BenefitCards)
	got := []string{list[0].String("text", ""), list[1].String("text", ""), list[2].String("text", "")}
	want := []string{"Licensed professionals", "Online sessions", "Flexible scheduling"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("benefits mismatch (-want +got):\n%s", diff)
	}
	if list[2].ID != before[1].ID {
		t.Errorf("moved entry lost its id")
	}
	blockstest.Units(t, b, ctx, attrs, units(attrs))

	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionRemoveBenefitCard, Index: 0})
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionRemoveBenefitCard, Index: 0})
	blockstest.Reject(t, b, attrs, blocks.Op{Action: hero.ActionRemoveBenefitCard, Index: 0}, collection.ErrCapacityExceeded)
	blockstest.Reject(t, b, attrs, blocks.Op{Action: hero.ActionMoveBenefitCard, Index: 0, Direction: collection.Down}, collection.ErrOutOfRange)
}

func TestSelectImage(t *testing.T) {
	b, _ := newBlock(t)
	attrs := b.Defaults()
	host := fakeMedia{"people/anna.jpg": {URL: "/media/people/anna.jpg", ID: "a1", Alt: "Anna"}}

	next, err := b.Apply(attrs, blocks.Op{Action: hero.ActionSelectImage, Value: "people/anna.jpg"}, &blocks.Env{Media: host})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	img := next.Map(hero.PersonImage)
	if img.String("url", "") != "/media/people/anna.jpg" || img.String("id", "") != "a1" || img.String("alt", "") != "Anna" {
		t.Errorf("person image = %v", img)
	}
	if attrs.Map(hero.PersonImage).String("url", "") != "" {
		t.Errorf("previous attributes modified")
	}

	if _, err := b.Apply(attrs, blocks.Op{Action: hero.ActionSelectImage, Value: "missing.jpg"}, &blocks.Env{Media: host}); err == nil {
		t.Errorf("expected error for unknown media")
	}

	// without media host triple comes with operation
	direct := blockstest.Apply(t, b, attrs, blocks.Op{
		Action: hero.ActionSelectImage,
		Fields: map[string]any{"url": "https://example.com/p.jpg", "id": "7", "alt": "Portrait"},
	})
	if got := direct.Map(hero.PersonImage).String("url", ""); got != "https://example.com/p.jpg" {
		t.Errorf("url = %q", got)
	}
	blockstest.Reject(t, b, attrs, blocks.Op{Action: hero.ActionSelectImage}, blocks.ErrInvalidValue)

	removed := blockstest.Apply(t, b, direct, blocks.Op{Action: hero.ActionRemoveImage})
	img = removed.Map(hero.PersonImage)
	if img.String("url", "x") != "" || img.Int("id", -1) != 0 || img.String("alt", "x") != "" {
		t.Errorf("removed image = %v", img)
	}
}

func TestSet(t *testing.T) {
	b, _ := newBlock(t)
	attrs := b.Defaults()

	tests := []struct {
		name  string
		field string
		value any
		want  int
	}{
		{"image_position_clamped", "personImagePosition", 150, 100},
		{"horizontal_clamped", "benefitsHorizontalPosition", -300, -100},
		{"vertical_clamped", "benefitsVerticalPosition", 70, 50},
		{"vertical_in_range", "benefitsVerticalPosition", -20, -20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionSet, Field: tt.field, Value: tt.value})
			if got := next.Int(tt.field, 0); got != tt.want {
				t.Errorf("%s = %d, want %d", tt.field, got, tt.want)
			}
		})
	}

	blockstest.Reject(t, b, attrs, blocks.Op{Action: hero.ActionSet, Field: "blockZIndex", Value: "top"}, blocks.ErrInvalidValue)
	blockstest.Reject(t, b, attrs, blocks.Op{Action: hero.ActionSet, Field: hero.PersonImage, Value: map[string]any{}}, blocks.ErrUnknownAction)
	blockstest.Reject(t, b, attrs, blocks.Op{Action: hero.ActionSet, Field: hero.ServiceCards, Value: nil}, blocks.ErrUnknownAction)
}

func TestSave(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionSet, Fields: map[string]any{
		"fullHeight":                 true,
		"blockZIndex":                "9999",
		"personImagePosition":        30,
		"benefitsHorizontalPosition": 10,
		"benefitsVerticalPosition":   -5,
	}})
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{
		Action: hero.ActionSelectImage,
		Fields: map[string]any{"url": "/media/anna.jpg", "id": "1", "alt": "Anna"},
	})
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionUpdateServiceCard, Index: 1, Field: "link", Value: "javascript:alert(1)"})

	out := blockstest.Markup(t, b.Save(attrs, ctx))
	for _, want := range []string{
		`class="wp-block wp-block-custom-blocks-hero is-full-height"`,
		`style="z-index: 9999;"`,
		`<a class="counseling-service-card" data-unit="serviceCards"`,
		`href="#individual"`,
		`background-image: url(/media/anna.jpg); left: 30%;`,
		`role="img" aria-label="Anna"`,
		`transform: translate(10px, -5px);`,
		`<div class="counseling-service-arrow" aria-hidden="true">→</div>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("static markup misses %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, "javascript:") {
		t.Errorf("unsafe link rendered:\n%s", out)
	}
	blockstest.Units(t, b, ctx, attrs, units(attrs))
}

func TestSave_NoImage(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()
	out := blockstest.Markup(t, b.Save(attrs, ctx))
	if strings.Contains(out, "counseling-above-fold-person") {
		t.Errorf("person image rendered without url:\n%s", out)
	}
	if strings.Contains(out, "is-full-height") {
		t.Errorf("full height class without flag")
	}
	edit := blockstest.Markup(t, b.Edit(attrs, nil, ctx))
	if !strings.Contains(edit, ">Select Image</button>") || strings.Contains(edit, "remove-image") {
		t.Errorf("editor image controls wrong:\n%s", edit)
	}
}

func TestEdit(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionRemoveServiceCard, Index: 0})
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: hero.ActionRemoveServiceCard, Index: 0})

	out := blockstest.Markup(t, b.Edit(attrs, nil, ctx))
	for _, want := range []string{
		`class="wp-block wp-block-custom-blocks-hero is-editing"`,
		`<h4>Service Card 1</h4>`,
		`<span class="capacity-counter" data-list="serviceCards">1/4</span>`,
		`data-action="remove-service-card" data-list="serviceCards" data-index="0" disabled="disabled"`,
		`data-action="add-service-card"`,
		`<option value="1" selected="selected">1</option>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("editor markup misses %s:\n%s", want, out)
		}
	}
	blockstest.Units(t, b, ctx, attrs, units(attrs))
}
