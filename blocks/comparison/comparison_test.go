package comparison_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cblocks/blocks"
	"cblocks/blocks/blockstest"
	"cblocks/blocks/comparison"
	"cblocks/collection"
	"cblocks/render"
)

func newBlock(t *testing.T) (*comparison.Block, *render.Context) {
	t.Helper()
	cfg := blockstest.Config(t)
	b := comparison.New(&cfg.Blocks.ComparisonTable)
	return b, blockstest.Context(t, cfg, b)
}

func valueIDs(attrs collection.Fields) [][]string {
	var out [][]string
	for _, f := range attrs.List(comparison.Features) {
		out = append(out, f.Fields.List(comparison.CompetitorValues).IDs())
	}
	return out
}

func TestDefaults(t *testing.T) {
	b, _ := newBlock(t)
	attrs := b.Defaults()

	competitors := attrs.List(comparison.Competitors)
	if len(competitors) != 2 {
		t.Fatalf("competitors = %d, want 2", len(competitors))
	}
	if got := competitors[1].String("name", ""); got != "Competitor 2" {
		t.Errorf("name = %q, want %q", got, "Competitor 2")
	}
	features := attrs.List(comparison.Features)
	if len(features) != 1 {
		t.Fatalf("features = %d, want 1", len(features))
	}
	if got := features[0].Fields.Map(comparison.OurValue).String("type", ""); got != "check" {
		t.Errorf("our value type = %q, want check", got)
	}
	if got := len(features[0].Fields.List(comparison.CompetitorValues)); got != 2 {
		t.Errorf("competitor values = %d, want 2", got)
	}
}

func TestAddCompetitor_Capacity(t *testing.T) {
	b, _ := newBlock(t)
	attrs := b.Defaults()
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionAddFeature})

	for range 3 {
		attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionAddCompetitor})
	}
	competitors := attrs.List(comparison.Competitors)
	if len(competitors) != 5 {
		t.Fatalf("competitors = %d, want 5", len(competitors))
	}
	if got := competitors[4].String("name", ""); got != "Competitor 5" {
		t.Errorf("name = %q, want %q", got, "Competitor 5")
	}
	for i, f := range attrs.List(comparison.Features) {
		values := f.Fields.List(comparison.CompetitorValues)
		if len(values) != 5 {
			t.Fatalf("feature %d values = %d, want 5", i, len(values))
		}
		if got := values[4].String("type", ""); got != "cross" {
			t.Errorf("feature %d new value type = %q, want cross", i, got)
		}
	}

	blockstest.Reject(t, b, attrs, blocks.Op{Action: comparison.ActionAddCompetitor}, collection.ErrCapacityExceeded)
}

func TestRemoveCompetitor_Linked(t *testing.T) {
	b, _ := newBlock(t)
	attrs := blockstest.Apply(t, b, b.Defaults(), blocks.Op{Action: comparison.ActionAddFeature})
	ids := attrs.List(comparison.Competitors).IDs()
	values := valueIDs(attrs)

	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionRemoveCompetitor, Index: 0})

	if diff := cmp.Diff(ids[1:], attrs.List(comparison.Competitors).IDs()); diff != "" {
		t.Errorf("competitors mismatch (-want +got):\n%s", diff)
	}
	want := [][]string{values[0][1:], values[1][1:]}
	if diff := cmp.Diff(want, valueIDs(attrs)); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	for _, i := range []int{-1, 1} {
		blockstest.Reject(t, b, attrs, blocks.Op{Action: comparison.ActionRemoveCompetitor, Index: i}, collection.ErrOutOfRange)
	}
}

func TestMoveCompetitor_Linked(t *testing.T) {
	b, _ := newBlock(t)
	attrs := b.Defaults()
	ids := attrs.List(comparison.Competitors).IDs()
	values := valueIDs(attrs)

	moved := blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionMoveCompetitor, Index: 0, Direction: collection.Down})
	if diff := cmp.Diff([]string{ids[1], ids[0]}, moved.List(comparison.Competitors).IDs()); diff != "" {
		t.Errorf("competitors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{values[0][1], values[0][0]}}, valueIDs(moved)); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	back := blockstest.Apply(t, b, moved, blocks.Op{Action: comparison.ActionMoveCompetitor, Index: 1, Direction: collection.Up})
	if diff := cmp.Diff(collection.Dump(attrs), collection.Dump(back)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	blockstest.Reject(t, b, attrs, blocks.Op{Action: comparison.ActionMoveCompetitor, Index: 0, Direction: collection.Up}, collection.ErrOutOfRange)
	blockstest.Reject(t, b, attrs, blocks.Op{Action: comparison.ActionMoveCompetitor, Index: 1, Direction: collection.Down}, collection.ErrOutOfRange)
}

func TestSetValue(t *testing.T) {
	b, _ := newBlock(t)
	attrs := b.Defaults()

	attrs = blockstest.Apply(t, b, attrs, blocks.Op{
		Action: comparison.ActionSetValue, List: comparison.Our, Index: 0,
		Fields: map[string]any{"type": "text", "value": "24/7"},
	})
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{
		Action: comparison.ActionSetValue, List: comparison.CompetitorValues, Index: 0, Item: 1,
		Field: "type", Value: "dash",
	})

	f := attrs.List(comparison.Features)[0]
	if got := f.Fields.Map(comparison.OurValue).String("value", ""); got != "24/7" {
		t.Errorf("our value = %q, want 24/7", got)
	}
	values := f.Fields.List(comparison.CompetitorValues)
	if got := values[1].String("type", ""); got != "dash" {
		t.Errorf("competitor value type = %q, want dash", got)
	}
	if got := values[0].String("type", ""); got != "cross" {
		t.Errorf("untouched value type = %q, want cross", got)
	}

	blockstest.Reject(t, b, attrs, blocks.Op{Action: comparison.ActionSetValue, List: comparison.Our, Index: 3, Field: "type", Value: "dash"}, collection.ErrOutOfRange)
	blockstest.Reject(t, b, attrs, blocks.Op{Action: comparison.ActionSetValue, List: comparison.CompetitorValues, Index: 0, Item: 2, Field: "type", Value: "dash"}, collection.ErrOutOfRange)
}

func TestUnknownAction(t *testing.T) {
	b, _ := newBlock(t)
	blockstest.Reject(t, b, b.Defaults(), blocks.Op{Action: "explode"}, blocks.ErrUnknownAction)
	blockstest.Reject(t, b, b.Defaults(), blocks.Op{Action: comparison.ActionSet, Field: comparison.Competitors}, blocks.ErrUnknownAction)
}

func TestMisalignedDocument(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()
	// value lanes lost outside of the editor
	f := attrs.List(comparison.Features)
	attrs = attrs.With(comparison.Features, collection.Map(f, func(e *collection.Entry) collection.Fields {
		return e.Fields.With(comparison.CompetitorValues, collection.Collection{})
	}))

	blockstest.Units(t, b, ctx, attrs, append(
		blockstest.Refs(comparison.Competitors, attrs.List(comparison.Competitors)),
		blockstest.Refs(comparison.Features, attrs.List(comparison.Features))...,
	))

	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionAddCompetitor})
	values := attrs.List(comparison.Features)[0].Fields.List(comparison.CompetitorValues)
	if len(values) != 3 {
		t.Errorf("values after add = %d, want 3", len(values))
	}
}

func TestRender_Units(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()
	for range 3 {
		attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionAddFeature})
	}

	var want []render.UnitRef
	want = append(want, blockstest.Refs(comparison.Competitors, attrs.List(comparison.Competitors))...)
	for _, f := range attrs.List(comparison.Features) {
		want = append(want, render.UnitRef{List: comparison.Features, ID: f.ID})
		want = append(want, blockstest.Refs(comparison.CompetitorValues, f.Fields.List(comparison.CompetitorValues))...)
	}
	blockstest.Units(t, b, ctx, attrs, want)
}

func TestSave_MobileShowMore(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()

	out := blockstest.Markup(t, b.Save(attrs, ctx))
	if strings.Contains(out, "fade-out") || strings.Contains(out, "show-more-button") {
		t.Errorf("single feature must not be collapsed:\n%s", out)
	}

	for range 4 {
		attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionAddFeature})
	}
	out = blockstest.Markup(t, b.Save(attrs, ctx))
	for _, want := range []string{
		`class="mobile-features-container fade-out collapsed"`,
		`<span class="button-text">Show 2 More</span>`,
		`data-feature-count="5"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markup does not contain %s:\n%s", want, out)
		}
	}
}

func TestSave_ValueTypes(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := blockstest.Apply(t, b, b.Defaults(), blocks.Op{
		Action: comparison.ActionSetValue, List: comparison.Our, Index: 0,
		Fields: map[string]any{"type": "text", "value": "24/7"},
	})
	out := blockstest.Markup(t, b.Save(attrs, ctx))
	for _, want := range []string{
		`<span style="color: #374151; font-size: 14px; font-weight: 500;">24/7</span>`,
		`class="icon icon-cross"`,
		`stroke="#ef4444"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markup does not contain %s:\n%s", want, out)
		}
	}
}

func TestEdit(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionRemoveFeature, Index: 0})

	out := blockstest.Markup(t, b.Edit(attrs, nil, ctx))
	for _, want := range []string{"comparison-placeholder", `<span class="capacity-counter">2/5</span>`, `data-action="add-competitor"`} {
		if !strings.Contains(out, want) {
			t.Errorf("editor markup does not contain %s:\n%s", want, out)
		}
	}

	for range 3 {
		attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionAddCompetitor})
	}
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionAddFeature})
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: comparison.ActionAddFeature})

	state := render.NewEditorState()
	features := attrs.List(comparison.Features)
	state.Select(comparison.Features, features[1].ID)
	root := b.Edit(attrs, state, ctx)
	out = blockstest.Markup(t, root)
	if strings.Contains(out, `data-action="add-competitor"`) {
		t.Errorf("add competitor offered at capacity:\n%s", out)
	}
	selected := root.FindElements(`//div[@data-unit='features']`)
	if len(selected) != 2 {
		t.Fatalf("feature panels = %d, want 2", len(selected))
	}
	if got := selected[1].SelectAttrValue("class", ""); got != "feature-panel is-selected" {
		t.Errorf("selected panel class = %q", got)
	}
	if got := selected[0].SelectAttrValue("class", ""); got != "feature-panel" {
		t.Errorf("other panel class = %q", got)
	}
}

func selectedFeature(t *testing.T, s *blocks.Session, attrs collection.Fields, ctx *render.Context) int {
	t.Helper()
	for i, panel := range s.Edit(attrs, ctx).FindElements(`//div[@data-unit='features']`) {
		if strings.Contains(panel.SelectAttrValue("class", ""), "is-selected") {
			return i
		}
	}
	return -1
}

func TestSession_Selection(t *testing.T) {
	b, ctx := newBlock(t)
	s := blocks.NewSession(b, &blocks.Env{})
	attrs := b.Defaults()

	steps := []struct {
		name string
		op   blocks.Op
		want int
	}{
		{"added feature is selected", blocks.Op{Action: comparison.ActionAddFeature}, 1},
		{"second added feature is selected", blocks.Op{Action: comparison.ActionAddFeature}, 2},
		{"select first", blocks.Op{Action: comparison.ActionSelectFeature, Index: 0}, 0},
		{"selection follows moved feature", blocks.Op{Action: comparison.ActionMoveFeature, Index: 0, Direction: collection.Down}, 1},
		{"removing other feature keeps selection", blocks.Op{Action: comparison.ActionRemoveFeature, Index: 0}, 0},
		{"select last", blocks.Op{Action: comparison.ActionSelectFeature, Index: 1}, 1},
		{"removing selected last feature clamps", blocks.Op{Action: comparison.ActionRemoveFeature, Index: 1}, 0},
	}
	for _, step := range steps {
		attrs = blockstest.Perform(t, s, attrs, step.op)
		if got := selectedFeature(t, s, attrs, ctx); got != step.want {
			t.Fatalf("%s: selected = %d, want %d", step.name, got, step.want)
		}
	}

	before := collection.Dump(attrs)
	next, err := s.Perform(attrs, blocks.Op{Action: comparison.ActionSelectFeature, Index: 5})
	if !errors.Is(err, collection.ErrOutOfRange) {
		t.Fatalf("Perform() error = %v, want %v", err, collection.ErrOutOfRange)
	}
	if got := collection.Dump(next); got != before {
		t.Errorf("select changed attributes:\n%s", cmp.Diff(before, got))
	}
	if got := selectedFeature(t, s, attrs, ctx); got != 0 {
		t.Errorf("rejected select moved selection to %d", got)
	}
}

func TestSession_RemoveSelectedInMiddle(t *testing.T) {
	b, ctx := newBlock(t)
	s := blocks.NewSession(b, &blocks.Env{})
	attrs := b.Defaults()
	attrs = blockstest.Perform(t, s, attrs, blocks.Op{Action: comparison.ActionAddFeature})
	attrs = blockstest.Perform(t, s, attrs, blocks.Op{Action: comparison.ActionAddFeature})
	attrs = blockstest.Perform(t, s, attrs, blocks.Op{Action: comparison.ActionSelectFeature, Index: 1})
	following := attrs.List(comparison.Features)[2].ID

	attrs = blockstest.Perform(t, s, attrs, blocks.Op{Action: comparison.ActionRemoveFeature, Index: 1})
	if got := s.State().SelectedID(comparison.Features); got != following {
		t.Errorf("selected = %q, want feature taking removed place %q", got, following)
	}
	if got := selectedFeature(t, s, attrs, ctx); got != 1 {
		t.Errorf("selected panel = %d, want 1", got)
	}
}

func TestMistypedCollections(t *testing.T) {
	b, _ := newBlock(t)
	attrs := b.Defaults()

	broken := attrs.With(comparison.Competitors, "Acme, Globex")
	for _, op := range []blocks.Op{
		{Action: comparison.ActionAddCompetitor},
		{Action: comparison.ActionRemoveCompetitor, Index: 0},
		{Action: comparison.ActionRenameCompetitor, Index: 0, Value: "Acme"},
	} {
		blockstest.Reject(t, b, broken, op, blocks.ErrInvalidValue)
	}

	feature := attrs.List(comparison.Features)[0]
	lanes, err := collection.Update(attrs.List(comparison.Features), 0, collection.Fields{comparison.CompetitorValues: []any{"yes", "no"}})
	if err != nil {
		t.Fatal(err)
	}
	broken = attrs.With(comparison.Features, lanes)
	blockstest.Reject(t, b, broken, blocks.Op{Action: comparison.ActionAddCompetitor}, blocks.ErrInvalidValue)
	blockstest.Reject(t, b, broken, blocks.Op{Action: comparison.ActionSetValue, Index: 0, Item: 0, Value: "x", Field: "value"}, blocks.ErrInvalidValue)
	if got := broken.List(comparison.Features)[0].ID; got != feature.ID {
		t.Errorf("feature id = %s, want %s", got, feature.ID)
	}
}
