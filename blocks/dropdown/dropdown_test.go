package dropdown_test

import (
	"strings"
	"testing"

	"cblocks/blocks"
	"cblocks/blocks/blockstest"
	"cblocks/blocks/dropdown"
	"cblocks/collection"
	"cblocks/render"
)

func newBlock(t *testing.T) (*dropdown.Block, *render.Context) {
	t.Helper()
	cfg := blockstest.Config(t)
	b := dropdown.New(&cfg.Blocks.DropdownSwitcher)
	return b, blockstest.Context(t, cfg, b)
}

// three categories with selection on the last one
func threeCategories(t *testing.T, b *dropdown.Block) collection.Fields {
	t.Helper()
	attrs := blockstest.Apply(t, b, b.Defaults(), blocks.Op{Action: dropdown.ActionAddCategory})
	return blockstest.Apply(t, b, attrs, blocks.Op{Action: dropdown.ActionSelectCategory, Value: "2"})
}

func TestRemoveCategory_Selection(t *testing.T) {
	b, _ := newBlock(t)

	tests := []struct {
		name     string
		selected string
		remove   int
		want     string
	}{
		{"removed selected", "1", 1, "0"},
		{"removed before selected", "2", 0, "1"},
		{"removed after selected", "0", 2, "0"},
		{"removed last selected", "2", 2, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := threeCategories(t, b)
			attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: dropdown.ActionSelectCategory, Value: tt.selected})
			attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: dropdown.ActionRemoveCategory, Index: tt.remove})
			if got := attrs.String(dropdown.Selected, ""); got != tt.want {
				t.Errorf("selectedCategory = %q, want %q", got, tt.want)
			}
			if got := len(attrs.List(dropdown.Categories)); got != 2 {
				t.Errorf("categories = %d, want 2", got)
			}
		})
	}
}

func TestRemoveCategory_Minimum(t *testing.T) {
	b, _ := newBlock(t)
	attrs := blockstest.Apply(t, b, b.Defaults(), blocks.Op{Action: dropdown.ActionRemoveCategory, Index: 0})
	blockstest.Reject(t, b, attrs, blocks.Op{Action: dropdown.ActionRemoveCategory, Index: 0}, collection.ErrCapacityExceeded)
}

func TestMoveCategory_SelectionFollows(t *testing.T) {
	b, _ := newBlock(t)
	attrs := threeCategories(t, b)
	selectedID := attrs.List(dropdown.Categories)[2].ID

	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: dropdown.ActionMoveCategory, Index: 2, Direction: collection.Up})
	if got := attrs.String(dropdown.Selected, ""); got != "1" {
		t.Fatalf("selectedCategory = %q, want 1", got)
	}
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: dropdown.ActionMoveCategory, Index: 0, Direction: collection.Down})
	if got := attrs.String(dropdown.Selected, ""); got != "0" {
		t.Fatalf("selectedCategory = %q, want 0", got)
	}
	if got := attrs.List(dropdown.Categories)[0].ID; got != selectedID {
		t.Errorf("selected category id = %s, want %s", got, selectedID)
	}

	blockstest.Reject(t, b, attrs, blocks.Op{Action: dropdown.ActionMoveCategory, Index: 0, Direction: collection.Up}, collection.ErrOutOfRange)
	blockstest.Reject(t, b, attrs, blocks.Op{Action: dropdown.ActionSelectCategory, Value: "3"}, collection.ErrOutOfRange)
}

func TestSet(t *testing.T) {
	b, _ := newBlock(t)
	attrs := blockstest.Apply(t, b, b.Defaults(), blocks.Op{Action: dropdown.ActionSet, Field: "borderSide", Value: "left"})
	if got := attrs.String("borderSide", ""); got != "left" {
		t.Errorf("borderSide = %q, want left", got)
	}
	blockstest.Reject(t, b, attrs, blocks.Op{Action: dropdown.ActionSet, Field: "borderSide", Value: "diagonal"}, blocks.ErrInvalidValue)
	blockstest.Reject(t, b, attrs, blocks.Op{Action: dropdown.ActionSet, Field: dropdown.Selected, Value: "1"}, blocks.ErrUnknownAction)
}

func TestItems(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: dropdown.ActionAddItem, Index: 1})
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: dropdown.ActionUpdateItem, Index: 1, Item: 1, Field: "link", Value: "/families"})
	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: dropdown.ActionMoveItem, Index: 1, Item: 1, Direction: collection.Up})

	items := attrs.List(dropdown.Categories)[1].Fields.List(dropdown.Items)
	if got := items[0].String("link", ""); got != "/families" {
		t.Errorf("moved item link = %q", got)
	}

	var want []render.UnitRef
	for _, c := range attrs.List(dropdown.Categories) {
		want = append(want, render.UnitRef{List: dropdown.Categories, ID: c.ID})
		want = append(want, blockstest.Refs(dropdown.Items, c.Fields.List(dropdown.Items))...)
	}
	blockstest.Units(t, b, ctx, attrs, want)

	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: dropdown.ActionRemoveItem, Index: 1, Item: 0})
	blockstest.Reject(t, b, attrs, blocks.Op{Action: dropdown.ActionRemoveItem, Index: 1, Item: 1}, collection.ErrOutOfRange)
}

func TestSave_Deterministic(t *testing.T) {
	b, ctx := newBlock(t)
	attrs := b.Defaults()

	out := blockstest.Markup(t, b.Save(attrs, ctx))
	for _, want := range []string{
		`data-block-id="information-dropdown-block-1"`,
		`<option value="0">Individuals</option><option value="1">Families</option>`,
		`class="information-grid active"`,
		`data-item-count="2"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markup does not contain %s:\n%s", want, out)
		}
	}
	if strings.Count(out, "information-grid active") != 1 {
		t.Errorf("exactly one grid has to be active:\n%s", out)
	}

	attrs = blockstest.Apply(t, b, attrs, blocks.Op{Action: dropdown.ActionSelectCategory, Index: 1})
	edit := blockstest.Markup(t, b.Edit(attrs, nil, ctx))
	if !strings.Contains(edit, `<option value="1" selected="selected">Families</option>`) {
		t.Errorf("editor does not select current category:\n%s", edit)
	}
}
