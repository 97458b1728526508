// Package blockstest has helpers shared by tests of block packages.
package blockstest

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"cblocks/blocks"
	"cblocks/collection"
	"cblocks/config"
	"cblocks/render"
)

// Config returns default configuration.
func Config(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	return cfg
}

// Context returns rendering context with default settings.
func Context(t *testing.T, cfg *config.Config, b blocks.Block) *render.Context {
	t.Helper()
	ctx, err := render.NewContext(b.Kind(), "block-1", &cfg.Render, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	return ctx
}

// Apply applies operation and fails test on any error.
func Apply(t *testing.T, b blocks.Block, attrs collection.Fields, op blocks.Op) collection.Fields {
	t.Helper()
	next, err := b.Apply(attrs, op, &blocks.Env{})
	if err != nil {
		t.Fatalf("Apply(%s) error = %v", op, err)
	}
	return next
}

// Reject applies operation expected to be rejected with want and checks
// attributes did not change.
func Reject(t *testing.T, b blocks.Block, attrs collection.Fields, op blocks.Op, want error) {
	t.Helper()
	before := collection.Dump(attrs)
	next, err := b.Apply(attrs, op, &blocks.Env{})
	if !errors.Is(err, want) {
		t.Fatalf("Apply(%s) error = %v, want %v", op, err, want)
	}
	if got := collection.Dump(next); got != before {
		t.Errorf("Apply(%s) changed rejected attributes:\n%s", op, cmp.Diff(before, got))
	}
}

// Units renders both views and checks they produce identical unit sequences
// listed in want, rendering is idempotent and attributes are not touched.
func Units(t *testing.T, b blocks.Block, ctx *render.Context, attrs collection.Fields, want []render.UnitRef) {
	t.Helper()
	before := collection.Dump(attrs)

	saved := b.Save(attrs, ctx)
	edited := b.Edit(attrs, nil, ctx)
	if diff := cmp.Diff(want, render.Units(saved)); diff != "" {
		t.Errorf("static units mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(render.Units(saved), render.Units(edited)); diff != "" {
		t.Errorf("editor units differ from static (-static +editor):\n%s", diff)
	}

	if first, second := Markup(t, saved), Markup(t, b.Save(attrs, ctx)); first != second {
		t.Errorf("static rendering is not idempotent:\n%s", cmp.Diff(first, second))
	}
	if first, second := Markup(t, edited), Markup(t, b.Edit(attrs, nil, ctx)); first != second {
		t.Errorf("editor rendering is not idempotent:\n%s", cmp.Diff(first, second))
	}
	// display state is synced on every render and must settle after the first
	state := render.NewEditorState()
	if first, second := Markup(t, b.Edit(attrs, state, ctx)), Markup(t, b.Edit(attrs, state, ctx)); first != second {
		t.Errorf("editor rendering with kept state is not idempotent:\n%s", cmp.Diff(first, second))
	}
	if got := collection.Dump(attrs); got != before {
		t.Errorf("rendering changed attributes:\n%s", cmp.Diff(before, got))
	}
}

// Perform runs operation through editor session and fails test on any error.
func Perform(t *testing.T, s *blocks.Session, attrs collection.Fields, op blocks.Op) collection.Fields {
	t.Helper()
	next, err := s.Perform(attrs, op)
	if err != nil {
		t.Fatalf("Perform(%s) error = %v", op, err)
	}
	return next
}

// Refs builds expected units of entries of list.
func Refs(list string, c collection.Collection) []render.UnitRef {
	refs := make([]render.UnitRef, len(c))
	for i, e := range c {
		refs[i] = render.UnitRef{List: list, ID: e.ID}
	}
	return refs
}

// Markup serializes rendered tree compactly.
func Markup(t *testing.T, root *etree.Element) string {
	t.Helper()
	out, err := render.Serialize(root, 0)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	return out
}
