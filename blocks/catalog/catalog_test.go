package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"cblocks/blocks"
	"cblocks/blocks/blockstest"
	"cblocks/collection"
	"cblocks/common"
	"cblocks/config"
	"cblocks/render"
)

func TestRegistry(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	r := New(&cfg.Blocks)

	var want []common.BlockKind
	for _, name := range common.BlockKindNames() {
		want = append(want, common.BlockKind(name))
	}
	if diff := cmp.Diff(want, r.Kinds()); diff != "" {
		t.Errorf("Kinds() mismatch (-want +got):\n%s", diff)
	}

	if _, err := r.Lookup(common.BlockKind("carousel")); !errors.Is(err, common.ErrInvalidBlockKind) {
		t.Errorf("Lookup(carousel) error = %v", err)
	}

	for _, kind := range r.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			b, err := r.Lookup(kind)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if b.Kind() != kind {
				t.Fatalf("Kind() = %s", b.Kind())
			}
			ctx, err := render.NewContext(kind, "block-1", &cfg.Render, zaptest.NewLogger(t))
			if err != nil {
				t.Fatalf("NewContext() error = %v", err)
			}

			attrs := b.Defaults()
			before := collection.Dump(attrs)
			// both views, both idempotent
			blockstest.Units(t, b, ctx, attrs, render.Units(b.Save(attrs, ctx)))
			if _, err := b.Apply(attrs, blocks.Op{Action: "no-such-action"}, &blocks.Env{}); !errors.Is(err, blocks.ErrUnknownAction) {
				t.Errorf("Apply(unknown) error = %v", err)
			}
			if collection.Dump(attrs) != before {
				t.Errorf("defaults modified")
			}
		})
	}
}
