// Package catalog knows every block implementation.
package catalog

import (
	"fmt"

	"cblocks/blocks"
	"cblocks/blocks/comparison"
	"cblocks/blocks/dropdown"
	"cblocks/blocks/faq"
	"cblocks/blocks/hero"
	"cblocks/blocks/hub"
	"cblocks/blocks/stats"
	"cblocks/common"
	"cblocks/config"
)

// Registry maps block kind to configured implementation.
type Registry struct {
	blocks map[common.BlockKind]blocks.Block
}

func New(cfg *config.BlocksConfig) *Registry {
	r := &Registry{blocks: make(map[common.BlockKind]blocks.Block)}
	for _, b := range []blocks.Block{
		comparison.New(&cfg.ComparisonTable),
		faq.New(&cfg.FAQ),
		stats.New(&cfg.StatsCard),
		hub.New(&cfg.InformationHub),
		dropdown.New(&cfg.DropdownSwitcher),
		hero.New(&cfg.Hero),
	} {
		r.blocks[b.Kind()] = b
	}
	return r
}

// Lookup returns block implementation for kind.
func (r *Registry) Lookup(kind common.BlockKind) (blocks.Block, error) {
	b, ok := r.blocks[kind]
	if !ok {
		return nil, fmt.Errorf("block %q: %w", kind, common.ErrInvalidBlockKind)
	}
	return b, nil
}

// Kinds returns registered kinds in declaration order.
func (r *Registry) Kinds() []common.BlockKind {
	var kinds []common.BlockKind
	for _, name := range common.BlockKindNames() {
		if _, ok := r.blocks[common.BlockKind(name)]; ok {
			kinds = append(kinds, common.BlockKind(name))
		}
	}
	return kinds
}
