// Package blocks defines what every content block provides and the
// operations shared by block implementations.
package blocks

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"cblocks/collection"
	"cblocks/common"
	"cblocks/config"
	"cblocks/media"
	"cblocks/render"
)

// Errors below indicate broken caller, unlike engine rejections.
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrInvalidValue  = errors.New("invalid value")
)

// Op is single editing operation addressed to block attributes. Index and
// Item are -1 in scripts which do not spell them out.
type Op struct {
	Action    string               `yaml:"action" json:"action"`
	List      string               `yaml:"list,omitempty" json:"list,omitempty"`
	Index     int                  `yaml:"index,omitempty" json:"index,omitempty"`
	Item      int                  `yaml:"item,omitempty" json:"item,omitempty"`
	Field     string               `yaml:"field,omitempty" json:"field,omitempty"`
	Value     any                  `yaml:"value,omitempty" json:"value,omitempty"`
	Fields    map[string]any       `yaml:"fields,omitempty" json:"fields,omitempty"`
	Direction collection.Direction `yaml:"direction,omitempty" json:"direction,omitempty"`
}

func (op Op) String() string {
	return fmt.Sprintf("%s[%s %d/%d]", op.Action, op.List, op.Index, op.Item)
}

// Updates returns field updates carried by operation: Fields when present,
// otherwise single Field/Value pair.
func (op Op) Updates() collection.Fields {
	if len(op.Fields) > 0 {
		return collection.Fields(op.Fields)
	}
	if op.Field == "" {
		return nil
	}
	return collection.Fields{op.Field: op.Value}
}

// MediaHost resolves media reference selected by author into asset.
type MediaHost interface {
	Select(ref string) (media.Asset, error)
}

// Env is collaborators blocks need to apply operations. Block configuration
// is given to block constructors.
type Env struct {
	Media MediaHost
}

// Block is implemented by every content block.
type Block interface {
	Kind() common.BlockKind
	// Defaults returns attributes of freshly inserted block.
	Defaults() collection.Fields
	// Apply computes attributes after operation. Rejected operations return
	// attrs unchanged together with engine error.
	Apply(attrs collection.Fields, op Op, env *Env) (collection.Fields, error)
	// Edit renders interactive editor view. State may be nil.
	Edit(attrs collection.Fields, state *render.EditorState, ctx *render.Context) *etree.Element
	// Save renders static markup served to readers.
	Save(attrs collection.Fields, ctx *render.Context) *etree.Element
}

// Template returns fields new entry of list starts with.
func Template(templates config.EntryTemplates, list string, builtin collection.Fields) collection.Fields {
	return collection.Fields(templates.Template(list, builtin))
}

// Unknown reports unsupported operation, attrs are returned unchanged.
func Unknown(kind common.BlockKind, attrs collection.Fields, op Op) (collection.Fields, error) {
	return attrs, fmt.Errorf("%s does not support %q: %w", kind, op.Action, ErrUnknownAction)
}
