package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cblocks/attrs"
	"cblocks/blocks/catalog"
	"cblocks/collection"
	"cblocks/common"
	"cblocks/state"
	"cblocks/storage"
)

// New writes document of freshly inserted block.
func New(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("new")

	name := cmd.Args().Get(0)
	if len(name) == 0 {
		return errors.New("no block kind has been specified")
	}
	kind, err := common.ParseBlockKind(name)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	id := cmd.String("id")
	if id == "" {
		id = collection.NewID()
	}
	dst := cmd.Args().Get(1)
	fi, err := os.Stat(dst)
	path := documentPath(dst, kind, id, err == nil && fi.IsDir())

	if err := prepareOutput(path, cmd.Bool("overwrite"), log); err != nil {
		return err
	}
	data, err := NewDocument(env, kind, id, storage.FormatOf(path))
	if err != nil {
		return err
	}
	if err := storage.WriteFileAtomic(path, data); err != nil {
		return err
	}
	log.Info("Block document created", zap.Stringer("kind", kind), zap.String("block", id), zap.String("file", path))
	return nil
}

// NewDocument encodes default attributes of block kind.
func NewDocument(env *state.LocalEnv, kind common.BlockKind, id string, format storage.Format) ([]byte, error) {
	b, err := catalog.New(&env.Cfg.Blocks).Lookup(kind)
	if err != nil {
		return nil, err
	}
	doc := &attrs.Document{Kind: kind, ID: id, Attributes: b.Defaults()}
	env.Dump(id+"-defaults", doc.Attributes)
	data, err := storage.Encode(doc, format)
	if err != nil {
		return nil, fmt.Errorf("unable to encode %s document: %w", kind, err)
	}
	return data, nil
}
