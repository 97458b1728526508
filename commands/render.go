// Package commands implements program subcommands working on block
// documents.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"sync/atomic"
	"time"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cblocks/archive"
	"cblocks/attrs"
	"cblocks/blocks"
	"cblocks/blocks/catalog"
	"cblocks/collection"
	"cblocks/common"
	"cblocks/render"
	"cblocks/state"
	"cblocks/storage"
)

func Render(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src, dst, err := sourceAndDestination(cmd, log)
	if err != nil {
		return err
	}

	mode, err := common.ParseRenderMode(cmd.String("mode"))
	if err != nil {
		log.Warn("Unknown render mode requested, switching to static", zap.Error(err))
		mode = common.RenderModeStatic
	}
	env.Mode, env.Overwrite = mode, cmd.Bool("overwrite")

	if name := cmd.String("ops"); name != "" {
		script, err := ReadScript(name)
		if err != nil {
			return err
		}
		env.Ops = script.Ops
	}

	if err := env.Rpt.StoreCopy("source/"+filepath.Base(src), src); err != nil {
		log.Warn("Unable to copy source into debug report", zap.Error(err))
	}

	log.Info("Rendering starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("mode", mode))
	defer func(start time.Time) {
		log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return renderSource(ctx, src, dst, env, log)
}

// sourceAndDestination resolves positional arguments, destination defaults to
// current working directory.
func sourceAndDestination(cmd *cli.Command, log *zap.Logger) (src, dst string, err error) {
	src = cmd.Args().Get(0)
	if len(src) == 0 {
		return "", "", errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return "", "", err
	}

	dst = cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return "", "", err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	return src, dst, nil
}

// renderSource renders single document, every document under directory or
// every document packed in zip bundle.
func renderSource(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if !fi.IsDir() {
		switch {
		case archive.IsArchive(src):
			return renderArchive(ctx, src, dst, env, log)
		case storage.IsDocument(src):
			return renderDocument(ctx, src, filepath.Base(src), dst, env, log)
		}
		return fmt.Errorf("input was not recognized as block document (%s)", src)
	}

	names, err := collectDocuments(ctx, src, log)
	if err != nil {
		return err
	}
	return renderAll(ctx, names, env, log, func(ctx context.Context, name string) error {
		return renderDocument(ctx, filepath.Join(src, name), name, dst, env, log)
	})
}

// renderArchive renders block documents from zip bundle, output tree mirrors
// bundle layout.
func renderArchive(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	var names []string
	contents := make(map[string][]byte)
	err := archive.Walk(src, storage.IsDocument, func(name string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := filepath.FromSlash(name)
		names = append(names, rel)
		contents[rel] = data
		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to read bundle (%s): %w", src, err)
	}
	return renderAll(ctx, names, env, log, func(ctx context.Context, name string) error {
		return renderData(ctx, contents[name], name, dst, env, log)
	})
}

// renderAll calls fn for every name using configured number of workers.
func renderAll(ctx context.Context, names []string, env *state.LocalEnv, log *zap.Logger, fn func(ctx context.Context, name string) error) error {
	if len(names) == 0 {
		log.Debug("Nothing to process")
		return nil
	}

	workers := env.Cfg.Render.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// one broken document does not stop the others
			if err := fn(gctx, name); err != nil {
				log.Error("Unable to render document", zap.String("file", name), zap.Error(err))
				failed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("unable to render %d of %d documents", n, len(names))
	}
	return nil
}

// collectDocuments returns directory relative names of block documents in
// natural order.
func collectDocuments(ctx context.Context, dir string, log *zap.Logger) ([]string, error) {
	var names []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() || !storage.IsDocument(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		names = append(names, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(natural.StringSlice(names))
	return names, nil
}

// renderDocument renders document at path. "rel" is path relative to the
// source (base file name when single file was requested), output keeps it
// under dst.
func renderDocument(ctx context.Context, path, rel, dst string, env *state.LocalEnv, log *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read block document: %w", err)
	}
	return renderData(ctx, data, rel, dst, env, log)
}

func renderData(ctx context.Context, data []byte, rel, dst string, env *state.LocalEnv, log *zap.Logger) (rerr error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	var outputName string

	log.Debug("Rendering document", zap.String("from", rel))
	defer func(start time.Time) {
		// broken document must not take down the whole directory
		if r := recover(); r != nil {
			log.Error("Rendering ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", r)
		}
	}(time.Now())

	doc, err := storage.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}

	out, err := Markup(doc, env, log)
	if err != nil {
		return err
	}

	outputName = buildOutputPath(rel, dst, env.Mode)
	if err := prepareOutput(outputName, env.Overwrite, log); err != nil {
		return err
	}
	if err := storage.WriteFileAtomic(outputName, []byte(out)); err != nil {
		return err
	}

	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", doc.ID, env.Mode.Ext()), outputName)
	}
	log.Info("Document rendered", zap.String("from", rel), zap.String("to", outputName), zap.Stringer("kind", doc.Kind))
	return nil
}

// Markup renders block document in the requested mode. Operations from env
// are replayed in editor session first, editor view shows session display
// state.
func Markup(doc *attrs.Document, env *state.LocalEnv, log *zap.Logger) (string, error) {
	b, err := catalog.New(&env.Cfg.Blocks).Lookup(doc.Kind)
	if err != nil {
		return "", err
	}
	rctx, err := render.NewContext(doc.Kind, doc.ID, &env.Cfg.Render, log)
	if err != nil {
		return "", err
	}

	benv, err := blockEnv(env, log)
	if err != nil {
		return "", err
	}
	session := blocks.NewSession(b, benv)
	fields, err := replay(session, doc, env.Ops, log)
	if err != nil {
		return "", err
	}

	var out *etree.Element
	switch env.Mode {
	case common.RenderModeEditor:
		out = session.Edit(fields, rctx)
	default:
		out = b.Save(fields, rctx)
	}

	indent := 0
	if env.Cfg.Render.Pretty {
		indent = env.Cfg.Render.Indent
	}
	return render.Serialize(out, indent)
}

// replay performs operations on document attributes, rejected ones are
// skipped.
func replay(session *blocks.Session, doc *attrs.Document, ops []blocks.Op, log *zap.Logger) (collection.Fields, error) {
	fields := doc.Attributes
	for i, op := range ops {
		next, err := session.Perform(fields, op)
		switch {
		case attrs.Rejected(err):
			log.Warn("Operation rejected", zap.String("block", doc.ID), zap.Int("op", i+1), zap.Stringer("action", op), zap.Error(err))
		case err != nil:
			return nil, fmt.Errorf("%s: operation %d: %w", doc.ID, i+1, err)
		default:
			fields = next
		}
	}
	return fields, nil
}

// prepareOutput checks whether output could be written, existing file is
// only replaced when overwrite was requested.
func prepareOutput(name string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Debug("Overwriting existing file", zap.String("file", name))
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}
